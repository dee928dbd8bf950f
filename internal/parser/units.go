package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// unitForms maps exact unit spellings to the canonical token of their family.
var unitForms = map[string]string{
	"ШТ": "шт", "ШТУК": "шт", "ШТУКИ": "шт",
	"М": "м", "МЕТР": "м", "МЕТРЫ": "м",
	"М2": "м²", "М²": "м²", "М.КВ": "м²", "М.КВ.": "м²", "КВ.М": "м²", "КВ.М.": "м²",
	"М3": "м³", "М³": "м³", "М.КУБ": "м³", "М.КУБ.": "м³",
	"КГ": "кг", "КИЛОГРАММ": "кг", "КИЛОГРАММЫ": "кг",
	"Т": "т", "ТОННА": "т", "ТОННЫ": "т",
	"Л": "л", "ЛИТР": "л", "ЛИТРЫ": "л",
	"МЛ": "мл", "МИЛЛИЛИТР": "мл",
}

// IsUnitMeasurement reports whether value denotes a unit of measure: an exact
// vocabulary spelling or a substring match for one of the unit families. A
// value that is just a number is never a unit — numbers are prices.
func (r *ClassificationRules) IsUnitMeasurement(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}

	upper := strings.ToUpper(v)
	for _, u := range r.UnitVocabulary {
		if upper == u {
			return true
		}
	}

	if isNumeric(v) {
		return false
	}

	lower := strings.ToLower(v)
	switch {
	case strings.Contains(lower, "шт"):
		return true
	case strings.Contains(v, "м²"), strings.Contains(upper, "М2"),
		strings.Contains(lower, "кв") && strings.Contains(lower, "м"):
		return true
	case strings.Contains(v, "м³"), strings.Contains(upper, "М3"), strings.Contains(lower, "куб"):
		return true
	case strings.Contains(lower, "кг"):
		return true
	case strings.Contains(lower, "т") && (strings.Contains(lower, "тонн") || utf8.RuneCountInString(v) <= 3):
		return true
	case strings.Contains(lower, "л") && !strings.Contains(lower, "мл"):
		return true
	case strings.Contains(lower, "мл"):
		return true
	case strings.Contains(lower, "м") && utf8.RuneCountInString(v) <= 5:
		return true
	}
	return false
}

// NormalizeUnit maps a recognized unit spelling to its family's canonical
// lowercase token. Unrecognized values pass through lowercased.
func NormalizeUnit(raw string) string {
	v := strings.TrimSpace(raw)
	if canon, ok := unitForms[strings.ToUpper(v)]; ok {
		return canon
	}

	lower := strings.ToLower(v)
	switch {
	case strings.Contains(lower, "шт"):
		return "шт"
	case strings.Contains(v, "м²"), strings.Contains(strings.ToUpper(v), "М2"), strings.Contains(lower, "кв"):
		return "м²"
	case strings.Contains(v, "м³"), strings.Contains(strings.ToUpper(v), "М3"), strings.Contains(lower, "куб"):
		return "м³"
	case strings.Contains(lower, "кг"):
		return "кг"
	case strings.Contains(lower, "т") && strings.Contains(lower, "тонн"):
		return "т"
	case strings.Contains(lower, "л") && !strings.Contains(lower, "мл"):
		return "л"
	case strings.Contains(lower, "мл"):
		return "мл"
	case strings.Contains(lower, "м"):
		return "м"
	}
	return lower
}

func isNumeric(v string) bool {
	s := strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(v)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
