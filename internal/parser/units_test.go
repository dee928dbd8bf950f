package parser

import "testing"

func TestIsUnitMeasurement(t *testing.T) {
	t.Parallel()
	rules := DefaultRules()

	valid := []string{
		"шт", "ШТ", " шт ", "штук", "10 шт",
		"м", "М", "метр", "пог.м",
		"м2", "М2", "м²", "кв.м",
		"м3", "М3", "м³", "куб.м",
		"кг", "КГ", "килограмм",
		"тонна", "тонны", "т",
		"л", "литр", "литры",
		"мл", "миллилитр",
	}
	for _, v := range valid {
		if !rules.IsUnitMeasurement(v) {
			t.Errorf("IsUnitMeasurement(%q) = false, want true", v)
		}
	}

	invalid := []string{
		"", "  ",
		"100", "1,5", "1 200,50", "0.25", // numbers are prices, never units
		"прайс", "наименование",
	}
	for _, v := range invalid {
		if rules.IsUnitMeasurement(v) {
			t.Errorf("IsUnitMeasurement(%q) = true, want false", v)
		}
	}
}

func TestNormalizeUnit(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"ШТ":     "шт",
		"штук":   "шт",
		"М2":     "м²",
		"кв.м":   "м²",
		"М3":     "м³",
		"куб.м":  "м³",
		"КГ":     "кг",
		"тонна":  "т",
		"литр":   "л",
		"мл":     "мл",
		"метр":   "м",
		" шт ":   "шт",
	}
	for in, want := range cases {
		if got := NormalizeUnit(in); got != want {
			t.Errorf("NormalizeUnit(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"100":      100,
		"1200.50":  1200.50,
		"1200,50":  1200.50,
		"1 200,50": 1200.50,
		" 42 ":     42,
	}
	for in, want := range cases {
		if got := parseDecimal(in); got != want {
			t.Errorf("parseDecimal(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "  ", "договорная", "12a"} {
		if got := parseDecimal(in); got == got { // NaN != NaN
			t.Errorf("parseDecimal(%q) = %v, want NaN", in, got)
		}
	}
}
