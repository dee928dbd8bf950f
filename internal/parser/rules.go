package parser

// HeaderLabels are the literal column headings the locator matches first,
// before falling back to keyword search.
type HeaderLabels struct {
	Product string
	Unit    string
	Price   string
}

// ClassificationRules holds every heuristic constant the parser uses:
// the category fill palette, the legacy/theme color tables, header labels and
// keywords, positional fallbacks and the unit vocabulary. The defaults are
// tuned to the "Стройдвор" supplier template; pass adjusted rules for
// suppliers with a different layout.
type ClassificationRules struct {
	// CategoryColors is the curated list of fill colors (RRGGBB, upper case)
	// that mark category rows: gold, yellow and cream tones.
	CategoryColors []string

	// YellowIndices and GrayIndices are legacy Excel palette indices treated
	// as category fills. CategoryThemes are theme slots treated the same way.
	YellowIndices  []int
	GrayIndices    []int
	CategoryThemes []int

	HeaderLabels   HeaderLabels
	HeaderKeywords []string

	// DefaultHeaderRow and DefaultColumns are the last-resort positions used
	// when no header could be detected, matching one known supplier template.
	DefaultHeaderRow int
	DefaultColumns   ColumnMap

	// UnitVocabulary lists exact unit spellings (upper case, trimmed).
	UnitVocabulary []string

	// DefaultUnit, when non-empty, is assumed for product rows that carry a
	// name and a price but no recognizable unit. When empty such rows are
	// treated as subcategory labels instead.
	DefaultUnit string
}

// DefaultRules returns the ruleset tuned to the known supplier template.
func DefaultRules() *ClassificationRules {
	return &ClassificationRules{
		CategoryColors: []string{
			"FFD700", // Gold
			"FFFF00", // Yellow
			"FFE4B5", // Moccasin
			"FFDAB9", // PeachPuff
			"FFE4E1", // MistyRose
			"FFF8DC", // Cornsilk
			"FFFACD", // LemonChiffon
			"EEE8AA", // PaleGoldenrod
			"DAA520", // Goldenrod
			"B8860B", // DarkGoldenrod
			"FFEBCD", // BlanchedAlmond
			"FFEFD5", // PapayaWhip
			"FFF5EE", // Seashell
			"FFF8F0", // FloralWhite
			"FFFFF0", // Ivory
		},
		YellowIndices:  indexRange(44, 53),
		GrayIndices:    indexRange(22, 25),
		CategoryThemes: []int{4, 5, 6},
		HeaderLabels: HeaderLabels{
			Product: "Товар",
			Unit:    "Ед.изм",
			Price:   "Цена",
		},
		HeaderKeywords:   []string{"товар", "ед.изм", "ед", "цена", "единица", "измерения"},
		DefaultHeaderRow: 8,
		DefaultColumns:   ColumnMap{Product: 0, Unit: 2, Price: 3},
		UnitVocabulary: []string{
			"ШТ", "ШТУК", "ШТУКИ",
			"М", "МЕТР", "МЕТРЫ",
			"М2", "М²", "М.КВ", "М.КВ.", "КВ.М", "КВ.М.",
			"М3", "М³", "М.КУБ", "М.КУБ.",
			"КГ", "КИЛОГРАММ", "КИЛОГРАММЫ",
			"Т", "ТОННА", "ТОННЫ",
			"Л", "ЛИТР", "ЛИТРЫ",
			"МЛ", "МИЛЛИЛИТР",
		},
	}
}

func indexRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
