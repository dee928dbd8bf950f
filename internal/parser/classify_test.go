package parser

import "testing"

func white() CellStyle {
	return CellStyle{FillColor: noColor(), FontColor: noColor()}
}

func fill(rgb, font string) CellStyle {
	return CellStyle{
		FillSolid: true,
		FillColor: ColorRef{RGB: rgb, Indexed: -1, Theme: -1},
		FontColor: ColorRef{RGB: font, Indexed: -1, Theme: -1},
	}
}

// styleCol0 builds a style grid from the column-0 style of each row; all other
// cells read as unstyled.
func styleCol0(styles ...CellStyle) *StyleSheet {
	cells := make([][]CellStyle, len(styles))
	for i, s := range styles {
		cells[i] = []CellStyle{s}
	}
	return &StyleSheet{cells: cells}
}

func extract(t *testing.T, raw *RawSheet, styles *StyleSheet) *ParseResult {
	t.Helper()
	p := NewPriceListParser(nil)
	loc := tableLocation{
		Columns: ColumnMap{Product: 0, Unit: 2, Price: 3},
		Bounds:  DataBounds{Start: 0, End: raw.Rows()},
	}
	return p.extractRows(raw, styles, loc)
}

func TestExtractRowsStandardLayout(t *testing.T) {
	t.Parallel()

	raw := sheetOf(
		[]string{"Кирпичи", "", "", ""},
		[]string{"Кирпич красный", "", "шт", "12,50"},
		[]string{"Кирпич белый", "", "шт", "14"},
		[]string{"Растворы", "", "", ""},
		[]string{"Цемент М400", "", "кг", "8"},
	)
	styles := styleCol0(
		fill("FFD700", "808080"), // category: gold fill, gray text
		white(),
		white(),
		fill("FFFF00", "969696"),
		white(),
	)

	result := extract(t, raw, styles)

	if result.TotalProducts != 3 {
		t.Fatalf("TotalProducts = %d, want 3", result.TotalProducts)
	}
	if len(result.Categories) != 2 || result.Categories[0] != "Кирпичи" || result.Categories[1] != "Растворы" {
		t.Fatalf("Categories = %v", result.Categories)
	}

	first := result.Products[0]
	if first.Name != "Кирпич красный" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Price != 12.50 {
		t.Errorf("Price = %v, want 12.50", first.Price)
	}
	if first.Unit != "шт" {
		t.Errorf("Unit = %q, want шт", first.Unit)
	}
	if first.Category != "Кирпичи" {
		t.Errorf("Category = %q, want Кирпичи", first.Category)
	}
	if first.Article == "" {
		t.Error("Article is empty")
	}

	if result.Products[2].Category != "Растворы" {
		t.Errorf("Products[2].Category = %q, want Растворы", result.Products[2].Category)
	}
}

func TestExtractRowsGoldenHeuristic(t *testing.T) {
	t.Parallel()

	// A warm tone outside the exact palette still counts as a category fill
	raw := sheetOf(
		[]string{"Метизы", "", "", ""},
		[]string{"Саморез 35мм", "", "шт", "0,80"},
	)
	styles := styleCol0(
		fill("E8A33D", "808080"),
		white(),
	)

	result := extract(t, raw, styles)
	if len(result.Categories) != 1 || result.Categories[0] != "Метизы" {
		t.Fatalf("Categories = %v", result.Categories)
	}
	if result.Products[0].Category != "Метизы" {
		t.Fatalf("Category = %q", result.Products[0].Category)
	}
}

func TestExtractRowsColoredNonCategorySkipped(t *testing.T) {
	t.Parallel()

	// Yellow fill with black text is decoration, not a category header, and a
	// colored row is never a product either
	raw := sheetOf(
		[]string{"АКЦИЯ НЕДЕЛИ", "", "шт", "999"},
		[]string{"Кирпич красный", "", "шт", "12"},
	)
	styles := styleCol0(
		fill("FFFF00", "000000"),
		white(),
	)

	result := extract(t, raw, styles)
	if len(result.Categories) != 0 {
		t.Fatalf("Categories = %v, want none", result.Categories)
	}
	if result.TotalProducts != 1 {
		t.Fatalf("TotalProducts = %d, want 1", result.TotalProducts)
	}
	if result.Products[0].Category != "" {
		t.Fatalf("Category = %q, want empty", result.Products[0].Category)
	}
}

func TestExtractRowsIndexedAndThemeFills(t *testing.T) {
	t.Parallel()

	raw := sheetOf(
		[]string{"Старая палитра", "", "", ""},
		[]string{"Товар один", "", "шт", "5"},
		[]string{"Темы оформления", "", "", ""},
		[]string{"Товар два", "", "шт", "6"},
	)
	indexed := CellStyle{
		FillSolid: true,
		FillColor: ColorRef{Indexed: 44, Theme: -1},
		FontColor: ColorRef{RGB: "808080", Indexed: -1, Theme: -1},
	}
	themed := CellStyle{
		FillSolid: true,
		FillColor: ColorRef{Indexed: -1, Theme: 4},
		FontColor: ColorRef{RGB: "969696", Indexed: -1, Theme: -1},
	}
	styles := styleCol0(indexed, white(), themed, white())

	result := extract(t, raw, styles)
	if len(result.Categories) != 2 {
		t.Fatalf("Categories = %v, want 2 entries", result.Categories)
	}
	if result.Products[0].Category != "Старая палитра" || result.Products[1].Category != "Темы оформления" {
		t.Fatalf("Products = %+v", result.Products)
	}
}

func TestExtractRowsLookahead(t *testing.T) {
	t.Parallel()

	// Unit on the row below the name, price one row further down
	raw := sheetOf(
		[]string{"Плитка тротуарная", "", "", ""},
		[]string{"", "", "м2", ""},
		[]string{"", "", "", "450"},
		[]string{"Бордюр", "", "шт", "120"},
	)
	styles := styleCol0(white(), white(), white(), white())

	result := extract(t, raw, styles)
	if result.TotalProducts != 2 {
		t.Fatalf("TotalProducts = %d, want 2", result.TotalProducts)
	}

	spread := result.Products[0]
	if spread.Name != "Плитка тротуарная" {
		t.Errorf("Name = %q", spread.Name)
	}
	if spread.Unit != "м²" {
		t.Errorf("Unit = %q, want м²", spread.Unit)
	}
	if spread.Price != 450 {
		t.Errorf("Price = %v, want 450", spread.Price)
	}

	if result.Products[1].Name != "Бордюр" {
		t.Errorf("Products[1].Name = %q, want Бордюр", result.Products[1].Name)
	}
}

func TestExtractRowsLookaheadKeepsCurrentRowPrice(t *testing.T) {
	t.Parallel()

	// Price on the name row, unit on the next: the next-next price must not
	// overwrite the one already found
	raw := sheetOf(
		[]string{"Сетка кладочная", "", "", "300"},
		[]string{"", "", "шт", ""},
		[]string{"", "", "", "999"},
	)
	styles := styleCol0(white(), white(), white())

	result := extract(t, raw, styles)
	if result.TotalProducts != 1 {
		t.Fatalf("TotalProducts = %d, want 1", result.TotalProducts)
	}
	if result.Products[0].Price != 300 {
		t.Fatalf("Price = %v, want the current-row 300", result.Products[0].Price)
	}
}

func TestExtractRowsLookaheadRequiresWhiteRows(t *testing.T) {
	t.Parallel()

	// A colored continuation row blocks the lookahead
	raw := sheetOf(
		[]string{"Плитка тротуарная", "", "", ""},
		[]string{"", "", "м2", "450"},
	)
	styles := styleCol0(
		white(),
		fill("FFD700", "808080"),
	)

	result := extract(t, raw, styles)
	if result.TotalProducts != 0 {
		t.Fatalf("TotalProducts = %d, want 0", result.TotalProducts)
	}
}

func TestExtractRowsSubcategory(t *testing.T) {
	t.Parallel()

	// A white row with a name but no unit anywhere is a subcategory label and
	// overrides the category for the rows below it
	raw := sheetOf(
		[]string{"Пиломатериалы", "", "", ""},
		[]string{"Доска обрезная", "", "", ""},
		[]string{"Доска 25х100", "", "м3", "7500"},
		[]string{"Доска 50х150", "", "м3", "7800"},
	)
	styles := styleCol0(
		fill("FFD700", "808080"),
		white(),
		white(),
		white(),
	)

	result := extract(t, raw, styles)
	if result.TotalProducts != 2 {
		t.Fatalf("TotalProducts = %d, want 2", result.TotalProducts)
	}
	for _, p := range result.Products {
		if p.Category != "Доска обрезная" {
			t.Errorf("Category = %q, want subcategory Доска обрезная", p.Category)
		}
	}
	if len(result.Categories) != 1 || result.Categories[0] != "Пиломатериалы" {
		t.Fatalf("Categories = %v, want only the real category", result.Categories)
	}
}

func TestExtractRowsRejectsNonPositivePrices(t *testing.T) {
	t.Parallel()

	raw := sheetOf(
		[]string{"Кирпич красный", "", "шт", "0"},
		[]string{"Кирпич белый", "", "шт", "-5"},
		[]string{"Кирпич рядовой", "", "шт", "договорная"},
		[]string{"Кирпич печной", "", "шт", "18"},
	)
	styles := styleCol0(white(), white(), white(), white())

	result := extract(t, raw, styles)
	if result.TotalProducts != 1 {
		t.Fatalf("TotalProducts = %d, want 1", result.TotalProducts)
	}
	if result.Products[0].Name != "Кирпич печной" {
		t.Fatalf("Name = %q", result.Products[0].Name)
	}
}

func TestExtractRowsSecondColumnName(t *testing.T) {
	t.Parallel()

	// Some templates put a row number in column 0 and the name in column 1
	raw := sheetOf(
		[]string{"", "Кирпич красный", "шт", "12"},
	)
	styles := styleCol0(white())

	result := extract(t, raw, styles)
	if result.TotalProducts != 1 {
		t.Fatalf("TotalProducts = %d, want 1", result.TotalProducts)
	}
	if result.Products[0].Name != "Кирпич красный" {
		t.Fatalf("Name = %q", result.Products[0].Name)
	}
}

func TestExtractRowsDefaultUnit(t *testing.T) {
	t.Parallel()

	raw := sheetOf(
		[]string{"Кирпич красный", "", "", "12"},
	)
	styles := styleCol0(white())

	rules := DefaultRules()
	rules.DefaultUnit = "шт"
	p := NewPriceListParser(rules)
	loc := tableLocation{
		Columns: ColumnMap{Product: 0, Unit: 2, Price: 3},
		Bounds:  DataBounds{Start: 0, End: raw.Rows()},
	}

	result := p.extractRows(raw, styles, loc)
	if result.TotalProducts != 1 {
		t.Fatalf("TotalProducts = %d, want 1", result.TotalProducts)
	}
	if result.Products[0].Unit != "шт" {
		t.Fatalf("Unit = %q, want the default шт", result.Products[0].Unit)
	}
}
