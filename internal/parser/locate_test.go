package parser

import "testing"

func sheetOf(rows ...[]string) *RawSheet {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = make([]string, cols)
		copy(cells[i], r)
	}
	return &RawSheet{cells: cells}
}

func TestLocateTableExactLabels(t *testing.T) {
	t.Parallel()

	sheet := sheetOf(
		[]string{"ООО Стройдвор"},
		[]string{"Прайс-лист от 01.02.2024"},
		[]string{"Товар", "Код", "Ед.изм", "Цена"},
		[]string{"Кирпич", "", "шт", "12"},
	)

	loc := locateTable(sheet, DefaultRules())
	if loc.HeaderRow != 2 {
		t.Fatalf("HeaderRow = %d, want 2", loc.HeaderRow)
	}
	if loc.Columns != (ColumnMap{Product: 0, Unit: 2, Price: 3}) {
		t.Fatalf("Columns = %+v", loc.Columns)
	}
	if loc.Bounds != (DataBounds{Start: 3, End: 4}) {
		t.Fatalf("Bounds = %+v", loc.Bounds)
	}
}

func TestLocateTableKeywordFallback(t *testing.T) {
	t.Parallel()

	// No exact "Товар" label, but a row with recognizable header keywords
	sheet := sheetOf(
		[]string{"Прайс"},
		[]string{"Наименование товара", "", "Единица измерения", "Цена за ед."},
		[]string{"Кирпич", "", "шт", "12"},
	)

	loc := locateTable(sheet, DefaultRules())
	if loc.HeaderRow != 1 {
		t.Fatalf("HeaderRow = %d, want 1", loc.HeaderRow)
	}
	if loc.Columns.Product != 0 || loc.Columns.Unit != 2 || loc.Columns.Price != 3 {
		t.Fatalf("Columns = %+v", loc.Columns)
	}
}

func TestLocateTableDefaultFallback(t *testing.T) {
	t.Parallel()

	// Nothing recognizable anywhere: the locator assumes the template default
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = []string{"", "", "", ""}
	}
	rows[9] = []string{"Кирпич", "", "шт", "12"}
	sheet := &RawSheet{cells: rows}

	rules := DefaultRules()
	loc := locateTable(sheet, rules)
	if loc.HeaderRow != rules.DefaultHeaderRow {
		t.Fatalf("HeaderRow = %d, want default %d", loc.HeaderRow, rules.DefaultHeaderRow)
	}
	if loc.Columns != rules.DefaultColumns {
		t.Fatalf("Columns = %+v, want defaults %+v", loc.Columns, rules.DefaultColumns)
	}
}

func TestResolveColumnsSubstrings(t *testing.T) {
	t.Parallel()

	sheet := sheetOf(
		[]string{"№", "Товар и описание", "Ед. изм.", "Цена, сом"},
	)

	cols := resolveColumns(sheet, 0, DefaultRules())
	if cols.Product != 1 {
		t.Errorf("Product = %d, want 1", cols.Product)
	}
	if cols.Unit != 2 {
		t.Errorf("Unit = %d, want 2", cols.Unit)
	}
	if cols.Price != 3 {
		t.Errorf("Price = %d, want 3", cols.Price)
	}
}

func TestBoundDataStopsAtLastPrice(t *testing.T) {
	t.Parallel()

	sheet := sheetOf(
		[]string{"Товар", "", "Ед.изм", "Цена"},
		[]string{"Кирпич", "", "шт", "12"},
		[]string{"Цемент", "", "кг", "8"},
		[]string{"", "", "", ""},
		[]string{"Условия доставки обсуждаются", "", "", ""},
	)

	bounds := boundData(sheet, 0, 3)
	if bounds != (DataBounds{Start: 1, End: 3}) {
		t.Fatalf("bounds = %+v, want [1,3)", bounds)
	}
}

func TestBoundDataNoPricesScansToEnd(t *testing.T) {
	t.Parallel()

	sheet := sheetOf(
		[]string{"Товар", "", "Ед.изм", ""},
		[]string{"Кирпич", "", "шт", ""},
		[]string{"Цемент", "", "кг", ""},
	)

	bounds := boundData(sheet, 0, 3)
	if bounds != (DataBounds{Start: 1, End: 3}) {
		t.Fatalf("bounds = %+v, want [1,3)", bounds)
	}
}
