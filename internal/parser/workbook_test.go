package parser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeFixture builds a small supplier-style workbook: a title, a labeled
// header row, one colored category row and plain product rows.
func writeFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	catStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFD700"}},
		Font: &excelize.Font{Color: "808080"},
	})
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}

	f.SetCellValue(sheet, "A1", "ООО Стройдвор")
	f.SetCellValue(sheet, "A2", "Прайс-лист")

	f.SetCellValue(sheet, "A3", "Товар")
	f.SetCellValue(sheet, "C3", "Ед.изм")
	f.SetCellValue(sheet, "D3", "Цена")

	f.SetCellValue(sheet, "A4", "Кирпичи")
	if err := f.SetCellStyle(sheet, "A4", "D4", catStyle); err != nil {
		t.Fatalf("SetCellStyle: %v", err)
	}

	f.SetCellValue(sheet, "A5", "Кирпич красный")
	f.SetCellValue(sheet, "C5", "шт")
	f.SetCellValue(sheet, "D5", "12,50")

	f.SetCellValue(sheet, "A6", "Кирпич белый")
	f.SetCellValue(sheet, "C6", "шт")
	f.SetCellValue(sheet, "D6", "14")

	path := filepath.Join(t.TempDir(), "pricelist.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestParseWorkbook(t *testing.T) {
	t.Parallel()
	path := writeFixture(t)

	p := NewPriceListParser(nil)
	result, err := p.Parse(path, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if result.TotalProducts != 2 {
		t.Fatalf("TotalProducts = %d, want 2: %+v", result.TotalProducts, result.Products)
	}
	if len(result.Categories) != 1 || result.Categories[0] != "Кирпичи" {
		t.Fatalf("Categories = %v, want [Кирпичи]", result.Categories)
	}

	first := result.Products[0]
	if first.Name != "Кирпич красный" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Unit != "шт" {
		t.Errorf("Unit = %q", first.Unit)
	}
	if first.Price != 12.50 {
		t.Errorf("Price = %v, want 12.50", first.Price)
	}
	if first.Category != "Кирпичи" {
		t.Errorf("Category = %q", first.Category)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()
	path := writeFixture(t)

	p := NewPriceListParser(nil)
	first, err := p.Parse(path, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := p.Parse(path, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(first.Products) != len(second.Products) {
		t.Fatalf("product counts differ: %d vs %d", len(first.Products), len(second.Products))
	}
	for i := range first.Products {
		if first.Products[i] != second.Products[i] {
			t.Fatalf("product %d differs: %+v vs %+v", i, first.Products[i], second.Products[i])
		}
	}
}

func TestParseMissingFile(t *testing.T) {
	t.Parallel()

	p := NewPriceListParser(nil)
	_, err := p.Parse(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	if err == nil {
		t.Fatal("Parse succeeded on a missing file")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %T, want *LoadError", err)
	}
}

func TestParseUnknownSheet(t *testing.T) {
	t.Parallel()
	path := writeFixture(t)

	p := NewPriceListParser(nil)
	_, err := p.Parse(path, "Лист99")
	if err == nil {
		t.Fatal("Parse succeeded with an unknown sheet name")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %T, want *LoadError", err)
	}
}

func TestLoadWorkbookResolvesLegacyFills(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	indexedStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"ABCDEF"}},
	})
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}
	themedStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FEDCBA"}},
	})
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}

	// Rewrite the two fills into indexed and themed references, the form
	// .xls conversions store instead of explicit RGB values.
	fg := f.Styles.Fills.Fill[*f.Styles.CellXfs.Xf[indexedStyle].FillID].PatternFill.FgColor
	fg.RGB = ""
	fg.Indexed = 44
	fg = f.Styles.Fills.Fill[*f.Styles.CellXfs.Xf[themedStyle].FillID].PatternFill.FgColor
	fg.RGB = ""
	theme := 4
	fg.Theme = &theme

	f.SetCellValue(sheet, "A1", "Кирпичи")
	if err := f.SetCellStyle(sheet, "A1", "A1", indexedStyle); err != nil {
		t.Fatalf("SetCellStyle: %v", err)
	}
	f.SetCellValue(sheet, "A2", "Смеси")
	if err := f.SetCellStyle(sheet, "A2", "A2", themedStyle); err != nil {
		t.Fatalf("SetCellStyle: %v", err)
	}

	path := filepath.Join(t.TempDir(), "legacy.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	_, styles, err := LoadWorkbook(path, "")
	if err != nil {
		t.Fatalf("LoadWorkbook: %v", err)
	}

	st := styles.Cell(0, 0)
	if !st.FillSolid {
		t.Error("indexed fill not reported as solid")
	}
	if st.FillColor.Indexed != 44 {
		t.Errorf("FillColor.Indexed = %d, want 44", st.FillColor.Indexed)
	}

	st = styles.Cell(1, 0)
	if !st.FillSolid {
		t.Error("themed fill not reported as solid")
	}
	if st.FillColor.Theme != 4 {
		t.Errorf("FillColor.Theme = %d, want 4", st.FillColor.Theme)
	}

	rules := DefaultRules()
	if !rules.isCategoryColor(styles.Cell(0, 0)) {
		t.Error("indexed fill does not classify as a category color")
	}
	if !rules.isCategoryColor(styles.Cell(1, 0)) {
		t.Error("themed fill does not classify as a category color")
	}
}

func TestLoadWorkbookPadsRaggedRows(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "a")
	f.SetCellValue(sheet, "D2", "d")

	path := filepath.Join(t.TempDir(), "ragged.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	raw, styles, err := LoadWorkbook(path, "")
	if err != nil {
		t.Fatalf("LoadWorkbook: %v", err)
	}

	if raw.Cols() != 4 {
		t.Fatalf("Cols = %d, want 4", raw.Cols())
	}
	if got := raw.Cell(0, 3); got != "" {
		t.Errorf("padded cell = %q, want empty", got)
	}
	if got := raw.Cell(1, 3); got != "d" {
		t.Errorf("Cell(1,3) = %q, want d", got)
	}

	// Out-of-range reads degrade instead of panicking
	if got := raw.Cell(99, 99); got != "" {
		t.Errorf("out-of-range Cell = %q, want empty", got)
	}
	st := styles.Cell(99, 99)
	if st.FillSolid {
		t.Error("out-of-range style reports a solid fill")
	}
}
