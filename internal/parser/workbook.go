package parser

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadError is the only fatal failure the parser surfaces: the workbook could
// not be opened or the requested sheet does not exist.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load price list %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadWorkbook opens the spreadsheet at path and reads one sheet into a value
// grid and a parallel style grid. If sheetName is empty the first sheet is
// used. Both grids have identical extents and the file handle is released
// before returning.
func LoadWorkbook(path, sheetName string) (*RawSheet, *StyleSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, &LoadError{Path: path, Err: errors.New("workbook has no sheets")}
	}

	sheet := sheets[0]
	if sheetName != "" {
		found := false
		for _, s := range sheets {
			if s == sheetName {
				found = true
				break
			}
		}
		if !found {
			return nil, nil, &LoadError{Path: path, Err: fmt.Errorf("sheet %q not found", sheetName)}
		}
		sheet = sheetName
	} else if len(sheets) > 1 {
		log.Printf("parser: workbook has %d sheets, using %q", len(sheets), sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	// GetRows trims trailing empty cells per row; pad to a rectangle so both
	// grids address the same logical cells.
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	values := make([][]string, len(rows))
	styles := make([][]CellStyle, len(rows))
	for r := range rows {
		values[r] = make([]string, cols)
		copy(values[r], rows[r])
		styles[r] = make([]CellStyle, cols)
		for c := 0; c < cols; c++ {
			styles[r][c] = readCellStyle(f, sheet, r, c)
		}
	}

	return &RawSheet{cells: values}, &StyleSheet{cells: styles}, nil
}

// readCellStyle resolves the fill and font signals for one cell. Style read
// failures degrade to an unstyled cell rather than failing the load.
func readCellStyle(f *excelize.File, sheet string, row, col int) CellStyle {
	cs := CellStyle{FillColor: noColor(), FontColor: noColor()}

	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return cs
	}
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return cs
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return cs
	}

	if style.Fill.Type == "pattern" && style.Fill.Pattern == 1 {
		cs.FillSolid = true
		if len(style.Fill.Color) > 0 {
			cs.FillColor.RGB = strings.ToUpper(strings.TrimPrefix(style.Fill.Color[0], "#"))
		}
	}
	// GetStyle reports a pattern fill's color only when it carries an
	// explicit RGB value; indexed and themed fills read back empty through
	// it. Resolve those from the raw stylesheet so legacy workbooks still
	// classify.
	if cs.FillColor.RGB == "" {
		if ref, solid := rawFillColor(f, styleID); solid {
			cs.FillSolid = true
			cs.FillColor = ref
		}
	}
	if style.Font != nil {
		if style.Font.Color != "" {
			cs.FontColor.RGB = strings.ToUpper(strings.TrimPrefix(style.Font.Color, "#"))
		}
		if style.Font.ColorIndexed > 0 {
			cs.FontColor.Indexed = style.Font.ColorIndexed
		}
		if style.Font.ColorTheme != nil {
			cs.FontColor.Theme = *style.Font.ColorTheme
		}
	}
	return cs
}

// rawFillColor walks the stylesheet XML for the cell's fill and reports
// whether it is a solid pattern, with whichever of RGB, theme or indexed
// reference it carries.
func rawFillColor(f *excelize.File, styleID int) (ColorRef, bool) {
	ref := noColor()
	ss := f.Styles
	if ss == nil || ss.CellXfs == nil || ss.Fills == nil ||
		styleID < 0 || styleID >= len(ss.CellXfs.Xf) {
		return ref, false
	}
	fillID := ss.CellXfs.Xf[styleID].FillID
	if fillID == nil || *fillID < 0 || *fillID >= len(ss.Fills.Fill) {
		return ref, false
	}
	fill := ss.Fills.Fill[*fillID]
	if fill == nil || fill.PatternFill == nil || fill.PatternFill.PatternType != "solid" {
		return ref, false
	}
	if fg := fill.PatternFill.FgColor; fg != nil {
		switch {
		case fg.RGB != "":
			ref.RGB = strings.ToUpper(strings.TrimPrefix(fg.RGB, "#"))
		case fg.Theme != nil:
			ref.Theme = *fg.Theme
		case fg.Indexed > 0:
			ref.Indexed = fg.Indexed
		}
	}
	return ref, true
}
