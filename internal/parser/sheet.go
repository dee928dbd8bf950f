package parser

// RawSheet is a rectangular grid of cell values read from one worksheet.
// Values are the display strings excelize resolves for each cell (formula
// results included); an empty string means an empty cell. The grid is built
// once by LoadWorkbook and never mutated afterwards.
type RawSheet struct {
	cells [][]string
}

// Rows returns the number of rows in the grid.
func (s *RawSheet) Rows() int {
	return len(s.cells)
}

// Cols returns the number of columns in the grid.
func (s *RawSheet) Cols() int {
	if len(s.cells) == 0 {
		return 0
	}
	return len(s.cells[0])
}

// Cell returns the value at (row, col), 0-indexed. Out-of-range coordinates
// read as empty cells.
func (s *RawSheet) Cell(row, col int) string {
	if row < 0 || row >= len(s.cells) {
		return ""
	}
	if col < 0 || col >= len(s.cells[row]) {
		return ""
	}
	return s.cells[row][col]
}

// ColorRef identifies a cell color either by an RGB hex string ("RRGGBB" or
// "AARRGGBB"), a legacy palette index, or a theme slot. Unset fields are ""
// and -1 respectively.
type ColorRef struct {
	RGB     string
	Indexed int
	Theme   int
}

func noColor() ColorRef {
	return ColorRef{Indexed: -1, Theme: -1}
}

// CellStyle carries the style signals classification cares about: whether the
// cell has a solid fill, the fill color, and the font color.
type CellStyle struct {
	FillSolid bool
	FillColor ColorRef
	FontColor ColorRef
}

// StyleSheet is the style grid parallel to a RawSheet: style[r][c] describes
// the same logical cell as raw.Cell(r, c).
type StyleSheet struct {
	cells [][]CellStyle
}

// Cell returns the style at (row, col). Out-of-range coordinates read as an
// unstyled cell (no fill, default font color).
func (s *StyleSheet) Cell(row, col int) CellStyle {
	if row < 0 || row >= len(s.cells) {
		return CellStyle{FillColor: noColor(), FontColor: noColor()}
	}
	if col < 0 || col >= len(s.cells[row]) {
		return CellStyle{FillColor: noColor(), FontColor: noColor()}
	}
	return s.cells[row][col]
}
