package parser

import (
	"log"
	"strings"
)

// ColumnMap holds the resolved column index for each table role.
type ColumnMap struct {
	Product int
	Unit    int
	Price   int
}

// DataBounds is the half-open row range [Start, End) holding category and
// product rows, excluding the header and trailing non-price rows.
type DataBounds struct {
	Start int
	End   int
}

// tableLocation is the locator's result: where the header sits, which columns
// hold the roles and which rows carry data.
type tableLocation struct {
	HeaderRow int
	Columns   ColumnMap
	Bounds    DataBounds
}

// headerStrategy tries to find the header row; ok is false when the strategy
// did not apply.
type headerStrategy func(sheet *RawSheet, rules *ClassificationRules) (row int, ok bool)

// locateTable finds the header row, the role columns and the data bounds.
// Every failure degrades to a fallback, so the locator never errors; degraded
// detection is only logged.
func locateTable(sheet *RawSheet, rules *ClassificationRules) tableLocation {
	strategies := []struct {
		name string
		fn   headerStrategy
	}{
		{"exact-label", findHeaderByLabel},
		{"keywords", findHeaderByKeywords},
	}

	headerRow := rules.DefaultHeaderRow
	matched := ""
	for _, s := range strategies {
		if row, ok := s.fn(sheet, rules); ok {
			headerRow = row
			matched = s.name
			break
		}
	}
	if matched == "" {
		log.Printf("parser: header row not detected, assuming row %d", headerRow)
	} else if matched != "exact-label" {
		log.Printf("parser: header row %d detected via %s fallback", headerRow, matched)
	}

	loc := tableLocation{
		HeaderRow: headerRow,
		Columns:   resolveColumns(sheet, headerRow, rules),
	}
	loc.Bounds = boundData(sheet, headerRow, loc.Columns.Price)
	return loc
}

// findHeaderByLabel looks for the first row containing a cell exactly equal
// to the product label (case-sensitive, untrimmed).
func findHeaderByLabel(sheet *RawSheet, rules *ClassificationRules) (int, bool) {
	for r := 0; r < sheet.Rows(); r++ {
		for c := 0; c < sheet.Cols(); c++ {
			if sheet.Cell(r, c) == rules.HeaderLabels.Product {
				return r, true
			}
		}
	}
	return 0, false
}

// findHeaderByKeywords looks for a row whose lowercased text contains any of
// the header keywords. The row must have at least two non-empty cells so a
// stray label cell does not pass as a header.
func findHeaderByKeywords(sheet *RawSheet, rules *ClassificationRules) (int, bool) {
	for r := 0; r < sheet.Rows(); r++ {
		nonEmpty := 0
		hasKeyword := false
		for c := 0; c < sheet.Cols(); c++ {
			v := strings.TrimSpace(sheet.Cell(r, c))
			if v == "" {
				continue
			}
			nonEmpty++
			lower := strings.ToLower(v)
			for _, kw := range rules.HeaderKeywords {
				if strings.Contains(lower, kw) {
					hasKeyword = true
					break
				}
			}
		}
		if hasKeyword && nonEmpty >= 2 {
			return r, true
		}
	}
	return 0, false
}

// resolveColumns maps the product/unit/price roles to column indices on the
// header row: exact label match first, then case-insensitive substrings, then
// the fixed template defaults.
func resolveColumns(sheet *RawSheet, headerRow int, rules *ClassificationRules) ColumnMap {
	product, unit, price := -1, -1, -1

	for c := 0; c < sheet.Cols(); c++ {
		switch sheet.Cell(headerRow, c) {
		case rules.HeaderLabels.Product:
			if product < 0 {
				product = c
			}
		case rules.HeaderLabels.Unit:
			if unit < 0 {
				unit = c
			}
		case rules.HeaderLabels.Price:
			if price < 0 {
				price = c
			}
		}
	}

	if product < 0 || unit < 0 || price < 0 {
		log.Printf("parser: exact header labels incomplete on row %d, matching by keywords", headerRow)
		for c := 0; c < sheet.Cols(); c++ {
			v := strings.ToLower(strings.TrimSpace(sheet.Cell(headerRow, c)))
			if v == "" {
				continue
			}
			switch {
			case product < 0 && strings.Contains(v, "товар"):
				product = c
			case unit < 0 && (strings.Contains(v, "ед") || strings.Contains(v, "единиц")):
				unit = c
			case price < 0 && strings.Contains(v, "цена"):
				price = c
			}
		}
	}

	if product < 0 {
		product = rules.DefaultColumns.Product
	}
	if unit < 0 {
		unit = rules.DefaultColumns.Unit
	}
	if price < 0 {
		price = rules.DefaultColumns.Price
	}
	return ColumnMap{Product: product, Unit: unit, Price: price}
}

// boundData finds the data region: rows after the header, up to and including
// the last row with any value in the price column. With no priced rows at all
// the region extends to the end of the sheet.
func boundData(sheet *RawSheet, headerRow, priceCol int) DataBounds {
	end := -1
	for r := 0; r < sheet.Rows(); r++ {
		if strings.TrimSpace(sheet.Cell(r, priceCol)) != "" {
			end = r
		}
	}
	if end < 0 {
		log.Printf("parser: price column %d has no values, scanning all rows after the header", priceCol)
		end = sheet.Rows() - 1
	}
	return DataBounds{Start: headerRow + 1, End: end + 1}
}
