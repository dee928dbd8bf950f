package parser

import (
	"log"
)

// ParsedProduct is one extracted price-list row. Price is always a finite
// positive number; Category is empty when no category header preceded the row.
type ParsedProduct struct {
	Name     string  `json:"name"`
	Article  string  `json:"article"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

// ParseResult is the outcome of one Parse call. Categories are deduplicated
// and kept in first-seen order.
type ParseResult struct {
	Products      []ParsedProduct `json:"products"`
	Categories    []string        `json:"categories"`
	TotalProducts int             `json:"total_products"`
}

// PriceListParser extracts a product catalog from an unstructured Excel price
// list: it locates the header table, then classifies each row as category or
// product from cell values and fill/font colors. The parser holds no state
// between calls; one instance can serve any number of files sequentially.
type PriceListParser struct {
	rules *ClassificationRules
}

// NewPriceListParser returns a parser using the given ruleset, or the default
// supplier template rules when rules is nil.
func NewPriceListParser(rules *ClassificationRules) *PriceListParser {
	if rules == nil {
		rules = DefaultRules()
	}
	return &PriceListParser{rules: rules}
}

// Parse reads the spreadsheet at path (sheetName optional, first sheet when
// empty) and extracts products and categories. It fails only on load errors;
// malformed rows are skipped and an empty result is valid.
func (p *PriceListParser) Parse(path, sheetName string) (*ParseResult, error) {
	raw, styles, err := LoadWorkbook(path, sheetName)
	if err != nil {
		return nil, err
	}
	log.Printf("parser: loaded %s: %d rows, %d columns", path, raw.Rows(), raw.Cols())

	loc := locateTable(raw, p.rules)
	log.Printf("parser: header row %d, columns product=%d unit=%d price=%d, data rows [%d,%d)",
		loc.HeaderRow, loc.Columns.Product, loc.Columns.Unit, loc.Columns.Price,
		loc.Bounds.Start, loc.Bounds.End)

	result := p.extractRows(raw, styles, loc)
	if result.TotalProducts == 0 {
		log.Printf("parser: no products extracted from %s, the file layout likely does not match", path)
	}
	return result, nil
}
