package parser

import (
	"log"
	"math"
	"strconv"
	"strings"
)

// rowSignals are the per-row facts classification runs on: the leftmost two
// cell values, the unit/price cells and the style of the cell in column 0.
type rowSignals struct {
	col0  string
	col1  string
	unit  string
	price float64 // NaN when absent or unparsable

	whiteBG    bool
	categoryBG bool
	grayText   bool
	blackText  bool
}

func (s rowSignals) empty() bool {
	return s.col0 == "" && s.col1 == "" && s.unit == "" && math.IsNaN(s.price)
}

func (p *PriceListParser) readSignals(raw *RawSheet, styles *StyleSheet, row int, cols ColumnMap) rowSignals {
	st := styles.Cell(row, 0)
	return rowSignals{
		col0:       strings.TrimSpace(raw.Cell(row, 0)),
		col1:       strings.TrimSpace(raw.Cell(row, 1)),
		unit:       strings.TrimSpace(raw.Cell(row, cols.Unit)),
		price:      parseDecimal(raw.Cell(row, cols.Price)),
		whiteBG:    isWhiteBackground(st),
		categoryBG: p.rules.isCategoryColor(st),
		grayText:   isGrayText(st),
		blackText:  isBlackText(st),
	}
}

// extractRows walks the data region, classifying each row as empty, category
// or product, with up to two rows of lookahead for products whose unit and
// price spill onto the following rows.
func (p *PriceListParser) extractRows(raw *RawSheet, styles *StyleSheet, loc tableLocation) *ParseResult {
	result := &ParseResult{Products: []ParsedProduct{}, Categories: []string{}}
	seenCategories := make(map[string]bool)

	var currentCategory, currentSubcategory string

	i := loc.Bounds.Start
	for i < loc.Bounds.End {
		sig := p.readSignals(raw, styles, i, loc.Columns)

		if sig.empty() {
			i++
			continue
		}

		// Non-white rows are never products: either a category header or
		// decoration to skip.
		if !sig.whiteBG {
			if sig.categoryBG && sig.grayText && sig.col0 != "" {
				currentCategory = sig.col0
				currentSubcategory = ""
				if !seenCategories[currentCategory] {
					seenCategories[currentCategory] = true
					result.Categories = append(result.Categories, currentCategory)
				}
			}
			i++
			continue
		}

		if sig.blackText && (sig.col0 != "" || sig.col1 != "") {
			name := sig.col0
			if name == "" {
				name = sig.col1
			}

			unit := ""
			price := math.NaN()
			skip := 0

			// Standard single-row layout first.
			if sig.unit != "" && p.rules.IsUnitMeasurement(sig.unit) {
				unit = sig.unit
			}
			if !math.IsNaN(sig.price) {
				price = sig.price
			}

			// Some templates put the unit on the next row and the price on
			// the one after. Continuation rows must be white and carry no
			// name of their own, otherwise they are products in their own
			// right and must not be consumed.
			if (unit == "" || math.IsNaN(price)) && i+1 < loc.Bounds.End {
				next := p.readSignals(raw, styles, i+1, loc.Columns)
				if next.whiteBG && next.col0 == "" && next.col1 == "" &&
					next.unit != "" && p.rules.IsUnitMeasurement(next.unit) {
					unit = next.unit
					skip = 1
					if math.IsNaN(price) && i+2 < loc.Bounds.End {
						after := p.readSignals(raw, styles, i+2, loc.Columns)
						if after.whiteBG && after.col0 == "" && after.col1 == "" && !math.IsNaN(after.price) {
							price = after.price
							skip = 2
						}
					}
				}
			}

			if unit == "" && p.rules.DefaultUnit != "" {
				unit = p.rules.DefaultUnit
			}

			if unit != "" && !math.IsNaN(price) && price > 0 {
				category := currentSubcategory
				if category == "" {
					category = currentCategory
				}
				result.Products = append(result.Products, ParsedProduct{
					Name:     name,
					Article:  GenerateArticle(name),
					Unit:     NormalizeUnit(unit),
					Price:    price,
					Category: category,
				})
				i += skip
			} else if unit == "" {
				// A name with no unit anywhere is a subcategory label; it
				// overrides the category for the products that follow.
				currentSubcategory = name
			}
		}

		i++
	}

	result.TotalProducts = len(result.Products)
	log.Printf("parser: extracted %d products, %d categories", result.TotalProducts, len(result.Categories))
	return result
}

// parseDecimal coerces a cell value to a number, tolerating thousands spaces
// and a decimal comma. Unparsable values become NaN, not an error.
func parseDecimal(value string) float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return math.NaN()
	}
	s = strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// rgbComponents extracts the R, G, B channels from a hex color, accepting
// both RRGGBB and AARRGGBB forms.
func rgbComponents(rgb string) (r, g, b int, ok bool) {
	s := strings.ToUpper(rgb)
	if len(s) == 8 && strings.HasPrefix(s, "FF") {
		s = s[2:]
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	ri, err1 := strconv.ParseInt(s[0:2], 16, 0)
	gi, err2 := strconv.ParseInt(s[2:4], 16, 0)
	bi, err3 := strconv.ParseInt(s[4:6], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return int(ri), int(gi), int(bi), true
}

// isWhiteBackground reports whether the cell reads as a plain data row: no
// solid fill, a near-white fill, or the explicit no-fill palette index.
func isWhiteBackground(st CellStyle) bool {
	if !st.FillSolid {
		return true
	}
	if r, g, b, ok := rgbComponents(st.FillColor.RGB); ok {
		if r >= 250 && g >= 250 && b >= 250 {
			return true
		}
	}
	if st.FillColor.RGB == "" && st.FillColor.Indexed <= 0 && st.FillColor.Theme < 0 {
		return true
	}
	return st.FillColor.Indexed == 0
}

// isCategoryColor reports whether the fill marks a category row: an exact
// palette hit, a golden or light-gray tone, or a known yellow/gray legacy
// index or theme slot.
func (r *ClassificationRules) isCategoryColor(st CellStyle) bool {
	if !st.FillSolid {
		return false
	}

	if cr, cg, cb, ok := rgbComponents(st.FillColor.RGB); ok {
		for _, c := range r.CategoryColors {
			if pr, pg, pb, pok := rgbComponents(c); pok && pr == cr && pg == cg && pb == cb {
				return true
			}
		}
		// Golden: high red and green, low blue, red close to green.
		if cr >= 200 && cg >= 150 && cb <= 100 && abs(cr-cg) < 100 {
			return true
		}
		// Light gray: channels in [150, 220] and close to each other.
		if within(cr, 150, 220) && within(cg, 150, 220) && within(cb, 150, 220) &&
			abs(cr-cg) < 30 && abs(cg-cb) < 30 && abs(cr-cb) < 30 {
			return true
		}
	}

	if containsInt(r.YellowIndices, st.FillColor.Indexed) || containsInt(r.GrayIndices, st.FillColor.Indexed) {
		return true
	}
	return containsInt(r.CategoryThemes, st.FillColor.Theme)
}

// isGrayText reports whether the font color is a mid gray.
func isGrayText(st CellStyle) bool {
	r, g, b, ok := rgbComponents(st.FontColor.RGB)
	if !ok {
		return false
	}
	return within(r, 100, 200) && within(g, 100, 200) && within(b, 100, 200) &&
		abs(r-g) < 30 && abs(g-b) < 30 && abs(r-b) < 30
}

// isBlackText reports whether the font color is black; an unset color counts
// as the default black.
func isBlackText(st CellStyle) bool {
	if r, g, b, ok := rgbComponents(st.FontColor.RGB); ok {
		return r < 50 && g < 50 && b < 50
	}
	return st.FontColor.Indexed < 0 || st.FontColor.Indexed == 1
}

func within(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func containsInt(list []int, v int) bool {
	if v < 0 {
		return false
	}
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
