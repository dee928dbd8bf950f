package services

import (
	"context"
	"fmt"

	"github.com/AsanSh/zakup.one/internal/database"
	"github.com/AsanSh/zakup.one/internal/models"
	"github.com/AsanSh/zakup.one/internal/parser"
)

// ImportResult summarizes what a price list import changed
type ImportResult struct {
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Categories int `json:"categories"`
}

// ImporterService persists parsed price list rows as catalog products
type ImporterService struct {
	db *database.DB
}

// NewImporterService creates a new importer service
func NewImporterService(db *database.DB) *ImporterService {
	return &ImporterService{db: db}
}

// Import writes the parse result into the catalog. Products are keyed by
// (article, supplier) so re-importing the same file updates rows in place.
// The final price is the supplier's fixed markup added to the parsed price.
func (s *ImporterService) Import(ctx context.Context, supplier *models.Supplier, priceListID int, result *parser.ParseResult) (*ImportResult, error) {
	summary := &ImportResult{}

	// Resolve category names once per import
	categoryIDs := make(map[string]int, len(result.Categories))
	for _, name := range result.Categories {
		cat, err := s.db.GetOrCreateCategory(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", name, err)
		}
		categoryIDs[name] = cat.ID
	}
	summary.Categories = len(categoryIDs)

	for _, p := range result.Products {
		var categoryID *int
		if id, ok := categoryIDs[p.Category]; ok {
			categoryID = &id
		}

		finalPrice := p.Price + supplier.MarkupSom

		_, created, err := s.db.UpsertParsedProduct(ctx, supplier.ID, priceListID, categoryID,
			p.Name, p.Article, p.Unit, p.Price, finalPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert product %q: %w", p.Name, err)
		}

		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	return summary, nil
}
