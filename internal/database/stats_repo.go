package database

import (
	"context"
)

// DashboardStats aggregates catalog-wide counts for the admin dashboard
type DashboardStats struct {
	Suppliers       int `json:"suppliers"`
	ActiveSuppliers int `json:"active_suppliers"`
	Categories      int `json:"categories"`
	Products        int `json:"products"`
	ActiveProducts  int `json:"active_products"`
	PriceLists      int `json:"price_lists"`
	PriceListsNew   int `json:"price_lists_new"`
	PriceListsFail  int `json:"price_lists_failed"`
}

// GetDashboardStats returns aggregate counts across the catalog
func (db *DB) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	err := db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM suppliers),
			(SELECT COUNT(*) FROM suppliers WHERE is_active),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE is_active),
			(SELECT COUNT(*) FROM price_lists),
			(SELECT COUNT(*) FROM price_lists WHERE status = 'new'),
			(SELECT COUNT(*) FROM price_lists WHERE status = 'failed')
	`).Scan(
		&stats.Suppliers, &stats.ActiveSuppliers, &stats.Categories,
		&stats.Products, &stats.ActiveProducts,
		&stats.PriceLists, &stats.PriceListsNew, &stats.PriceListsFail,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
