package models

import (
	"time"
)

// Category is a flat product grouping created from parsed price lists
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryWithCount includes the number of active products in the category
type CategoryWithCount struct {
	Category
	ProductCount int `json:"product_count"`
}

// Product is a priced catalog entry imported from a supplier price list.
// FinalPrice is BasePrice plus the supplier's fixed markup.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Article     string    `json:"article"`
	SupplierID  *int      `json:"supplier_id,omitempty"`
	PriceListID *int      `json:"price_list_id,omitempty"`
	CategoryID  *int      `json:"category_id,omitempty"`
	Unit        string    `json:"unit"`
	BasePrice   float64   `json:"base_price"`
	FinalPrice  float64   `json:"final_price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductWithDetails includes supplier and category names
type ProductWithDetails struct {
	Product
	SupplierName *string `json:"supplier_name,omitempty"`
	CategoryName *string `json:"category_name,omitempty"`
}

// ProductListParams contains parameters for listing products
type ProductListParams struct {
	Limit      int
	Offset     int
	Search     string
	CategoryID *int
	SupplierID *int
	ActiveOnly bool
}
