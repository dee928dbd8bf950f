package models

import (
	"time"
)

// Supplier represents a wholesale supplier whose price lists feed the catalog
type Supplier struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	InternalCode  string    `json:"internal_code"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Address       *string   `json:"address,omitempty"`
	Website       *string   `json:"website,omitempty"`
	MarkupSom     float64   `json:"markup_som"` // fixed markup added to every base price
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SupplierWithStats includes aggregated counts
type SupplierWithStats struct {
	Supplier
	ProductCount   int `json:"product_count"`
	PriceListCount int `json:"price_list_count"`
}

// CreateSupplierRequest is the request body for creating a supplier
type CreateSupplierRequest struct {
	Name          string   `json:"name"`
	InternalCode  string   `json:"internal_code"`
	ContactPerson *string  `json:"contact_person,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Address       *string  `json:"address,omitempty"`
	Website       *string  `json:"website,omitempty"`
	MarkupSom     float64  `json:"markup_som"`
}

// UpdateSupplierRequest is the request body for updating a supplier
type UpdateSupplierRequest struct {
	Name          *string  `json:"name,omitempty"`
	ContactPerson *string  `json:"contact_person,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Address       *string  `json:"address,omitempty"`
	Website       *string  `json:"website,omitempty"`
	MarkupSom     *float64 `json:"markup_som,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

// SupplierListParams contains parameters for listing suppliers
type SupplierListParams struct {
	Limit    int
	Offset   int
	IsActive *bool
}
