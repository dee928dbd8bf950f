package models

import (
	"time"
)

// PriceListStatus tracks the processing lifecycle of an uploaded file
type PriceListStatus string

const (
	PriceListNew        PriceListStatus = "new"
	PriceListProcessing PriceListStatus = "processing"
	PriceListProcessed  PriceListStatus = "processed"
	PriceListFailed     PriceListStatus = "failed"
)

// PriceList represents one uploaded supplier spreadsheet and its processing
// outcome. The file itself lives in object storage under StorageKey.
type PriceList struct {
	ID            int             `json:"id"`
	SupplierID    int             `json:"supplier_id"`
	FileName      string          `json:"file_name"`
	StorageKey    string          `json:"-"`
	Status        PriceListStatus `json:"status"`
	Log           string          `json:"log"`
	ProductsCount int             `json:"products_count"`
	UploadedAt    time.Time       `json:"uploaded_at"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
}

// PriceListWithSupplier includes the supplier name for listings
type PriceListWithSupplier struct {
	PriceList
	SupplierName string `json:"supplier_name"`
}

// PriceListListParams contains parameters for listing price lists
type PriceListListParams struct {
	Limit      int
	Offset     int
	SupplierID *int
	Status     *PriceListStatus
}
