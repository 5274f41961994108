package domain

import (
	"github.com/shopspring/decimal"
)

// CatalogEntryType distinguishes the two kinds of sellable catalog entries.
type CatalogEntryType string

const (
	CatalogProduct CatalogEntryType = "PRODUCT"
	CatalogService CatalogEntryType = "SERVICE"
)

// Product represents a stocked, physical catalog entry.
type Product struct {
	ProductID  string          `json:"productID"` // Primary Key (e.g., UUID)
	Name       string          `json:"name"`
	SKU        string          `json:"sku"` // Unique
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`      // Never negative
	MinStock   int             `json:"minStock"`   // Low-stock threshold
	SupplierID *string         `json:"supplierID"` // Nullable FK -> suppliers.supplier_id
	AuditFields
}

// IsLowStock reports whether the product is at or below its minimum stock threshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// Service represents a non-stocked catalog entry (labour, consulting, etc.).
// Services never participate in stock checks or deductions.
type Service struct {
	ServiceID        string          `json:"serviceID"` // Primary Key (e.g., UUID)
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	EstimatedMinutes int             `json:"estimatedMinutes"` // Nullable in storage, 0 = not set
	SupplierID       *string         `json:"supplierID"`       // Nullable FK -> suppliers.supplier_id
	AuditFields
}

// CatalogRef identifies exactly one catalog entry by type and ID.
type CatalogRef struct {
	Type CatalogEntryType `json:"type"`
	ID   string           `json:"id"`
}
