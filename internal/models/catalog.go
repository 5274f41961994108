package models

import "github.com/shopspring/decimal"

// Product represents a row in the products table.
type Product struct {
	ProductID  string          `json:"productID" db:"product_id"`
	Name       string          `json:"name" db:"name"`
	SKU        string          `json:"sku" db:"sku"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Stock      int             `json:"stock" db:"stock"`
	MinStock   int             `json:"minStock" db:"min_stock"`
	SupplierID *string         `json:"supplierID" db:"supplier_id"` // Nullable
	AuditFields
}

// Service represents a row in the services table.
type Service struct {
	ServiceID        string          `json:"serviceID" db:"service_id"`
	Name             string          `json:"name" db:"name"`
	Price            decimal.Decimal `json:"price" db:"price"`
	EstimatedMinutes int             `json:"estimatedMinutes" db:"estimated_minutes"`
	SupplierID       *string         `json:"supplierID" db:"supplier_id"` // Nullable
	AuditFields
}
