package models

import "github.com/shopspring/decimal"

// SaleStatus indicates the lifecycle state of a sale row.
type SaleStatus string

const (
	SalePending   SaleStatus = "PENDING"
	SaleCompleted SaleStatus = "COMPLETED"
	SaleCanceled  SaleStatus = "CANCELED"
)

// Sale represents a row in the sales table.
type Sale struct {
	SaleID     string          `json:"saleID" db:"sale_id"`
	CustomerID string          `json:"customerID" db:"customer_id"`
	SellerID   string          `json:"sellerID" db:"seller_id"`
	Total      decimal.Decimal `json:"total" db:"total"`
	Status     SaleStatus      `json:"status" db:"status"`
	AuditFields
}

// SaleItem represents a row in the sale_items table. A CHECK constraint
// guarantees exactly one of product_id/service_id is non-null.
type SaleItem struct {
	SaleItemID string          `json:"saleItemID" db:"sale_item_id"`
	SaleID     string          `json:"saleID" db:"sale_id"`
	ProductID  *string         `json:"productID" db:"product_id"` // Nullable
	ServiceID  *string         `json:"serviceID" db:"service_id"` // Nullable
	Quantity   int             `json:"quantity" db:"quantity"`
	Price      decimal.Decimal `json:"price" db:"price"` // Snapshot at add time
	AuditFields
}
