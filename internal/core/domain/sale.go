package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// SaleStatus indicates the lifecycle state of a sale.
type SaleStatus string

const (
	SalePending   SaleStatus = "PENDING"
	SaleCompleted SaleStatus = "COMPLETED"
	SaleCanceled  SaleStatus = "CANCELED"
)

// ErrItemRefExclusivity is returned when a sale item does not reference
// exactly one of product or service.
var ErrItemRefExclusivity = errors.New("sale item must reference exactly one of product or service")

// ErrItemQuantity is returned when a sale item quantity is below one.
var ErrItemQuantity = errors.New("sale item quantity must be at least 1")

// Sale represents a customer transaction composed of line items.
// Total is derived from the items and must never be edited independently.
type Sale struct {
	SaleID     string          `json:"saleID"` // Primary Key (e.g., UUID)
	CustomerID string          `json:"customerID"`
	SellerID   string          `json:"sellerID"` // FK -> users.user_id
	Total      decimal.Decimal `json:"total"`
	Status     SaleStatus      `json:"status"` // Default: PENDING
	Items      []SaleItem      `json:"items,omitempty"`
	AuditFields
}

// SaleItem is one line within a sale. It references exactly one of
// {product, service} and carries the unit price snapshotted at the moment
// the item was added. The snapshot never changes afterwards, regardless of
// later catalog price edits.
type SaleItem struct {
	SaleItemID string          `json:"saleItemID"` // Primary Key (e.g., UUID)
	SaleID     string          `json:"saleID"`     // FK -> sales.sale_id (cascade delete)
	ProductID  *string         `json:"productID,omitempty"`
	ServiceID  *string         `json:"serviceID,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"` // Unit price at the moment of sale
	AuditFields
}

// NewSaleItem constructs a sale item, enforcing the reference exclusivity
// and minimum quantity invariants at construction time so an invalid item
// cannot be represented.
func NewSaleItem(saleItemID, saleID string, productID, serviceID *string, quantity int, price decimal.Decimal) (SaleItem, error) {
	if (productID == nil) == (serviceID == nil) {
		return SaleItem{}, ErrItemRefExclusivity
	}
	if quantity < 1 {
		return SaleItem{}, ErrItemQuantity
	}
	return SaleItem{
		SaleItemID: saleItemID,
		SaleID:     saleID,
		ProductID:  productID,
		ServiceID:  serviceID,
		Quantity:   quantity,
		Price:      price,
	}, nil
}

// Subtotal returns quantity times the snapshotted unit price.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// RecomputeTotal sets the sale total to the sum of its items' subtotals.
// It must be called after every item mutation; it has no other side effects.
func (s *Sale) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal())
	}
	s.Total = total
}

// CanModifyItems reports whether line items may still be added or removed.
// Only PENDING sales are mutable; COMPLETED and CANCELED sales are frozen.
func (s *Sale) CanModifyItems() bool {
	return s.Status == SalePending
}
