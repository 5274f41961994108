package dto

import (
	"time"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest defines the data needed to open a new sale.
type CreateSaleRequest struct {
	CustomerID string `json:"customerID" binding:"required"`
}

// AddItemRequest defines the data needed to add a line item to a sale.
// Exactly one of productID/serviceID must be set; the cross-field rule is
// enforced in the service, the per-field rules here.
type AddItemRequest struct {
	ProductID *string `json:"productID"`
	ServiceID *string `json:"serviceID"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
}

// CatalogRef resolves the request into a typed catalog reference.
// Returns domain.ErrInvalidCatalogRef when neither or both IDs are set.
func (r AddItemRequest) CatalogRef() (domain.CatalogRef, error) {
	switch {
	case r.ProductID != nil && r.ServiceID == nil:
		return domain.CatalogRef{Type: domain.CatalogProduct, ID: *r.ProductID}, nil
	case r.ServiceID != nil && r.ProductID == nil:
		return domain.CatalogRef{Type: domain.CatalogService, ID: *r.ServiceID}, nil
	default:
		return domain.CatalogRef{}, domain.ErrInvalidCatalogRef
	}
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// SaleItemResponse defines the data returned for a sale line item.
type SaleItemResponse struct {
	SaleItemID string          `json:"saleItemID"`
	ProductID  *string         `json:"productID,omitempty"`
	ServiceID  *string         `json:"serviceID,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID     string             `json:"saleID"`
	CustomerID string             `json:"customerID"`
	SellerID   string             `json:"sellerID"`
	Total      decimal.Decimal    `json:"total"`
	Status     domain.SaleStatus  `json:"status"`
	Items      []SaleItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ListSalesResponse wraps a page of sales with the pagination token.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToSaleItemResponse converts a domain.SaleItem to SaleItemResponse DTO.
func ToSaleItemResponse(item domain.SaleItem) SaleItemResponse {
	return SaleItemResponse{
		SaleItemID: item.SaleItemID,
		ProductID:  item.ProductID,
		ServiceID:  item.ServiceID,
		Quantity:   item.Quantity,
		Price:      item.Price,
		Subtotal:   item.Subtotal(),
	}
}

// ToSaleResponse converts a domain.Sale to SaleResponse DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	resp := SaleResponse{
		SaleID:     s.SaleID,
		CustomerID: s.CustomerID,
		SellerID:   s.SellerID,
		Total:      s.Total,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
	}
	if len(s.Items) > 0 {
		resp.Items = make([]SaleItemResponse, len(s.Items))
		for i, item := range s.Items {
			resp.Items[i] = ToSaleItemResponse(item)
		}
	}
	return resp
}
