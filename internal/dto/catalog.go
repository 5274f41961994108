package dto

import (
	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	Name       string          `json:"name" binding:"required"`
	SKU        string          `json:"sku" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Stock      int             `json:"stock" binding:"gte=0"`
	MinStock   int             `json:"minStock" binding:"gte=0"`
	SupplierID *string         `json:"supplierID"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	Stock      *int             `json:"stock" binding:"omitempty,gte=0"`
	MinStock   *int             `json:"minStock" binding:"omitempty,gte=0"`
	SupplierID *string          `json:"supplierID"`
}

// CreateServiceRequest defines the data needed to create a service.
type CreateServiceRequest struct {
	Name             string          `json:"name" binding:"required"`
	Price            decimal.Decimal `json:"price" binding:"required"`
	EstimatedMinutes int             `json:"estimatedMinutes" binding:"gte=0"`
	SupplierID       *string         `json:"supplierID"`
}

// UpdateServiceRequest defines the data allowed for updating a service.
type UpdateServiceRequest struct {
	Name             *string          `json:"name"`
	Price            *decimal.Decimal `json:"price"`
	EstimatedMinutes *int             `json:"estimatedMinutes" binding:"omitempty,gte=0"`
	SupplierID       *string          `json:"supplierID"`
}

// ListCatalogParams defines query parameters for listing catalog entries.
type ListCatalogParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID  string          `json:"productID"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	MinStock   int             `json:"minStock"`
	LowStock   bool            `json:"lowStock"`
	SupplierID *string         `json:"supplierID,omitempty"`
}

// ServiceResponse defines the data returned for a service.
type ServiceResponse struct {
	ServiceID        string          `json:"serviceID"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	EstimatedMinutes int             `json:"estimatedMinutes"`
	SupplierID       *string         `json:"supplierID,omitempty"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:  p.ProductID,
		Name:       p.Name,
		SKU:        p.SKU,
		Price:      p.Price,
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		LowStock:   p.IsLowStock(),
		SupplierID: p.SupplierID,
	}
}

// ToProductResponses converts a slice of domain.Product to DTOs.
func ToProductResponses(products []domain.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToServiceResponse converts a domain.Service to ServiceResponse DTO.
func ToServiceResponse(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ServiceID:        s.ServiceID,
		Name:             s.Name,
		Price:            s.Price,
		EstimatedMinutes: s.EstimatedMinutes,
		SupplierID:       s.SupplierID,
	}
}

// ToServiceResponses converts a slice of domain.Service to DTOs.
func ToServiceResponses(services []domain.Service) []ServiceResponse {
	responses := make([]ServiceResponse, len(services))
	for i := range services {
		responses[i] = ToServiceResponse(&services[i])
	}
	return responses
}
