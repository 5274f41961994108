package mapping

import (
	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/officio/business_mgmt_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		Name:        d.Name,
		SKU:         d.SKU,
		Price:       d.Price,
		Stock:       d.Stock,
		MinStock:    d.MinStock,
		SupplierID:  d.SupplierID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		Name:        m.Name,
		SKU:         m.SKU,
		Price:       m.Price,
		Stock:       m.Stock,
		MinStock:    m.MinStock,
		SupplierID:  m.SupplierID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}

// ToModelService converts a domain Service to a model Service
func ToModelService(d domain.Service) models.Service {
	return models.Service{
		ServiceID:        d.ServiceID,
		Name:             d.Name,
		Price:            d.Price,
		EstimatedMinutes: d.EstimatedMinutes,
		SupplierID:       d.SupplierID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainService converts a model Service to a domain Service
func ToDomainService(m models.Service) domain.Service {
	return domain.Service{
		ServiceID:        m.ServiceID,
		Name:             m.Name,
		Price:            m.Price,
		EstimatedMinutes: m.EstimatedMinutes,
		SupplierID:       m.SupplierID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainServiceSlice converts a slice of model Services to domain Services
func ToDomainServiceSlice(ms []models.Service) []domain.Service {
	ds := make([]domain.Service, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainService(m)
	}
	return ds
}
