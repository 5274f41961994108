package mapping

import (
	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/officio/business_mgmt_app/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:      d.SaleID,
		CustomerID:  d.CustomerID,
		SellerID:    d.SellerID,
		Total:       d.Total,
		Status:      models.SaleStatus(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:      m.SaleID,
		CustomerID:  m.CustomerID,
		SellerID:    m.SellerID,
		Total:       m.Total,
		Status:      domain.SaleStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSaleItem converts a domain SaleItem to a model SaleItem
func ToModelSaleItem(d domain.SaleItem) models.SaleItem {
	return models.SaleItem{
		SaleItemID:  d.SaleItemID,
		SaleID:      d.SaleID,
		ProductID:   d.ProductID,
		ServiceID:   d.ServiceID,
		Quantity:    d.Quantity,
		Price:       d.Price,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSaleItem converts a model SaleItem to a domain SaleItem
func ToDomainSaleItem(m models.SaleItem) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID:  m.SaleItemID,
		SaleID:      m.SaleID,
		ProductID:   m.ProductID,
		ServiceID:   m.ServiceID,
		Quantity:    m.Quantity,
		Price:       m.Price,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleItemSlice converts a slice of model SaleItems to domain SaleItems
func ToDomainSaleItemSlice(ms []models.SaleItem) []domain.SaleItem {
	ds := make([]domain.SaleItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleItem(m)
	}
	return ds
}
