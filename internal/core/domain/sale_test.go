package domain_test

import (
	"testing"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string {
	return &s
}

func TestNewSaleItem_ReferenceExclusivity(t *testing.T) {
	price := decimal.NewFromFloat(100.00)

	tests := []struct {
		name      string
		productID *string
		serviceID *string
		quantity  int
		wantErr   error
	}{
		{
			name:      "product only is valid",
			productID: stringPtr("prod-1"),
			quantity:  1,
		},
		{
			name:      "service only is valid",
			serviceID: stringPtr("svc-1"),
			quantity:  1,
		},
		{
			name:     "neither reference is invalid",
			quantity: 1,
			wantErr:  domain.ErrItemRefExclusivity,
		},
		{
			name:      "both references is invalid",
			productID: stringPtr("prod-1"),
			serviceID: stringPtr("svc-1"),
			quantity:  1,
			wantErr:   domain.ErrItemRefExclusivity,
		},
		{
			name:      "zero quantity is invalid",
			productID: stringPtr("prod-1"),
			quantity:  0,
			wantErr:   domain.ErrItemQuantity,
		},
		{
			name:      "negative quantity is invalid",
			productID: stringPtr("prod-1"),
			quantity:  -3,
			wantErr:   domain.ErrItemQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := domain.NewSaleItem("item-1", "sale-1", tt.productID, tt.serviceID, tt.quantity, price)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			// Exactly one reference must be set on the constructed item.
			assert.NotEqual(t, item.ProductID == nil, item.ServiceID == nil)
			assert.Equal(t, tt.quantity, item.Quantity)
			assert.True(t, item.Price.Equal(price))
		})
	}
}

func TestSaleItem_Subtotal(t *testing.T) {
	item, err := domain.NewSaleItem("item-1", "sale-1", stringPtr("prod-1"), nil, 5, decimal.NewFromFloat(100.00))
	assert.NoError(t, err)
	assert.True(t, item.Subtotal().Equal(decimal.NewFromFloat(500.00)))
}

func TestSale_RecomputeTotal(t *testing.T) {
	sale := domain.Sale{
		SaleID: "sale-1",
		Status: domain.SalePending,
		Total:  decimal.NewFromFloat(999.99), // stale on purpose
	}

	itemA, _ := domain.NewSaleItem("item-a", "sale-1", stringPtr("prod-1"), nil, 2, decimal.NewFromFloat(10.50))
	itemB, _ := domain.NewSaleItem("item-b", "sale-1", nil, stringPtr("svc-1"), 1, decimal.NewFromFloat(30.00))
	sale.Items = []domain.SaleItem{itemA, itemB}

	sale.RecomputeTotal()
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(51.00)), "total should equal sum of item subtotals, got %s", sale.Total)

	sale.Items = nil
	sale.RecomputeTotal()
	assert.True(t, sale.Total.IsZero())
}

func TestSale_CanModifyItems(t *testing.T) {
	assert.True(t, (&domain.Sale{Status: domain.SalePending}).CanModifyItems())
	assert.False(t, (&domain.Sale{Status: domain.SaleCompleted}).CanModifyItems())
	assert.False(t, (&domain.Sale{Status: domain.SaleCanceled}).CanModifyItems())
}

func TestProduct_IsLowStock(t *testing.T) {
	assert.True(t, domain.Product{Stock: 2, MinStock: 5}.IsLowStock())
	assert.True(t, domain.Product{Stock: 5, MinStock: 5}.IsLowStock())
	assert.False(t, domain.Product{Stock: 6, MinStock: 5}.IsLowStock())
}
