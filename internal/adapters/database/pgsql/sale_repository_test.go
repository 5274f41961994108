package pgsql

import (
	"testing"

	"github.com/officio/business_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func productItem(productID string, quantity int) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID: "item-" + productID,
		ProductID:  stringPtr(productID),
		Quantity:   quantity,
		Price:      decimal.NewFromInt(10),
	}
}

func serviceItem(serviceID string, quantity int) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID: "item-" + serviceID,
		ServiceID:  stringPtr(serviceID),
		Quantity:   quantity,
		Price:      decimal.NewFromInt(10),
	}
}

func TestStockDemand(t *testing.T) {
	t.Run("aggregates duplicate products", func(t *testing.T) {
		items := []domain.SaleItem{
			productItem("prod-1", 2),
			productItem("prod-2", 1),
			{SaleItemID: "item-3", ProductID: stringPtr("prod-1"), Quantity: 3, Price: decimal.NewFromInt(10)},
		}

		demand := stockDemand(items)

		assert.Equal(t, map[string]int{"prod-1": 5, "prod-2": 1}, demand)
	})

	t.Run("service items never demand stock", func(t *testing.T) {
		items := []domain.SaleItem{
			serviceItem("svc-1", 4),
			serviceItem("svc-2", 1),
		}

		demand := stockDemand(items)

		assert.Empty(t, demand)
	})

	t.Run("mixed sale only counts product items", func(t *testing.T) {
		items := []domain.SaleItem{
			productItem("prod-1", 2),
			serviceItem("svc-1", 9),
		}

		demand := stockDemand(items)

		assert.Equal(t, map[string]int{"prod-1": 2}, demand)
	})

	t.Run("no items yields empty demand", func(t *testing.T) {
		assert.Empty(t, stockDemand(nil))
	})
}

func TestFinalizeStockDeltas(t *testing.T) {
	t.Run("deducts demanded quantities", func(t *testing.T) {
		demand := map[string]int{"prod-1": 3, "prod-2": 1}
		locked := map[string]domain.Product{
			"prod-1": {ProductID: "prod-1", Name: "Widget", Stock: 5},
			"prod-2": {ProductID: "prod-2", Name: "Gadget", Stock: 1},
		}

		deltas, err := finalizeStockDeltas(demand, locked)

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"prod-1": -3, "prod-2": -1}, deltas)
	})

	t.Run("exact stock is enough", func(t *testing.T) {
		demand := map[string]int{"prod-1": 5}
		locked := map[string]domain.Product{
			"prod-1": {ProductID: "prod-1", Name: "Widget", Stock: 5},
		}

		deltas, err := finalizeStockDeltas(demand, locked)

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"prod-1": -5}, deltas)
	})

	t.Run("insufficient stock names the product and what is left", func(t *testing.T) {
		demand := map[string]int{"prod-1": 3}
		locked := map[string]domain.Product{
			"prod-1": {ProductID: "prod-1", Name: "Widget", Stock: 2},
		}

		deltas, err := finalizeStockDeltas(demand, locked)

		require.Error(t, err)
		assert.Nil(t, deltas)
		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Widget", stockErr.ProductName)
		assert.Equal(t, 2, stockErr.Available)
	})

	t.Run("aggregated demand is checked as a whole", func(t *testing.T) {
		// Two items of the same product, each within stock on its own but
		// not together.
		items := []domain.SaleItem{
			productItem("prod-1", 2),
			{SaleItemID: "item-dup", ProductID: stringPtr("prod-1"), Quantity: 2, Price: decimal.NewFromInt(10)},
		}
		locked := map[string]domain.Product{
			"prod-1": {ProductID: "prod-1", Name: "Widget", Stock: 3},
		}

		_, err := finalizeStockDeltas(stockDemand(items), locked)

		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 3, stockErr.Available)
	})

	t.Run("empty demand yields empty deltas", func(t *testing.T) {
		deltas, err := finalizeStockDeltas(map[string]int{}, nil)

		require.NoError(t, err)
		assert.Empty(t, deltas)
	})
}

func TestRestoreStockDeltas(t *testing.T) {
	demand := map[string]int{"prod-1": 3, "prod-2": 1}

	deltas := restoreStockDeltas(demand)

	assert.Equal(t, map[string]int{"prod-1": 3, "prod-2": 1}, deltas)
}

func TestRestoreStockDeltas_MirrorsFinalize(t *testing.T) {
	// Restoring after a finalize must cancel out exactly.
	items := []domain.SaleItem{
		productItem("prod-1", 2),
		productItem("prod-2", 1),
		serviceItem("svc-1", 4),
	}
	locked := map[string]domain.Product{
		"prod-1": {ProductID: "prod-1", Name: "Widget", Stock: 10},
		"prod-2": {ProductID: "prod-2", Name: "Gadget", Stock: 10},
	}

	demand := stockDemand(items)
	deducted, err := finalizeStockDeltas(demand, locked)
	require.NoError(t, err)
	restored := restoreStockDeltas(demand)

	require.Len(t, restored, len(deducted))
	for productID, delta := range deducted {
		assert.Equal(t, -delta, restored[productID])
	}
}
