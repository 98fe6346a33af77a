package stockledger

import (
	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
)

// TotalOnHand sums the quantity across every batch of a product.
// Negative batches count against the total.
func TotalOnHand(items []models.InventoryItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// IsLowStock reports whether the product needs reordering. This is the single
// predicate used by alerts, the dashboard, and product payloads.
func IsLowStock(product *models.Product, items []models.InventoryItem) bool {
	if product == nil {
		return false
	}
	return TotalOnHand(items) <= product.ReorderPoint
}

// DeriveStatus maps a total on-hand quantity to the product status. It is the
// only place status is derived; manual INACTIVE is overwritten by the next
// movement.
func DeriveStatus(totalQty int) enums.ProductStatus {
	if totalQty <= 0 {
		return enums.ProductStatusOutOfStock
	}
	return enums.ProductStatusActive
}
