package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cynemos/smileinventory/internal/stockledger"
	"github.com/cynemos/smileinventory/pkg/db/models"
)

// ProductDTO represents the catalog payload returned to clients.
type ProductDTO struct {
	ID              uuid.UUID           `json:"id"`
	SKU             string              `json:"sku"`
	Name            string              `json:"name"`
	Category        string              `json:"category"`
	Description     *string             `json:"description,omitempty"`
	SupplierID      uuid.UUID           `json:"supplier_id"`
	UnitCost        decimal.Decimal     `json:"unit_cost"`
	SalePrice       decimal.Decimal     `json:"sale_price"`
	ReorderPoint    int                 `json:"reorder_point"`
	ReorderQuantity int                 `json:"reorder_quantity"`
	StorageLocation *string             `json:"storage_location,omitempty"`
	Status          string              `json:"status"`
	TotalQuantity   int                 `json:"total_quantity"`
	LowStock        bool                `json:"low_stock"`
	Supplier        *SupplierSummaryDTO `json:"supplier,omitempty"`
	Inventory       []InventoryItemDTO  `json:"inventory"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// SupplierSummaryDTO surfaces limited supplier data for product responses.
type SupplierSummaryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// InventoryItemDTO exposes a stock batch.
type InventoryItemDTO struct {
	ID             uuid.UUID  `json:"id"`
	BatchNumber    string     `json:"batch_number"`
	Quantity       int        `json:"quantity"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewProductDTO builds a DTO from the persisted model with its batches.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:              product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		Category:        product.Category,
		Description:     product.Description,
		SupplierID:      product.SupplierID,
		UnitCost:        product.UnitCost,
		SalePrice:       product.SalePrice,
		ReorderPoint:    product.ReorderPoint,
		ReorderQuantity: product.ReorderQuantity,
		StorageLocation: product.StorageLocation,
		Status:          product.Status.String(),
		TotalQuantity:   stockledger.TotalOnHand(product.Inventory),
		LowStock:        stockledger.IsLowStock(product, product.Inventory),
		Inventory:       make([]InventoryItemDTO, 0, len(product.Inventory)),
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if product.Supplier != nil {
		dto.Supplier = &SupplierSummaryDTO{
			ID:   product.Supplier.ID,
			Name: product.Supplier.Name,
		}
	}
	for _, item := range product.Inventory {
		dto.Inventory = append(dto.Inventory, InventoryItemDTO{
			ID:             item.ID,
			BatchNumber:    item.BatchNumber,
			Quantity:       item.Quantity,
			ExpirationDate: item.ExpirationDate,
			UpdatedAt:      item.UpdatedAt,
		})
	}
	return dto
}
