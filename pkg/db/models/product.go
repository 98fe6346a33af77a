package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cynemos/smileinventory/pkg/enums"
)

// Product represents a sellable or consumable catalog item.
//
// Status is derived from the total on-hand quantity by the stock ledger and
// must not be written by any other component.
type Product struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:(gen_random_uuid());primaryKey"`
	SKU             string              `gorm:"column:sku;type:text;not null;uniqueIndex"`
	Name            string              `gorm:"column:name;type:text;not null"`
	Category        string              `gorm:"column:category;type:text;not null"`
	Description     *string             `gorm:"column:description;type:text"`
	SupplierID      uuid.UUID           `gorm:"column:supplier_id;type:uuid;not null"`
	UnitCost        decimal.Decimal     `gorm:"column:unit_cost;type:numeric(10,2);not null"`
	SalePrice       decimal.Decimal     `gorm:"column:sale_price;type:numeric(10,2);not null"`
	ReorderPoint    int                 `gorm:"column:reorder_point;not null;default:0"`
	ReorderQuantity int                 `gorm:"column:reorder_quantity;not null;default:0"`
	StorageLocation *string             `gorm:"column:storage_location;type:text"`
	Status          enums.ProductStatus `gorm:"column:status;type:text;not null;default:'ACTIVE'"`
	Supplier        *Supplier           `gorm:"foreignKey:SupplierID"`
	Inventory       []InventoryItem     `gorm:"foreignKey:ProductID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
