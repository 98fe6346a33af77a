package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is a stock batch for a product. A product's total on-hand
// quantity is the sum of quantities across its batches.
//
// Quantity may go negative: OUT movements are applied without a floor so that
// deficits stay visible in low-stock reporting.
type InventoryItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:(gen_random_uuid());primaryKey"`
	ProductID      uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index"`
	BatchNumber    string     `gorm:"column:batch_number;type:text;not null"`
	Quantity       int        `gorm:"column:quantity;not null;default:0"`
	ExpirationDate *time.Time `gorm:"column:expiration_date"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// InitialBatchNumber is the batch provisioned alongside every new product.
const InitialBatchNumber = "INITIAL"
