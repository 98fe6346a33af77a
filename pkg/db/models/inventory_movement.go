package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cynemos/smileinventory/pkg/enums"
)

// InventoryMovement is an append-only stock event. Movements are the cause,
// InventoryItem.Quantity is the effect; rows are never updated or deleted.
type InventoryMovement struct {
	ID          uuid.UUID          `gorm:"type:uuid;default:(gen_random_uuid());primaryKey"`
	ProductID   uuid.UUID          `gorm:"column:product_id;type:uuid;not null;index"`
	Type        enums.MovementType `gorm:"column:type;type:text;not null"`
	Quantity    int                `gorm:"column:quantity;not null"`
	BatchNumber string             `gorm:"column:batch_number;type:text;not null"`
	Reference   *string            `gorm:"column:reference;type:text"`
	Notes       *string            `gorm:"column:notes;type:text"`
	CreatedBy   uuid.UUID          `gorm:"column:created_by;type:uuid;not null"`
	Product     *Product           `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
}
