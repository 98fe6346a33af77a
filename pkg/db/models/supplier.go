package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a product vendor the clinic orders from.
type Supplier struct {
	ID                uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey"`
	Name              string    `gorm:"column:name;type:text;not null"`
	Phone             *string   `gorm:"column:phone;type:text"`
	Email             *string   `gorm:"column:email;type:text"`
	CustomerReference *string   `gorm:"column:customer_reference;type:text"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
