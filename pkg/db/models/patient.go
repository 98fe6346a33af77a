package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cynemos/smileinventory/pkg/types"
)

// Patient holds the personal record plus two free-form nested histories
// persisted as jsonb documents.
type Patient struct {
	ID             uuid.UUID            `gorm:"type:uuid;default:(gen_random_uuid());primaryKey"`
	FirstName      string               `gorm:"column:first_name;type:text;not null"`
	LastName       string               `gorm:"column:last_name;type:text;not null"`
	Email          *string              `gorm:"column:email;type:text"`
	Phone          *string              `gorm:"column:phone;type:text"`
	Address        *string              `gorm:"column:address;type:text"`
	DateOfBirth    *time.Time           `gorm:"column:date_of_birth;type:date"`
	MedicalHistory types.MedicalHistory `gorm:"column:medical_history;type:jsonb;serializer:json"`
	DentalHistory  types.DentalHistory  `gorm:"column:dental_history;type:jsonb;serializer:json"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
