package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cynemos/smileinventory/pkg/enums"
)

// Treatment is a clinical act performed on a patient. Cost is derived from the
// line items at current sale prices and recomputed on every write.
type Treatment struct {
	ID        uuid.UUID           `gorm:"type:uuid;default:(gen_random_uuid());primaryKey"`
	PatientID uuid.UUID           `gorm:"column:patient_id;type:uuid;not null;index"`
	Date      time.Time           `gorm:"column:date;not null"`
	Type      enums.TreatmentType `gorm:"column:type;type:text;not null"`
	Notes     *string             `gorm:"column:notes;type:text"`
	Cost      decimal.Decimal     `gorm:"column:cost;type:numeric(10,2);not null"`
	CreatedBy uuid.UUID           `gorm:"column:created_by;type:uuid;not null"`
	Patient   *Patient            `gorm:"foreignKey:PatientID"`
	Products  []TreatmentProduct  `gorm:"foreignKey:TreatmentID"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TreatmentProduct is a (product, quantity) line item owned by its treatment.
// The full set is replaced wholesale on every treatment update, so line IDs do
// not survive edits.
type TreatmentProduct struct {
	ID          uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey"`
	TreatmentID uuid.UUID `gorm:"column:treatment_id;type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	Product     *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
