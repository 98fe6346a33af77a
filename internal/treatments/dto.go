package treatment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cynemos/smileinventory/pkg/db/models"
)

// TreatmentDTO represents the treatment payload returned to clients.
type TreatmentDTO struct {
	ID        uuid.UUID          `json:"id"`
	PatientID uuid.UUID          `json:"patient_id"`
	Date      time.Time          `json:"date"`
	Type      string             `json:"type"`
	Notes     *string            `json:"notes,omitempty"`
	Cost      decimal.Decimal    `json:"cost"`
	CreatedBy uuid.UUID          `json:"created_by"`
	Patient   *PatientSummaryDTO `json:"patient,omitempty"`
	Products  []LineDTO          `json:"products"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// PatientSummaryDTO surfaces limited patient data for treatment responses.
type PatientSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// LineDTO is a consumed product line. Line IDs change on every treatment edit
// because the full set is replaced.
type LineDTO struct {
	ID        uuid.UUID          `json:"id"`
	ProductID uuid.UUID          `json:"product_id"`
	Quantity  int                `json:"quantity"`
	Product   *ProductSummaryDTO `json:"product,omitempty"`
}

// ProductSummaryDTO surfaces limited product data for line items.
type ProductSummaryDTO struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// NewTreatmentDTO builds a DTO from the persisted model.
func NewTreatmentDTO(treatment *models.Treatment) *TreatmentDTO {
	dto := &TreatmentDTO{
		ID:        treatment.ID,
		PatientID: treatment.PatientID,
		Date:      treatment.Date,
		Type:      treatment.Type.String(),
		Notes:     treatment.Notes,
		Cost:      treatment.Cost,
		CreatedBy: treatment.CreatedBy,
		Products:  make([]LineDTO, 0, len(treatment.Products)),
		CreatedAt: treatment.CreatedAt,
		UpdatedAt: treatment.UpdatedAt,
	}
	if treatment.Patient != nil {
		dto.Patient = &PatientSummaryDTO{
			ID:        treatment.Patient.ID,
			FirstName: treatment.Patient.FirstName,
			LastName:  treatment.Patient.LastName,
		}
	}
	for _, line := range treatment.Products {
		entry := LineDTO{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if line.Product != nil {
			entry.Product = &ProductSummaryDTO{
				ID:        line.Product.ID,
				SKU:       line.Product.SKU,
				Name:      line.Product.Name,
				SalePrice: line.Product.SalePrice,
			}
		}
		dto.Products = append(dto.Products, entry)
	}
	return dto
}
