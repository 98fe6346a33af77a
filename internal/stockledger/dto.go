package stockledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/cynemos/smileinventory/pkg/db/models"
)

// MovementDTO represents a stock movement payload returned to clients.
type MovementDTO struct {
	ID          uuid.UUID          `json:"id"`
	ProductID   uuid.UUID          `json:"product_id"`
	Type        string             `json:"type"`
	Quantity    int                `json:"quantity"`
	BatchNumber string             `json:"batch_number"`
	Reference   *string            `json:"reference,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	CreatedBy   uuid.UUID          `json:"created_by"`
	Product     *ProductSummaryDTO `json:"product,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ProductSummaryDTO surfaces limited product data for movement history rows.
type ProductSummaryDTO struct {
	ID   uuid.UUID `json:"id"`
	SKU  string    `json:"sku"`
	Name string    `json:"name"`
}

// MovementListResult is one page of movement history.
type MovementListResult struct {
	Movements  []MovementDTO `json:"movements"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// NewMovementDTO builds a DTO from the persisted model.
func NewMovementDTO(movement *models.InventoryMovement) *MovementDTO {
	dto := &MovementDTO{
		ID:          movement.ID,
		ProductID:   movement.ProductID,
		Type:        movement.Type.String(),
		Quantity:    movement.Quantity,
		BatchNumber: movement.BatchNumber,
		Reference:   movement.Reference,
		Notes:       movement.Notes,
		CreatedBy:   movement.CreatedBy,
		CreatedAt:   movement.CreatedAt,
	}
	if movement.Product != nil {
		dto.Product = &ProductSummaryDTO{
			ID:   movement.Product.ID,
			SKU:  movement.Product.SKU,
			Name: movement.Product.Name,
		}
	}
	return dto
}
