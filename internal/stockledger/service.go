package stockledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db"
	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/pagination"
)

// Service exposes stock ledger operations.
type Service interface {
	ApplyMovement(ctx context.Context, actorID uuid.UUID, input ApplyMovementInput) (*MovementDTO, error)
	ListMovements(ctx context.Context, input ListMovementsInput) (*MovementListResult, error)
}

// ApplyMovementInput holds the validated payload to record a movement.
type ApplyMovementInput struct {
	ProductID   uuid.UUID
	Type        enums.MovementType
	Quantity    int
	BatchNumber string
	Reference   *string
	Notes       *string
}

// ListMovementsInput filters and paginates movement history.
type ListMovementsInput struct {
	ProductID  *uuid.UUID
	Pagination pagination.Params
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a stock ledger service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock ledger repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// ApplyMovement records a movement and rolls its effect into the product's
// batch quantity and derived status. The movement insert, quantity update,
// and status write commit or roll back together.
func (s *service) ApplyMovement(ctx context.Context, actorID uuid.UUID, input ApplyMovementInput) (*MovementDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "movement type must be IN or OUT")
	}
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "acting user is required")
	}

	product, err := s.repo.FindProduct(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	batch := strings.TrimSpace(input.BatchNumber)
	if batch == "" {
		batch = DefaultBatchNumber(product.SKU, time.Now())
	}

	var created *models.InventoryMovement
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		movement := &models.InventoryMovement{
			ID:          uuid.New(),
			ProductID:   product.ID,
			Type:        input.Type,
			Quantity:    input.Quantity,
			BatchNumber: batch,
			Reference:   input.Reference,
			Notes:       input.Notes,
			CreatedBy:   actorID,
		}
		inserted, err := txRepo.CreateMovement(ctx, movement)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert movement")
		}
		created = inserted

		item, err := txRepo.FindInventoryItem(ctx, product.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product has no inventory record")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load inventory item")
		}

		// OUT movements are applied without a floor at zero so deficits
		// stay visible to low-stock reporting.
		if input.Type == enums.MovementTypeIn {
			item.Quantity += input.Quantity
		} else {
			item.Quantity -= input.Quantity
		}
		if err := txRepo.SaveInventoryItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save inventory item")
		}

		items, err := txRepo.ListInventoryItems(ctx, product.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory items")
		}
		status := DeriveStatus(TotalOnHand(items))
		if err := txRepo.UpdateProductStatus(ctx, product.ID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product status")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply movement")
	}

	return NewMovementDTO(created), nil
}

// ListMovements returns movement history newest first.
func (s *service) ListMovements(ctx context.Context, input ListMovementsInput) (*MovementListResult, error) {
	movements, nextCursor, err := s.repo.ListMovements(ctx, movementListQuery{
		ProductID:  input.ProductID,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list movements")
	}

	dtos := make([]MovementDTO, len(movements))
	for i := range movements {
		dtos[i] = *NewMovementDTO(&movements[i])
	}
	return &MovementListResult{Movements: dtos, NextCursor: nextCursor}, nil
}

// DefaultBatchNumber builds the fallback batch label for a movement recorded
// without one.
func DefaultBatchNumber(sku string, now time.Time) string {
	return fmt.Sprintf("%s-%s", sku, now.Format("2006-01-02"))
}
