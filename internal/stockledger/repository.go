package stockledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
	"github.com/cynemos/smileinventory/pkg/pagination"
)

// Repository wires together movement and inventory persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateMovement inserts an append-only movement row.
func (r *Repository) CreateMovement(ctx context.Context, movement *models.InventoryMovement) (*models.InventoryMovement, error) {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		return nil, err
	}
	return movement, nil
}

// FindProduct loads the product without associations.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindInventoryItem loads the first inventory batch for the product,
// oldest batch first.
func (r *Repository) FindInventoryItem(ctx context.Context, productID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListInventoryItems returns every batch for the product.
func (r *Repository) ListInventoryItems(ctx context.Context, productID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SaveInventoryItem persists the batch row.
func (r *Repository) SaveInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateProductStatus writes the derived status column only.
func (r *Repository) UpdateProductStatus(ctx context.Context, productID uuid.UUID, status enums.ProductStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("status", status).Error
}

type movementListQuery struct {
	ProductID  *uuid.UUID
	Pagination pagination.Params
}

// ListMovements returns movements newest first with the product preloaded.
// A nil productID lists across all products.
func (r *Repository) ListMovements(ctx context.Context, query movementListQuery) ([]models.InventoryMovement, string, error) {
	limit := pagination.LimitWithBuffer(query.Pagination.Limit)

	tx := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC, id DESC").
		Limit(limit)

	if query.ProductID != nil {
		tx = tx.Where("product_id = ?", *query.ProductID)
	}
	if cursor, err := pagination.ParseCursor(query.Pagination.Cursor); err != nil {
		return nil, "", err
	} else if cursor != nil {
		tx = tx.Where("created_at < ? OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var movements []models.InventoryMovement
	if err := tx.Find(&movements).Error; err != nil {
		return nil, "", err
	}

	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	nextCursor := ""
	if len(movements) > pageSize {
		movements = movements[:pageSize]
		last := movements[len(movements)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return movements, nextCursor, nil
}
