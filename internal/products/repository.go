package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db/models"
)

// Repository wires together product catalog persistence helpers.
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

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductDetail fetches a product with supplier and batches.
func (r *Repository) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Inventory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns the full catalog, name ascending, with supplier and
// batches preloaded.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Inventory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SKUExists reports whether any product other than excludeID carries the SKU.
func (r *Repository) SKUExists(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != nil {
		tx = tx.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// CreateInventoryItem inserts a stock batch.
func (r *Repository) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CountMovements returns how many ledger entries reference the product.
func (r *Repository) CountMovements(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryMovement{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
