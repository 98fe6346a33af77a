package supplier

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db/models"
)

// Repository handles supplier persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a supplier by its identifier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// ListSuppliers returns every supplier, name ascending.
func (r *Repository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// CreateSupplier inserts a new supplier row.
func (r *Repository) CreateSupplier(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}

// UpdateSupplier updates an existing supplier row.
func (r *Repository) UpdateSupplier(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if err := r.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return nil, err
	}
	return supplier, nil
}
