package treatment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db/models"
)

// Repository wires together treatment persistence helpers.
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

// FindByID loads the treatment without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	var treatment models.Treatment
	if err := r.db.WithContext(ctx).First(&treatment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &treatment, nil
}

// GetTreatmentDetail fetches a treatment with patient and product lines.
func (r *Repository) GetTreatmentDetail(ctx context.Context, id uuid.UUID) (*models.Treatment, error) {
	var treatment models.Treatment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Products.Product").
		First(&treatment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &treatment, nil
}

// ListTreatments returns every treatment, date descending, with patient and
// product lines preloaded.
func (r *Repository) ListTreatments(ctx context.Context) ([]models.Treatment, error) {
	var treatments []models.Treatment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Products.Product").
		Order("date DESC").
		Find(&treatments).Error; err != nil {
		return nil, err
	}
	return treatments, nil
}

// CreateTreatment inserts a treatment row.
func (r *Repository) CreateTreatment(ctx context.Context, treatment *models.Treatment) (*models.Treatment, error) {
	if err := r.db.WithContext(ctx).Create(treatment).Error; err != nil {
		return nil, err
	}
	return treatment, nil
}

// UpdateTreatment updates an existing treatment row.
func (r *Repository) UpdateTreatment(ctx context.Context, treatment *models.Treatment) (*models.Treatment, error) {
	if err := r.db.WithContext(ctx).Omit("Patient", "Products").Save(treatment).Error; err != nil {
		return nil, err
	}
	return treatment, nil
}

// ReplaceLines deletes every line for the treatment and inserts the new set.
func (r *Repository) ReplaceLines(ctx context.Context, treatmentID uuid.UUID, lines []models.TreatmentProduct) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("treatment_id = ?", treatmentID).Delete(&models.TreatmentProduct{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return tx.Create(&lines).Error
}

// LoadCatalog fetches the referenced products with their inventory batches.
func (r *Repository) LoadCatalog(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*models.Product, map[uuid.UUID][]models.InventoryItem, error) {
	products := make(map[uuid.UUID]*models.Product, len(productIDs))
	items := make(map[uuid.UUID][]models.InventoryItem, len(productIDs))
	if len(productIDs) == 0 {
		return products, items, nil
	}

	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Inventory").
		Where("id IN ?", productIDs).
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	for i := range rows {
		products[rows[i].ID] = &rows[i]
		items[rows[i].ID] = rows[i].Inventory
	}
	return products, items, nil
}
