package patient

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db/models"
)

// Repository handles patient persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a patient by its identifier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// ListPatients returns every patient, most recently registered first.
func (r *Repository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// CreatePatient inserts a new patient row.
func (r *Repository) CreatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return nil, err
	}
	return patient, nil
}

// UpdatePatient updates an existing patient row.
func (r *Repository) UpdatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return nil, err
	}
	return patient, nil
}
