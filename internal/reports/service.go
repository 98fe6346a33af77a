package reports

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	product "github.com/cynemos/smileinventory/internal/products"
	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
)

// Service exposes reporting and alerting reads. Every result is recomputed
// from a fresh snapshot; nothing is cached.
type Service interface {
	LowStock(ctx context.Context) ([]product.ProductDTO, error)
	Dashboard(ctx context.Context, now time.Time) (*DashboardStatsDTO, error)
	Finance(ctx context.Context, period enums.FinancePeriod, now time.Time) (*FinanceStatsDTO, error)
}

// Repository fetches the report snapshots.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProductsWithInventory returns the catalog with batches, name ascending.
func (r *Repository) ListProductsWithInventory(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Inventory").
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListPatients returns the full register.
func (r *Repository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.db.WithContext(ctx).Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// ListTreatments returns every treatment without associations.
func (r *Repository) ListTreatments(ctx context.Context) ([]models.Treatment, error) {
	var treatments []models.Treatment
	if err := r.db.WithContext(ctx).Find(&treatments).Error; err != nil {
		return nil, err
	}
	return treatments, nil
}

type service struct {
	repo *Repository
}

// NewService constructs a reporting service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo}, nil
}

// LowStock returns the products needing reorder, name ascending.
func (s *service) LowStock(ctx context.Context) ([]product.ProductDTO, error) {
	products, err := s.repo.ListProductsWithInventory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	low := LowStockProducts(products)
	dtos := make([]product.ProductDTO, len(low))
	for i := range low {
		dtos[i] = *product.NewProductDTO(&low[i])
	}
	return dtos, nil
}

// Dashboard recomputes the landing-page snapshot for the given reference time.
func (s *service) Dashboard(ctx context.Context, now time.Time) (*DashboardStatsDTO, error) {
	patients, err := s.repo.ListPatients(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list patients")
	}
	products, err := s.repo.ListProductsWithInventory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	treatments, err := s.repo.ListTreatments(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list treatments")
	}

	stats := ComputeDashboardStats(patients, products, treatments, now)
	return &stats, nil
}

// Finance aggregates treatment revenue for the requested window.
func (s *service) Finance(ctx context.Context, period enums.FinancePeriod, now time.Time) (*FinanceStatsDTO, error) {
	if !period.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "period must be one of day, week, month, year")
	}
	treatments, err := s.repo.ListTreatments(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list treatments")
	}

	stats := ComputeFinanceStats(treatments, period, now)
	return &stats, nil
}
