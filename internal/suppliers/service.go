package supplier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db/models"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
)

// Service exposes supplier directory operations.
type Service interface {
	CreateSupplier(ctx context.Context, input CreateSupplierInput) (*SupplierDTO, error)
	UpdateSupplier(ctx context.Context, supplierID uuid.UUID, input UpdateSupplierInput) (*SupplierDTO, error)
	ListSuppliers(ctx context.Context) ([]SupplierDTO, error)
}

// CreateSupplierInput holds the validated payload to create a supplier.
type CreateSupplierInput struct {
	Name              string
	Phone             *string
	Email             *string
	CustomerReference *string
}

// UpdateSupplierInput holds optional mutation values for a supplier.
type UpdateSupplierInput struct {
	Name              *string
	Phone             *string
	Email             *string
	CustomerReference *string
}

// SupplierDTO represents the supplier payload returned to clients.
type SupplierDTO struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Phone             *string   `json:"phone,omitempty"`
	Email             *string   `json:"email,omitempty"`
	CustomerReference *string   `json:"customer_reference,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type service struct {
	repo *Repository
}

// NewService constructs a supplier service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{repo: repo}, nil
}

// CreateSupplier inserts a new supplier.
func (s *service) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*SupplierDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	supplier := &models.Supplier{
		ID:                uuid.New(),
		Name:              name,
		Phone:             input.Phone,
		Email:             input.Email,
		CustomerReference: input.CustomerReference,
	}
	created, err := s.repo.CreateSupplier(ctx, supplier)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert supplier")
	}
	return newSupplierDTO(created), nil
}

// UpdateSupplier applies partial changes to a supplier.
func (s *service) UpdateSupplier(ctx context.Context, supplierID uuid.UUID, input UpdateSupplierInput) (*SupplierDTO, error) {
	supplier, err := s.repo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		supplier.Name = name
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.CustomerReference != nil {
		supplier.CustomerReference = input.CustomerReference
	}

	updated, err := s.repo.UpdateSupplier(ctx, supplier)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update supplier")
	}
	return newSupplierDTO(updated), nil
}

// ListSuppliers returns the directory sorted by name.
func (s *service) ListSuppliers(ctx context.Context) ([]SupplierDTO, error) {
	suppliers, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}
	dtos := make([]SupplierDTO, len(suppliers))
	for i := range suppliers {
		dtos[i] = *newSupplierDTO(&suppliers[i])
	}
	return dtos, nil
}

func newSupplierDTO(supplier *models.Supplier) *SupplierDTO {
	return &SupplierDTO{
		ID:                supplier.ID,
		Name:              supplier.Name,
		Phone:             supplier.Phone,
		Email:             supplier.Email,
		CustomerReference: supplier.CustomerReference,
		CreatedAt:         supplier.CreatedAt,
		UpdatedAt:         supplier.UpdatedAt,
	}
}
