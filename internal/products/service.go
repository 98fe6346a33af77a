package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db"
	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, actorID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU             string
	Name            string
	Category        string
	Description     *string
	SupplierID      uuid.UUID
	UnitCost        decimal.Decimal
	SalePrice       decimal.Decimal
	ReorderPoint    int
	ReorderQuantity int
	StorageLocation *string
	Status          *enums.ProductStatus
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	SKU             *string
	Name            *string
	Category        *string
	Description     *string
	SupplierID      *uuid.UUID
	UnitCost        *decimal.Decimal
	SalePrice       *decimal.Decimal
	ReorderPoint    *int
	ReorderQuantity *int
	StorageLocation *string
	Status          *enums.ProductStatus
}

type supplierLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
}

type service struct {
	repo         *Repository
	dbClient     *db.Client
	supplierRepo supplierLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, supplierRepo supplierLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if supplierRepo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{repo: repo, dbClient: dbClient, supplierRepo: supplierRepo}, nil
}

// CreateProduct validates the SKU against the existing catalog, then inserts
// the product together with its INITIAL zero-quantity batch.
func (s *service) CreateProduct(ctx context.Context, actorID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "acting user is required")
	}
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if err := validatePricing(input.UnitCost, input.SalePrice); err != nil {
		return nil, err
	}
	if err := validateReorder(input.ReorderPoint, input.ReorderQuantity); err != nil {
		return nil, err
	}
	status := enums.ProductStatusActive
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product status")
		}
		status = *input.Status
	}

	if err := s.ensureSupplier(ctx, input.SupplierID); err != nil {
		return nil, err
	}

	exists, err := s.repo.SKUExists(ctx, sku, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sku")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("a product with SKU %s already exists", sku))
	}

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			ID:              uuid.New(),
			SKU:             sku,
			Name:            strings.TrimSpace(input.Name),
			Category:        input.Category,
			Description:     input.Description,
			SupplierID:      input.SupplierID,
			UnitCost:        input.UnitCost,
			SalePrice:       input.SalePrice,
			ReorderPoint:    input.ReorderPoint,
			ReorderQuantity: input.ReorderQuantity,
			StorageLocation: input.StorageLocation,
			Status:          status,
		}
		created, err := txRepo.CreateProduct(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err, "idx_products_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("a product with SKU %s already exists", sku))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		item := &models.InventoryItem{
			ID:          uuid.New(),
			ProductID:   created.ID,
			BatchNumber: models.InitialBatchNumber,
			Quantity:    0,
		}
		if _, err := txRepo.CreateInventoryItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory item")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	detail, err := s.repo.GetProductDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(detail), nil
}

// UpdateProduct applies partial changes. Status edits are rejected once the
// ledger owns the product's status.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
		}
		exists, err := s.repo.SKUExists(ctx, sku, &productID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sku")
		}
		if exists {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("a product with SKU %s already exists", sku))
		}
		product.SKU = sku
	}
	if input.SupplierID != nil {
		if err := s.ensureSupplier(ctx, *input.SupplierID); err != nil {
			return nil, err
		}
		product.SupplierID = *input.SupplierID
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product status")
		}
		moved, err := s.repo.CountMovements(ctx, productID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count movements")
		}
		if moved > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is derived from stock once movements exist")
		}
		product.Status = *input.Status
	}

	applyUpdateToProduct(product, input)
	if err := validatePricing(product.UnitCost, product.SalePrice); err != nil {
		return nil, err
	}
	if err := validateReorder(product.ReorderPoint, product.ReorderQuantity); err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateProduct(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "idx_products_sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("a product with SKU %s already exists", product.SKU))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	detail, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(detail), nil
}

// GetProduct loads a single product with supplier and batches.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	detail, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(detail), nil
}

// ListProducts returns the catalog sorted by name.
func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = *NewProductDTO(&products[i])
	}
	return dtos, nil
}

func (s *service) ensureSupplier(ctx context.Context, supplierID uuid.UUID) error {
	if supplierID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier is required")
	}
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "supplier not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}
	return nil
}

func validatePricing(unitCost, salePrice decimal.Decimal) error {
	if unitCost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit_cost must be non-negative")
	}
	if salePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale_price must be non-negative")
	}
	return nil
}

func validateReorder(point, quantity int) error {
	if point < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reorder_point must be non-negative")
	}
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reorder_quantity must be non-negative")
	}
	return nil
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.UnitCost != nil {
		product.UnitCost = *input.UnitCost
	}
	if input.SalePrice != nil {
		product.SalePrice = *input.SalePrice
	}
	if input.ReorderPoint != nil {
		product.ReorderPoint = *input.ReorderPoint
	}
	if input.ReorderQuantity != nil {
		product.ReorderQuantity = *input.ReorderQuantity
	}
	if input.StorageLocation != nil {
		product.StorageLocation = input.StorageLocation
	}
}
