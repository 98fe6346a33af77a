package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	supplier "github.com/cynemos/smileinventory/internal/suppliers"
	"github.com/cynemos/smileinventory/pkg/db"
	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:product_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Supplier{},
		&models.Product{},
		&models.InventoryItem{},
		&models.InventoryMovement{},
	))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), supplier.NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func seedSupplier(t *testing.T, conn *gorm.DB) *models.Supplier {
	t.Helper()
	row := &models.Supplier{ID: uuid.New(), Name: "Dental Depot"}
	require.NoError(t, conn.Create(row).Error)
	return row
}

func validInput(supplierID uuid.UUID, sku string) CreateProductInput {
	return CreateProductInput{
		SKU:          sku,
		Name:         "Composite Resin A2",
		Category:     "consumables",
		SupplierID:   supplierID,
		UnitCost:     decimal.NewFromFloat(12.50),
		SalePrice:    decimal.NewFromFloat(45.00),
		ReorderPoint: 5,
	}
}

func TestCreateProductProvisionsInitialBatch(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	sup := seedSupplier(t, conn)

	dto, err := svc.CreateProduct(ctx, uuid.New(), validInput(sup.ID, "RES-A2"))
	require.NoError(t, err)
	assert.Equal(t, "RES-A2", dto.SKU)
	assert.Equal(t, enums.ProductStatusActive.String(), dto.Status)
	require.Len(t, dto.Inventory, 1)
	assert.Equal(t, models.InitialBatchNumber, dto.Inventory[0].BatchNumber)
	assert.Zero(t, dto.Inventory[0].Quantity)
	assert.Zero(t, dto.TotalQuantity)
	assert.True(t, dto.LowStock)
	require.NotNil(t, dto.Supplier)
	assert.Equal(t, sup.Name, dto.Supplier.Name)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	sup := seedSupplier(t, conn)

	_, err := svc.CreateProduct(ctx, uuid.New(), validInput(sup.ID, "IMP-01"))
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, uuid.New(), validInput(sup.ID, "IMP-01"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Contains(t, typed.Message(), "IMP-01")

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "duplicate must be rejected before persistence")
}

func TestUpdateProductSKUUniquenessExcludesSelf(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	sup := seedSupplier(t, conn)

	first, err := svc.CreateProduct(ctx, uuid.New(), validInput(sup.ID, "A-1"))
	require.NoError(t, err)
	second, err := svc.CreateProduct(ctx, uuid.New(), validInput(sup.ID, "B-2"))
	require.NoError(t, err)

	// keeping its own SKU is allowed
	same := "A-1"
	updated, err := svc.UpdateProduct(ctx, first.ID, UpdateProductInput{SKU: &same})
	require.NoError(t, err)
	assert.Equal(t, "A-1", updated.SKU)

	// taking another product's SKU is not
	taken := "A-1"
	_, err = svc.UpdateProduct(ctx, second.ID, UpdateProductInput{SKU: &taken})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateProductStatusLockedAfterMovements(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	sup := seedSupplier(t, conn)

	created, err := svc.CreateProduct(ctx, uuid.New(), validInput(sup.ID, "LCK-1"))
	require.NoError(t, err)

	// manual status edits are allowed while the ledger is empty
	inactive := enums.ProductStatusInactive
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, enums.ProductStatusInactive.String(), updated.Status)

	movement := &models.InventoryMovement{
		ID:        uuid.New(),
		ProductID: created.ID,
		Type:      enums.MovementTypeIn,
		Quantity:  3,
		CreatedBy: uuid.New(),
	}
	require.NoError(t, conn.Create(movement).Error)

	active := enums.ProductStatusActive
	_, err = svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Status: &active})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateProductValidatesSupplier(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, uuid.New(), validInput(uuid.New(), "SUP-404"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListProductsSortedByName(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	sup := seedSupplier(t, conn)

	names := map[string]string{"Z-9": "Zirconia Crown", "A-3": "Anesthetic", "M-5": "Mouth Mirror"}
	for sku, name := range names {
		input := validInput(sup.ID, sku)
		input.Name = name
		_, err := svc.CreateProduct(ctx, uuid.New(), input)
		require.NoError(t, err)
	}

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Anesthetic", products[0].Name)
	assert.Equal(t, "Mouth Mirror", products[1].Name)
	assert.Equal(t, "Zirconia Crown", products[2].Name)
}
