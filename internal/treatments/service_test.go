package treatment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	patientpkg "github.com/cynemos/smileinventory/internal/patients"
	"github.com/cynemos/smileinventory/pkg/db"
	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:treatment_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Supplier{},
		&models.Product{},
		&models.InventoryItem{},
		&models.Patient{},
		&models.Treatment{},
		&models.TreatmentProduct{},
	))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn), patientpkg.NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func seedPatient(t *testing.T, conn *gorm.DB) *models.Patient {
	t.Helper()
	row := &models.Patient{ID: uuid.New(), FirstName: "Marie", LastName: "Dupont"}
	require.NoError(t, conn.Create(row).Error)
	return row
}

func seedCatalogProduct(t *testing.T, conn *gorm.DB, name string, price decimal.Decimal, qty int) *models.Product {
	t.Helper()
	supplier := &models.Supplier{ID: uuid.New(), Name: "Depot " + uuid.NewString()[:8]}
	require.NoError(t, conn.Create(supplier).Error)

	product := &models.Product{
		ID:         uuid.New(),
		SKU:        fmt.Sprintf("SKU-%s", uuid.NewString()[:8]),
		Name:       name,
		Category:   "consumables",
		SupplierID: supplier.ID,
		UnitCost:   decimal.NewFromInt(1),
		SalePrice:  price,
		Status:     enums.ProductStatusActive,
	}
	require.NoError(t, conn.Create(product).Error)
	require.NoError(t, conn.Create(&models.InventoryItem{
		ID:          uuid.New(),
		ProductID:   product.ID,
		BatchNumber: models.InitialBatchNumber,
		Quantity:    qty,
	}).Error)
	return product
}

func TestCreateTreatmentComputesCostServerSide(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	pat := seedPatient(t, conn)
	resin := seedCatalogProduct(t, conn, "Composite Resin", decimal.NewFromFloat(45.50), 10)
	implant := seedCatalogProduct(t, conn, "Titanium Implant", decimal.NewFromInt(250), 5)

	dto, err := svc.CreateTreatment(ctx, uuid.New(), CreateTreatmentInput{
		PatientID: pat.ID,
		Date:      time.Now(),
		Type:      enums.TreatmentTypeImplant,
		Lines: []Line{
			{ProductID: resin.ID, Quantity: 2},
			{ProductID: implant.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "341", dto.Cost.String())
	require.Len(t, dto.Products, 2)
	require.NotNil(t, dto.Patient)
	assert.Equal(t, "Dupont", dto.Patient.LastName)
}

func TestCreateTreatmentMergesDuplicateLines(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	pat := seedPatient(t, conn)
	resin := seedCatalogProduct(t, conn, "Composite Resin", decimal.NewFromInt(10), 20)

	dto, err := svc.CreateTreatment(ctx, uuid.New(), CreateTreatmentInput{
		PatientID: pat.ID,
		Date:      time.Now(),
		Type:      enums.TreatmentTypeFilling,
		Lines: []Line{
			{ProductID: resin.ID, Quantity: 2},
			{ProductID: resin.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, dto.Products, 1)
	assert.Equal(t, 5, dto.Products[0].Quantity)
	assert.Equal(t, "50", dto.Cost.String())
}

func TestCreateTreatmentRejectsInsufficientStock(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	pat := seedPatient(t, conn)
	scarce := seedCatalogProduct(t, conn, "Membrane", decimal.NewFromInt(90), 1)

	_, err := svc.CreateTreatment(ctx, uuid.New(), CreateTreatmentInput{
		PatientID: pat.ID,
		Date:      time.Now(),
		Type:      enums.TreatmentTypeOther,
		Lines:     []Line{{ProductID: scarce.ID, Quantity: 3}},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().([]string)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "insufficient stock for Membrane (available: 1)", details[0])

	var count int64
	require.NoError(t, conn.Model(&models.Treatment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTreatmentDoesNotMoveStock(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	pat := seedPatient(t, conn)
	resin := seedCatalogProduct(t, conn, "Composite Resin", decimal.NewFromInt(10), 8)

	_, err := svc.CreateTreatment(ctx, uuid.New(), CreateTreatmentInput{
		PatientID: pat.ID,
		Date:      time.Now(),
		Type:      enums.TreatmentTypeFilling,
		Lines:     []Line{{ProductID: resin.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	var item models.InventoryItem
	require.NoError(t, conn.First(&item, "product_id = ?", resin.ID).Error)
	assert.Equal(t, 8, item.Quantity, "committing a treatment must not touch the ledger")
}

func TestUpdateTreatmentReplacesLines(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	pat := seedPatient(t, conn)
	resin := seedCatalogProduct(t, conn, "Composite Resin", decimal.NewFromInt(10), 50)
	implant := seedCatalogProduct(t, conn, "Titanium Implant", decimal.NewFromInt(250), 5)

	created, err := svc.CreateTreatment(ctx, uuid.New(), CreateTreatmentInput{
		PatientID: pat.ID,
		Date:      time.Now(),
		Type:      enums.TreatmentTypeImplant,
		Lines:     []Line{{ProductID: resin.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, created.Products, 1)
	oldLineID := created.Products[0].ID

	updated, err := svc.UpdateTreatment(ctx, created.ID, UpdateTreatmentInput{
		Lines: []Line{{ProductID: implant.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Products, 1)
	assert.Equal(t, implant.ID, updated.Products[0].ProductID)
	assert.NotEqual(t, oldLineID, updated.Products[0].ID, "line ids change on every edit")
	assert.Equal(t, "250", updated.Cost.String())

	var count int64
	require.NoError(t, conn.Model(&models.TreatmentProduct{}).Where("treatment_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateTreatmentValidatesPatient(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	_, err := svc.CreateTreatment(ctx, uuid.New(), CreateTreatmentInput{
		PatientID: uuid.New(),
		Date:      time.Now(),
		Type:      enums.TreatmentTypeCleaning,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListTreatmentsDateDescending(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()
	pat := seedPatient(t, conn)
	actor := uuid.New()

	for i, offset := range []time.Duration{-48 * time.Hour, 0, -24 * time.Hour} {
		_, err := svc.CreateTreatment(ctx, actor, CreateTreatmentInput{
			PatientID: pat.ID,
			Date:      time.Now().Add(offset),
			Type:      enums.TreatmentTypeCleaning,
		})
		require.NoError(t, err, "treatment %d", i)
	}

	treatments, err := svc.ListTreatments(ctx)
	require.NoError(t, err)
	require.Len(t, treatments, 3)
	assert.True(t, treatments[0].Date.After(treatments[1].Date))
	assert.True(t, treatments[1].Date.After(treatments[2].Date))
}
