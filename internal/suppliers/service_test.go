package supplier

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db/models"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:supplier_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Supplier{}))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestCreateSupplier(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	phone := "+33 5 56 00 00 00"
	dto, err := svc.CreateSupplier(ctx, CreateSupplierInput{Name: "Henry Schein", Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Henry Schein", dto.Name)
	require.NotNil(t, dto.Phone)
	assert.Equal(t, phone, *dto.Phone)

	_, err = svc.CreateSupplier(ctx, CreateSupplierInput{Name: "   "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateSupplier(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.CreateSupplier(ctx, CreateSupplierInput{Name: "Dentsply"})
	require.NoError(t, err)

	ref := "CLI-0042"
	updated, err := svc.UpdateSupplier(ctx, created.ID, UpdateSupplierInput{CustomerReference: &ref})
	require.NoError(t, err)
	require.NotNil(t, updated.CustomerReference)
	assert.Equal(t, ref, *updated.CustomerReference)
	assert.Equal(t, "Dentsply", updated.Name)

	_, err = svc.UpdateSupplier(ctx, uuid.New(), UpdateSupplierInput{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListSuppliersSortedByName(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	for _, name := range []string{"Zimmer", "Astra Tech", "Nobel Biocare"} {
		_, err := svc.CreateSupplier(ctx, CreateSupplierInput{Name: name})
		require.NoError(t, err)
	}

	suppliers, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 3)
	assert.Equal(t, "Astra Tech", suppliers[0].Name)
	assert.Equal(t, "Nobel Biocare", suppliers[1].Name)
	assert.Equal(t, "Zimmer", suppliers[2].Name)
}
