package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db/models"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:patient_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Patient{}))
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestCreatePatientDefaultsHistories(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	dto, err := svc.CreatePatient(ctx, CreatePatientInput{FirstName: "Marie", LastName: "Dupont"})
	require.NoError(t, err)
	assert.NotNil(t, dto.MedicalHistory.Allergies)
	assert.Empty(t, dto.MedicalHistory.Allergies)
	assert.NotNil(t, dto.DentalHistory.Implants)
	assert.Empty(t, dto.DentalHistory.Implants)
	assert.Nil(t, dto.DentalHistory.LastCheckup)

	var stored models.Patient
	require.NoError(t, conn.First(&stored, "id = ?", dto.ID).Error)
	assert.NotNil(t, stored.MedicalHistory.Conditions)
}

func TestCreatePatientNormalizesNilCollections(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	dto, err := svc.CreatePatient(ctx, CreatePatientInput{
		FirstName:      "Paul",
		LastName:       "Martin",
		MedicalHistory: &types.MedicalHistory{Notes: "diabetic", Allergies: []string{"penicillin"}},
		DentalHistory:  &types.DentalHistory{Notes: "bruxism"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"penicillin"}, dto.MedicalHistory.Allergies)
	assert.NotNil(t, dto.MedicalHistory.Conditions)
	assert.NotNil(t, dto.DentalHistory.Treatments)
}

func TestCreatePatientRequiresNames(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, CreatePatientInput{FirstName: "  ", LastName: "Dupont"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdatePatientHistories(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, CreatePatientInput{FirstName: "Ana", LastName: "Silva"})
	require.NoError(t, err)

	checkup := "2026-02-10"
	updated, err := svc.UpdatePatient(ctx, created.ID, UpdatePatientInput{
		DentalHistory: &types.DentalHistory{
			LastCheckup: &checkup,
			Implants: []types.ImplantRecord{
				{Position: "36", Date: "2025-11-02", Type: "titanium", Surgeon: "Dr. Costa"},
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DentalHistory.LastCheckup)
	assert.Equal(t, checkup, *updated.DentalHistory.LastCheckup)
	require.Len(t, updated.DentalHistory.Implants, 1)
	assert.Equal(t, "36", updated.DentalHistory.Implants[0].Position)
	assert.Equal(t, "Ana", updated.FirstName)
}

func TestListPatientsMostRecentFirst(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	older := &models.Patient{
		ID:        uuid.New(),
		FirstName: "First",
		LastName:  "Patient",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, conn.Create(older).Error)

	_, err := svc.CreatePatient(ctx, CreatePatientInput{FirstName: "Second", LastName: "Patient"})
	require.NoError(t, err)

	patients, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "Second", patients[0].FirstName)
	assert.Equal(t, "First", patients[1].FirstName)
}
