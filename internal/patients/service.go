package patient

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
	"github.com/cynemos/smileinventory/pkg/types"
)

// Service exposes patient record operations.
type Service interface {
	CreatePatient(ctx context.Context, input CreatePatientInput) (*PatientDTO, error)
	UpdatePatient(ctx context.Context, patientID uuid.UUID, input UpdatePatientInput) (*PatientDTO, error)
	GetPatient(ctx context.Context, patientID uuid.UUID) (*PatientDTO, error)
	ListPatients(ctx context.Context) ([]PatientDTO, error)
}

// CreatePatientInput holds the validated payload to register a patient.
type CreatePatientInput struct {
	FirstName      string
	LastName       string
	Email          *string
	Phone          *string
	Address        *string
	DateOfBirth    *time.Time
	MedicalHistory *types.MedicalHistory
	DentalHistory  *types.DentalHistory
}

// UpdatePatientInput holds optional mutation values for a patient.
type UpdatePatientInput struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Address        *string
	DateOfBirth    *time.Time
	MedicalHistory *types.MedicalHistory
	DentalHistory  *types.DentalHistory
}

// PatientDTO represents the patient payload returned to clients.
type PatientDTO struct {
	ID             uuid.UUID            `json:"id"`
	FirstName      string               `json:"first_name"`
	LastName       string               `json:"last_name"`
	Email          *string              `json:"email,omitempty"`
	Phone          *string              `json:"phone,omitempty"`
	Address        *string              `json:"address,omitempty"`
	DateOfBirth    *time.Time           `json:"date_of_birth,omitempty"`
	MedicalHistory types.MedicalHistory `json:"medical_history"`
	DentalHistory  types.DentalHistory  `json:"dental_history"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type service struct {
	repo *Repository
}

// NewService constructs a patient service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("patient repository required")
	}
	return &service{repo: repo}, nil
}

// CreatePatient registers a patient. Missing history documents are written as
// empty records so downstream readers never see null.
func (s *service) CreatePatient(ctx context.Context, input CreatePatientInput) (*PatientDTO, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name and last_name are required")
	}

	medical := types.EmptyMedicalHistory()
	if input.MedicalHistory != nil {
		medical = normalizeMedicalHistory(*input.MedicalHistory)
	}
	dental := types.EmptyDentalHistory()
	if input.DentalHistory != nil {
		dental = normalizeDentalHistory(*input.DentalHistory)
	}

	patient := &models.Patient{
		ID:             uuid.New(),
		FirstName:      firstName,
		LastName:       lastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		DateOfBirth:    input.DateOfBirth,
		MedicalHistory: medical,
		DentalHistory:  dental,
	}
	created, err := s.repo.CreatePatient(ctx, patient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert patient")
	}
	return newPatientDTO(created), nil
}

// UpdatePatient applies partial changes to a patient record.
func (s *service) UpdatePatient(ctx context.Context, patientID uuid.UUID, input UpdatePatientInput) (*PatientDTO, error) {
	patient, err := s.repo.FindByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "patient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load patient")
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name is required")
		}
		patient.FirstName = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last_name is required")
		}
		patient.LastName = name
	}
	if input.Email != nil {
		patient.Email = input.Email
	}
	if input.Phone != nil {
		patient.Phone = input.Phone
	}
	if input.Address != nil {
		patient.Address = input.Address
	}
	if input.DateOfBirth != nil {
		patient.DateOfBirth = input.DateOfBirth
	}
	if input.MedicalHistory != nil {
		patient.MedicalHistory = normalizeMedicalHistory(*input.MedicalHistory)
	}
	if input.DentalHistory != nil {
		patient.DentalHistory = normalizeDentalHistory(*input.DentalHistory)
	}

	updated, err := s.repo.UpdatePatient(ctx, patient)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update patient")
	}
	return newPatientDTO(updated), nil
}

// GetPatient loads a single patient record.
func (s *service) GetPatient(ctx context.Context, patientID uuid.UUID) (*PatientDTO, error) {
	patient, err := s.repo.FindByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "patient not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load patient")
	}
	return newPatientDTO(patient), nil
}

// ListPatients returns the register, most recent first.
func (s *service) ListPatients(ctx context.Context) ([]PatientDTO, error) {
	patients, err := s.repo.ListPatients(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list patients")
	}
	dtos := make([]PatientDTO, len(patients))
	for i := range patients {
		dtos[i] = *newPatientDTO(&patients[i])
	}
	return dtos, nil
}

// normalizeMedicalHistory replaces nil collections with empty ones so the
// stored document always carries arrays.
func normalizeMedicalHistory(history types.MedicalHistory) types.MedicalHistory {
	if history.Allergies == nil {
		history.Allergies = []string{}
	}
	if history.Conditions == nil {
		history.Conditions = []string{}
	}
	if history.Medications == nil {
		history.Medications = []string{}
	}
	return history
}

func normalizeDentalHistory(history types.DentalHistory) types.DentalHistory {
	if history.Implants == nil {
		history.Implants = []types.ImplantRecord{}
	}
	if history.Treatments == nil {
		history.Treatments = []types.PastTreatment{}
	}
	return history
}

func newPatientDTO(patient *models.Patient) *PatientDTO {
	return &PatientDTO{
		ID:             patient.ID,
		FirstName:      patient.FirstName,
		LastName:       patient.LastName,
		Email:          patient.Email,
		Phone:          patient.Phone,
		Address:        patient.Address,
		DateOfBirth:    patient.DateOfBirth,
		MedicalHistory: patient.MedicalHistory,
		DentalHistory:  patient.DentalHistory,
		CreatedAt:      patient.CreatedAt,
		UpdatedAt:      patient.UpdatedAt,
	}
}
