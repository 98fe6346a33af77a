package treatment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cynemos/smileinventory/pkg/db"
	"github.com/cynemos/smileinventory/pkg/db/models"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
)

// Service exposes treatment record operations.
type Service interface {
	CreateTreatment(ctx context.Context, actorID uuid.UUID, input CreateTreatmentInput) (*TreatmentDTO, error)
	UpdateTreatment(ctx context.Context, treatmentID uuid.UUID, input UpdateTreatmentInput) (*TreatmentDTO, error)
	ListTreatments(ctx context.Context) ([]TreatmentDTO, error)
}

// CreateTreatmentInput holds the validated payload to record a treatment.
type CreateTreatmentInput struct {
	PatientID uuid.UUID
	Date      time.Time
	Type      enums.TreatmentType
	Notes     *string
	Lines     []Line
}

// UpdateTreatmentInput holds the full replacement state for a treatment.
// Lines are always replaced wholesale.
type UpdateTreatmentInput struct {
	PatientID *uuid.UUID
	Date      *time.Time
	Type      *enums.TreatmentType
	Notes     *string
	Lines     []Line
}

type patientLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)
}

type service struct {
	repo        *Repository
	dbClient    *db.Client
	patientRepo patientLoader
}

// NewService constructs a treatment service instance.
func NewService(repo *Repository, dbClient *db.Client, patientRepo patientLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("treatment repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if patientRepo == nil {
		return nil, fmt.Errorf("patient repository required")
	}
	return &service{repo: repo, dbClient: dbClient, patientRepo: patientRepo}, nil
}

// CreateTreatment validates the patient and stock, recomputes cost from
// current sale prices, and inserts the treatment with its lines atomically.
func (s *service) CreateTreatment(ctx context.Context, actorID uuid.UUID, input CreateTreatmentInput) (*TreatmentDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "acting user is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown treatment type")
	}
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	lines, err := normalizeLines(input.Lines)
	if err != nil {
		return nil, err
	}

	if err := s.ensurePatient(ctx, input.PatientID); err != nil {
		return nil, err
	}

	cost, err := s.priceAndCheckStock(ctx, lines)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		treatment := &models.Treatment{
			ID:        uuid.New(),
			PatientID: input.PatientID,
			Date:      input.Date,
			Type:      input.Type,
			Notes:     input.Notes,
			Cost:      cost,
			CreatedBy: actorID,
		}
		created, err := txRepo.CreateTreatment(ctx, treatment)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert treatment")
		}
		createdID = created.ID

		if err := txRepo.ReplaceLines(ctx, created.ID, buildLineRows(created.ID, lines)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert treatment lines")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create treatment")
	}

	detail, err := s.repo.GetTreatmentDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load treatment detail")
	}
	return NewTreatmentDTO(detail), nil
}

// UpdateTreatment replaces the line set wholesale and recomputes cost inside
// one transaction. Prior line IDs do not survive.
func (s *service) UpdateTreatment(ctx context.Context, treatmentID uuid.UUID, input UpdateTreatmentInput) (*TreatmentDTO, error) {
	treatment, err := s.repo.FindByID(ctx, treatmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "treatment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load treatment")
	}

	if input.PatientID != nil {
		if err := s.ensurePatient(ctx, *input.PatientID); err != nil {
			return nil, err
		}
		treatment.PatientID = *input.PatientID
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
		}
		treatment.Date = *input.Date
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown treatment type")
		}
		treatment.Type = *input.Type
	}
	if input.Notes != nil {
		treatment.Notes = input.Notes
	}

	lines, err := normalizeLines(input.Lines)
	if err != nil {
		return nil, err
	}
	cost, err := s.priceAndCheckStock(ctx, lines)
	if err != nil {
		return nil, err
	}
	treatment.Cost = cost

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.UpdateTreatment(ctx, treatment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update treatment")
		}
		if err := txRepo.ReplaceLines(ctx, treatment.ID, buildLineRows(treatment.ID, lines)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace treatment lines")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update treatment")
	}

	detail, err := s.repo.GetTreatmentDetail(ctx, treatmentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load treatment detail")
	}
	return NewTreatmentDTO(detail), nil
}

// ListTreatments returns the register, date descending.
func (s *service) ListTreatments(ctx context.Context) ([]TreatmentDTO, error) {
	treatments, err := s.repo.ListTreatments(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list treatments")
	}
	dtos := make([]TreatmentDTO, len(treatments))
	for i := range treatments {
		dtos[i] = *NewTreatmentDTO(&treatments[i])
	}
	return dtos, nil
}

func (s *service) ensurePatient(ctx context.Context, patientID uuid.UUID) error {
	if patientID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "patient is required")
	}
	if _, err := s.patientRepo.FindByID(ctx, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "patient not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load patient")
	}
	return nil
}

// priceAndCheckStock loads the referenced products once, prices the lines at
// current sale prices, and rejects the write when any line exceeds available
// stock.
func (s *service) priceAndCheckStock(ctx context.Context, lines []Line) (decimal.Decimal, error) {
	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	products, items, err := s.repo.LoadCatalog(ctx, ids)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	if problems := ValidateStock(lines, products, items); len(problems) > 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").WithDetails(problems)
	}

	catalog := make(map[uuid.UUID]decimal.Decimal, len(products))
	for id, product := range products {
		catalog[id] = product.SalePrice
	}
	return ComputeTotalCost(lines, catalog), nil
}

// normalizeLines merges duplicate product entries and validates quantities.
func normalizeLines(lines []Line) ([]Line, error) {
	var out []Line
	for _, line := range lines {
		merged, err := AddLine(out, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		out = merged
	}
	return out, nil
}

func buildLineRows(treatmentID uuid.UUID, lines []Line) []models.TreatmentProduct {
	rows := make([]models.TreatmentProduct, len(lines))
	for i, line := range lines {
		rows[i] = models.TreatmentProduct{
			ID:          uuid.New(),
			TreatmentID: treatmentID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
		}
	}
	return rows
}
