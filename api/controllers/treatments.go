package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cynemos/smileinventory/api/responses"
	"github.com/cynemos/smileinventory/api/validators"
	treatmentsvc "github.com/cynemos/smileinventory/internal/treatments"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/logger"
)

type treatmentLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type createTreatmentRequest struct {
	PatientID uuid.UUID              `json:"patient_id" validate:"required"`
	Date      string                 `json:"date" validate:"required"`
	Type      string                 `json:"type" validate:"required"`
	Notes     *string                `json:"notes,omitempty"`
	Products  []treatmentLineRequest `json:"products,omitempty" validate:"omitempty,dive"`
}

type updateTreatmentRequest struct {
	PatientID *uuid.UUID             `json:"patient_id,omitempty"`
	Date      *string                `json:"date,omitempty"`
	Type      *string                `json:"type,omitempty"`
	Notes     *string                `json:"notes,omitempty"`
	Products  []treatmentLineRequest `json:"products" validate:"omitempty,dive"`
}

func toTreatmentLines(reqs []treatmentLineRequest) []treatmentsvc.Line {
	lines := make([]treatmentsvc.Line, 0, len(reqs))
	for _, req := range reqs {
		lines = append(lines, treatmentsvc.Line{ProductID: req.ProductID, Quantity: req.Quantity})
	}
	return lines
}

// ListTreatments returns treatments ordered by most recent date.
func ListTreatments(svc treatmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "treatment service unavailable"))
			return
		}

		treatments, err := svc.ListTreatments(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, treatments)
	}
}

// CreateTreatment records a treatment with its product consumption.
func CreateTreatment(svc treatmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "treatment service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createTreatmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := parseDate(payload.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		treatmentType, err := enums.ParseTreatmentType(strings.TrimSpace(payload.Type))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid treatment type"))
			return
		}

		treatment, err := svc.CreateTreatment(r.Context(), actorID, treatmentsvc.CreateTreatmentInput{
			PatientID: payload.PatientID,
			Date:      date,
			Type:      treatmentType,
			Notes:     payload.Notes,
			Lines:     toTreatmentLines(payload.Products),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, treatment)
	}
}

// UpdateTreatment replaces a treatment's fields and its full line set.
func UpdateTreatment(svc treatmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "treatment service unavailable"))
			return
		}

		treatmentID, err := parseUUIDParam(r, "treatmentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateTreatmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := parseOptionalDate(payload.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var treatmentType *enums.TreatmentType
		if payload.Type != nil && strings.TrimSpace(*payload.Type) != "" {
			parsed, err := enums.ParseTreatmentType(strings.TrimSpace(*payload.Type))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid treatment type"))
				return
			}
			treatmentType = &parsed
		}

		treatment, err := svc.UpdateTreatment(r.Context(), treatmentID, treatmentsvc.UpdateTreatmentInput{
			PatientID: payload.PatientID,
			Date:      date,
			Type:      treatmentType,
			Notes:     payload.Notes,
			Lines:     toTreatmentLines(payload.Products),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, treatment)
	}
}
