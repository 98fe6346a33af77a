package controllers

import (
	"net/http"

	"github.com/cynemos/smileinventory/api/responses"
	"github.com/cynemos/smileinventory/api/validators"
	patientsvc "github.com/cynemos/smileinventory/internal/patients"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/logger"
	"github.com/cynemos/smileinventory/pkg/types"
)

type createPatientRequest struct {
	FirstName      string                `json:"first_name" validate:"required"`
	LastName       string                `json:"last_name" validate:"required"`
	Email          *string               `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string               `json:"phone,omitempty"`
	Address        *string               `json:"address,omitempty"`
	DateOfBirth    *string               `json:"date_of_birth,omitempty"`
	MedicalHistory *types.MedicalHistory `json:"medical_history,omitempty"`
	DentalHistory  *types.DentalHistory  `json:"dental_history,omitempty"`
}

type updatePatientRequest struct {
	FirstName      *string               `json:"first_name,omitempty"`
	LastName       *string               `json:"last_name,omitempty"`
	Email          *string               `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string               `json:"phone,omitempty"`
	Address        *string               `json:"address,omitempty"`
	DateOfBirth    *string               `json:"date_of_birth,omitempty"`
	MedicalHistory *types.MedicalHistory `json:"medical_history,omitempty"`
	DentalHistory  *types.DentalHistory  `json:"dental_history,omitempty"`
}

// ListPatients returns patients ordered by most recently registered.
func ListPatients(svc patientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "patient service unavailable"))
			return
		}

		patients, err := svc.ListPatients(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, patients)
	}
}

// GetPatient returns a single patient record.
func GetPatient(svc patientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "patient service unavailable"))
			return
		}

		patientID, err := parseUUIDParam(r, "patientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patient, err := svc.GetPatient(r.Context(), patientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, patient)
	}
}

// CreatePatient registers a new patient.
func CreatePatient(svc patientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "patient service unavailable"))
			return
		}

		var payload createPatientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dob, err := parseOptionalDate(payload.DateOfBirth)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patient, err := svc.CreatePatient(r.Context(), patientsvc.CreatePatientInput{
			FirstName:      payload.FirstName,
			LastName:       payload.LastName,
			Email:          payload.Email,
			Phone:          payload.Phone,
			Address:        payload.Address,
			DateOfBirth:    dob,
			MedicalHistory: payload.MedicalHistory,
			DentalHistory:  payload.DentalHistory,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, patient)
	}
}

// UpdatePatient applies a partial update to a patient record.
func UpdatePatient(svc patientsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "patient service unavailable"))
			return
		}

		patientID, err := parseUUIDParam(r, "patientId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePatientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dob, err := parseOptionalDate(payload.DateOfBirth)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patient, err := svc.UpdatePatient(r.Context(), patientID, patientsvc.UpdatePatientInput{
			FirstName:      payload.FirstName,
			LastName:       payload.LastName,
			Email:          payload.Email,
			Phone:          payload.Phone,
			Address:        payload.Address,
			DateOfBirth:    dob,
			MedicalHistory: payload.MedicalHistory,
			DentalHistory:  payload.DentalHistory,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, patient)
	}
}
