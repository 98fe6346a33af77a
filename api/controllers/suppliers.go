package controllers

import (
	"net/http"

	"github.com/cynemos/smileinventory/api/responses"
	"github.com/cynemos/smileinventory/api/validators"
	suppliersvc "github.com/cynemos/smileinventory/internal/suppliers"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/logger"
)

type createSupplierRequest struct {
	Name              string  `json:"name" validate:"required"`
	Phone             *string `json:"phone,omitempty"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	CustomerReference *string `json:"customer_reference,omitempty"`
}

type updateSupplierRequest struct {
	Name              *string `json:"name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	CustomerReference *string `json:"customer_reference,omitempty"`
}

// ListSuppliers returns all suppliers ordered by name.
func ListSuppliers(svc suppliersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		suppliers, err := svc.ListSuppliers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, suppliers)
	}
}

// CreateSupplier registers a new supplier.
func CreateSupplier(svc suppliersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		var payload createSupplierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplier, err := svc.CreateSupplier(r.Context(), suppliersvc.CreateSupplierInput{
			Name:              payload.Name,
			Phone:             payload.Phone,
			Email:             payload.Email,
			CustomerReference: payload.CustomerReference,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, supplier)
	}
}

// UpdateSupplier applies a partial update to a supplier.
func UpdateSupplier(svc suppliersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		supplierID, err := parseUUIDParam(r, "supplierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateSupplierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplier, err := svc.UpdateSupplier(r.Context(), supplierID, suppliersvc.UpdateSupplierInput{
			Name:              payload.Name,
			Phone:             payload.Phone,
			Email:             payload.Email,
			CustomerReference: payload.CustomerReference,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, supplier)
	}
}
