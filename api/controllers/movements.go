package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cynemos/smileinventory/api/responses"
	"github.com/cynemos/smileinventory/api/validators"
	"github.com/cynemos/smileinventory/internal/stockledger"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/logger"
	"github.com/cynemos/smileinventory/pkg/pagination"
)

type createMovementRequest struct {
	Type        string  `json:"type" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	BatchNumber string  `json:"batch_number,omitempty"`
	Reference   *string `json:"reference,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func listMovementsInput(r *http.Request, productID *uuid.UUID) (stockledger.ListMovementsInput, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return stockledger.ListMovementsInput{}, err
	}
	return stockledger.ListMovementsInput{
		ProductID: productID,
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		},
	}, nil
}

// ListMovements returns the paginated movement history across all products.
func ListMovements(svc stockledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stock ledger service unavailable"))
			return
		}

		input, err := listMovementsInput(r, nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListMovements(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListProductMovements returns movement history for one product.
func ListProductMovements(svc stockledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stock ledger service unavailable"))
			return
		}

		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := listMovementsInput(r, &productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListMovements(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CreateMovement records an IN or OUT movement against a product.
func CreateMovement(svc stockledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stock ledger service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createMovementRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		movementType, err := enums.ParseMovementType(strings.TrimSpace(payload.Type))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid movement type"))
			return
		}

		movement, err := svc.ApplyMovement(r.Context(), actorID, stockledger.ApplyMovementInput{
			ProductID:   productID,
			Type:        movementType,
			Quantity:    payload.Quantity,
			BatchNumber: payload.BatchNumber,
			Reference:   payload.Reference,
			Notes:       payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, movement)
	}
}
