package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cynemos/smileinventory/api/responses"
	"github.com/cynemos/smileinventory/api/validators"
	productsvc "github.com/cynemos/smileinventory/internal/products"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/logger"
)

type createProductRequest struct {
	SKU             string          `json:"sku" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Category        string          `json:"category" validate:"required"`
	Description     *string         `json:"description,omitempty"`
	SupplierID      uuid.UUID       `json:"supplier_id" validate:"required"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	ReorderPoint    int             `json:"reorder_point" validate:"min=0"`
	ReorderQuantity int             `json:"reorder_quantity" validate:"min=0"`
	StorageLocation *string         `json:"storage_location,omitempty"`
	Status          *string         `json:"status,omitempty"`
}

type updateProductRequest struct {
	SKU             *string          `json:"sku,omitempty"`
	Name            *string          `json:"name,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Description     *string          `json:"description,omitempty"`
	SupplierID      *uuid.UUID       `json:"supplier_id,omitempty"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	SalePrice       *decimal.Decimal `json:"sale_price,omitempty"`
	ReorderPoint    *int             `json:"reorder_point,omitempty" validate:"omitempty,min=0"`
	ReorderQuantity *int             `json:"reorder_quantity,omitempty" validate:"omitempty,min=0"`
	StorageLocation *string          `json:"storage_location,omitempty"`
	Status          *string          `json:"status,omitempty"`
}

func parseOptionalStatus(raw *string) (*enums.ProductStatus, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	status, err := enums.ParseProductStatus(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}
	return &status, nil
}

// ListProducts returns the catalog with inventory summaries.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// GetProduct returns a single product with its inventory breakdown.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CreateProduct adds a product to the catalog with its initial empty batch.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := parseOptionalStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), actorID, productsvc.CreateProductInput{
			SKU:             payload.SKU,
			Name:            payload.Name,
			Category:        payload.Category,
			Description:     payload.Description,
			SupplierID:      payload.SupplierID,
			UnitCost:        payload.UnitCost,
			SalePrice:       payload.SalePrice,
			ReorderPoint:    payload.ReorderPoint,
			ReorderQuantity: payload.ReorderQuantity,
			StorageLocation: payload.StorageLocation,
			Status:          status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct applies a partial update to a catalog entry.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := parseOptionalStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, productsvc.UpdateProductInput{
			SKU:             payload.SKU,
			Name:            payload.Name,
			Category:        payload.Category,
			Description:     payload.Description,
			SupplierID:      payload.SupplierID,
			UnitCost:        payload.UnitCost,
			SalePrice:       payload.SalePrice,
			ReorderPoint:    payload.ReorderPoint,
			ReorderQuantity: payload.ReorderQuantity,
			StorageLocation: payload.StorageLocation,
			Status:          status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}
