package controllers

import (
	"net/http"

	"github.com/cynemos/smileinventory/api/responses"
	reportsvc "github.com/cynemos/smileinventory/internal/reports"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/logger"
)

// LowStockAlerts lists every product at or below its reorder point.
func LowStockAlerts(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		products, err := svc.LowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}
