package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/cynemos/smileinventory/api/responses"
	reportsvc "github.com/cynemos/smileinventory/internal/reports"
	"github.com/cynemos/smileinventory/pkg/enums"
	pkgerrors "github.com/cynemos/smileinventory/pkg/errors"
	"github.com/cynemos/smileinventory/pkg/logger"
)

// DashboardStats returns the operational snapshot for the landing page.
func DashboardStats(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		stats, err := svc.Dashboard(r.Context(), time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// FinanceStats aggregates treatment revenue for the requested period.
func FinanceStats(svc reportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		raw := strings.TrimSpace(r.URL.Query().Get("period"))
		period := enums.FinancePeriodMonth
		if raw != "" {
			parsed, err := enums.ParseFinancePeriod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period"))
				return
			}
			period = parsed
		}

		stats, err := svc.Finance(r.Context(), period, time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
