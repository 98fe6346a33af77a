package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cynemos/smileinventory/api/controllers"
	"github.com/cynemos/smileinventory/api/middleware"
	"github.com/cynemos/smileinventory/internal/auth"
	patient "github.com/cynemos/smileinventory/internal/patients"
	product "github.com/cynemos/smileinventory/internal/products"
	"github.com/cynemos/smileinventory/internal/reports"
	"github.com/cynemos/smileinventory/internal/stockledger"
	supplier "github.com/cynemos/smileinventory/internal/suppliers"
	treatment "github.com/cynemos/smileinventory/internal/treatments"
	"github.com/cynemos/smileinventory/pkg/auth/session"
	"github.com/cynemos/smileinventory/pkg/config"
	"github.com/cynemos/smileinventory/pkg/logger"
	"github.com/cynemos/smileinventory/pkg/metrics"
	"github.com/cynemos/smileinventory/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the HTTP router needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             pinger
	Redis          *redis.Client
	SessionManager sessionManager
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	AuthService      auth.Service
	PatientService   patient.Service
	SupplierService  supplier.Service
	ProductService   product.Service
	StockService     stockledger.Service
	TreatmentService treatment.Service
	ReportService    reports.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", controllers.ListPatients(deps.PatientService, logg))
			r.Post("/", controllers.CreatePatient(deps.PatientService, logg))
			r.Get("/{patientId}", controllers.GetPatient(deps.PatientService, logg))
			r.Patch("/{patientId}", controllers.UpdatePatient(deps.PatientService, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.ListSuppliers(deps.SupplierService, logg))
			r.Post("/", controllers.CreateSupplier(deps.SupplierService, logg))
			r.Patch("/{supplierId}", controllers.UpdateSupplier(deps.SupplierService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.ProductService, logg))
			r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.ProductService, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(deps.ProductService, logg))
			r.Get("/{productId}/movements", controllers.ListProductMovements(deps.StockService, logg))
			r.Post("/{productId}/movements", controllers.CreateMovement(deps.StockService, logg))
		})

		r.Get("/movements", controllers.ListMovements(deps.StockService, logg))

		r.Route("/treatments", func(r chi.Router) {
			r.Get("/", controllers.ListTreatments(deps.TreatmentService, logg))
			r.Post("/", controllers.CreateTreatment(deps.TreatmentService, logg))
			r.Put("/{treatmentId}", controllers.UpdateTreatment(deps.TreatmentService, logg))
		})

		r.Get("/alerts/low-stock", controllers.LowStockAlerts(deps.ReportService, logg))
		r.Get("/stats/dashboard", controllers.DashboardStats(deps.ReportService, logg))
		r.Get("/stats/finance", controllers.FinanceStats(deps.ReportService, logg))
	})

	return r
}
