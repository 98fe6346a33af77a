package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cynemos/smileinventory/internal/auth"
	patient "github.com/cynemos/smileinventory/internal/patients"
	product "github.com/cynemos/smileinventory/internal/products"
	"github.com/cynemos/smileinventory/internal/reports"
	"github.com/cynemos/smileinventory/internal/stockledger"
	supplier "github.com/cynemos/smileinventory/internal/suppliers"
	treatment "github.com/cynemos/smileinventory/internal/treatments"
	pkgAuth "github.com/cynemos/smileinventory/pkg/auth"
	"github.com/cynemos/smileinventory/pkg/auth/session"
	"github.com/cynemos/smileinventory/pkg/config"
	"github.com/cynemos/smileinventory/pkg/enums"
	"github.com/cynemos/smileinventory/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{}, nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubPatientService struct{}

func (stubPatientService) CreatePatient(ctx context.Context, input patient.CreatePatientInput) (*patient.PatientDTO, error) {
	return &patient.PatientDTO{}, nil
}

func (stubPatientService) UpdatePatient(ctx context.Context, id uuid.UUID, input patient.UpdatePatientInput) (*patient.PatientDTO, error) {
	return &patient.PatientDTO{}, nil
}

func (stubPatientService) GetPatient(ctx context.Context, id uuid.UUID) (*patient.PatientDTO, error) {
	return &patient.PatientDTO{ID: id}, nil
}

func (stubPatientService) ListPatients(ctx context.Context) ([]patient.PatientDTO, error) {
	return []patient.PatientDTO{}, nil
}

type stubSupplierService struct{}

func (stubSupplierService) CreateSupplier(ctx context.Context, input supplier.CreateSupplierInput) (*supplier.SupplierDTO, error) {
	return &supplier.SupplierDTO{}, nil
}

func (stubSupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input supplier.UpdateSupplierInput) (*supplier.SupplierDTO, error) {
	return &supplier.SupplierDTO{}, nil
}

func (stubSupplierService) ListSuppliers(ctx context.Context) ([]supplier.SupplierDTO, error) {
	return []supplier.SupplierDTO{}, nil
}

type stubProductService struct{}

func (stubProductService) CreateProduct(ctx context.Context, actorID uuid.UUID, input product.CreateProductInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{}, nil
}

func (stubProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input product.UpdateProductInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{}, nil
}

func (stubProductService) GetProduct(ctx context.Context, id uuid.UUID) (*product.ProductDTO, error) {
	return &product.ProductDTO{ID: id}, nil
}

func (stubProductService) ListProducts(ctx context.Context) ([]product.ProductDTO, error) {
	return []product.ProductDTO{}, nil
}

type stubStockService struct{}

func (stubStockService) ApplyMovement(ctx context.Context, actorID uuid.UUID, input stockledger.ApplyMovementInput) (*stockledger.MovementDTO, error) {
	return &stockledger.MovementDTO{}, nil
}

func (stubStockService) ListMovements(ctx context.Context, input stockledger.ListMovementsInput) (*stockledger.MovementListResult, error) {
	return &stockledger.MovementListResult{}, nil
}

type stubTreatmentService struct{}

func (stubTreatmentService) CreateTreatment(ctx context.Context, actorID uuid.UUID, input treatment.CreateTreatmentInput) (*treatment.TreatmentDTO, error) {
	return &treatment.TreatmentDTO{}, nil
}

func (stubTreatmentService) UpdateTreatment(ctx context.Context, id uuid.UUID, input treatment.UpdateTreatmentInput) (*treatment.TreatmentDTO, error) {
	return &treatment.TreatmentDTO{}, nil
}

func (stubTreatmentService) ListTreatments(ctx context.Context) ([]treatment.TreatmentDTO, error) {
	return []treatment.TreatmentDTO{}, nil
}

type stubReportService struct{}

func (stubReportService) LowStock(ctx context.Context) ([]product.ProductDTO, error) {
	return []product.ProductDTO{}, nil
}

func (stubReportService) Dashboard(ctx context.Context, now time.Time) (*reports.DashboardStatsDTO, error) {
	return &reports.DashboardStatsDTO{}, nil
}

func (stubReportService) Finance(ctx context.Context, period enums.FinancePeriod, now time.Time) (*reports.FinanceStatsDTO, error) {
	return &reports.FinanceStatsDTO{}, nil
}

func testRouter(t *testing.T) (http.Handler, config.JWTConfig) {
	t.Helper()
	jwtCfg := config.JWTConfig{Secret: "secret", Issuer: "smileinventory", ExpirationMinutes: 30}
	cfg := &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: jwtCfg,
	}
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	handler := NewRouter(Deps{
		Config:           cfg,
		Logger:           logg,
		DB:               stubPinger{},
		SessionManager:   stubSessionManager{},
		AuthService:      stubAuthService{},
		PatientService:   stubPatientService{},
		SupplierService:  stubSupplierService{},
		ProductService:   stubProductService{},
		StockService:     stubStockService{},
		TreatmentService: stubTreatmentService{},
		ReportService:    stubReportService{},
	})
	return handler, jwtCfg
}

func mintRouterToken(t *testing.T, cfg config.JWTConfig) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRouterHealthLive(t *testing.T) {
	handler, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestRouterRequiresAuthForAPI(t *testing.T) {
	handler, _ := testRouter(t)

	paths := []string{
		"/api/v1/patients",
		"/api/v1/products",
		"/api/v1/movements",
		"/api/v1/treatments",
		"/api/v1/alerts/low-stock",
		"/api/v1/stats/dashboard",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s got %d", path, rec.Code)
		}
	}
}

func TestRouterAllowsAuthedRequests(t *testing.T) {
	handler, jwtCfg := testRouter(t)
	token := mintRouterToken(t, jwtCfg)

	paths := []string{
		"/api/v1/patients",
		"/api/v1/suppliers",
		"/api/v1/products",
		"/api/v1/movements",
		"/api/v1/treatments",
		"/api/v1/alerts/low-stock",
		"/api/v1/stats/dashboard",
		"/api/v1/stats/finance?period=month",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, rec.Code)
		}
	}
}
