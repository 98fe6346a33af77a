package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cynemos/smileinventory/api/routes"
	"github.com/cynemos/smileinventory/internal/auth"
	patientsvc "github.com/cynemos/smileinventory/internal/patients"
	productsvc "github.com/cynemos/smileinventory/internal/products"
	"github.com/cynemos/smileinventory/internal/reports"
	"github.com/cynemos/smileinventory/internal/stockledger"
	suppliersvc "github.com/cynemos/smileinventory/internal/suppliers"
	treatmentsvc "github.com/cynemos/smileinventory/internal/treatments"
	"github.com/cynemos/smileinventory/internal/users"
	"github.com/cynemos/smileinventory/pkg/auth/session"
	"github.com/cynemos/smileinventory/pkg/config"
	"github.com/cynemos/smileinventory/pkg/db"
	"github.com/cynemos/smileinventory/pkg/logger"
	"github.com/cynemos/smileinventory/pkg/metrics"
	"github.com/cynemos/smileinventory/pkg/migrate"
	"github.com/cynemos/smileinventory/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	patientRepo := patientsvc.NewRepository(gormDB)
	supplierRepo := suppliersvc.NewRepository(gormDB)
	productRepo := productsvc.NewRepository(gormDB)
	stockRepo := stockledger.NewRepository(gormDB)
	treatmentRepo := treatmentsvc.NewRepository(gormDB)
	reportRepo := reports.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	patientService, err := patientsvc.NewService(patientRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create patient service", err)
		os.Exit(1)
	}

	supplierService, err := suppliersvc.NewService(supplierRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create supplier service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productRepo, dbClient, supplierRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	stockService, err := stockledger.NewService(stockRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock ledger service", err)
		os.Exit(1)
	}

	treatmentService, err := treatmentsvc.NewService(treatmentRepo, dbClient, patientRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create treatment service", err)
		os.Exit(1)
	}

	reportService, err := reports.NewService(reportRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			SessionManager:   sessionManager,
			HTTPMetrics:      httpMetrics,
			MetricsHandler:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			AuthService:      authService,
			PatientService:   patientService,
			SupplierService:  supplierService,
			ProductService:   productService,
			StockService:     stockService,
			TreatmentService: treatmentService,
			ReportService:    reportService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
