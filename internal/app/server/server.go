package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"empform/internal/domain/employee"
	"empform/internal/platform/config"
	"empform/internal/platform/metrics"
	"empform/internal/platform/opener"
	"empform/internal/platform/recordfile"
	employeeshandler "empform/internal/transport/http/handlers/employees"
	"empform/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Service *employee.Service
	Metrics *metrics.Collector
	Router  http.Handler
	Logger  *slog.Logger
}

// NewService wires the record writer, catalog and table shared by the HTTP
// server and the terminal form.
func NewService(cfg config.Config, collector *metrics.Collector, opts ...employee.Option) (*employee.Service, error) {
	catalog, err := employee.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	table := employee.NewTable()
	base := []employee.Option{}
	if collector != nil {
		collector.WatchTable(table.Len)
		base = append(base, employee.WithObserver(collector))
	}
	if cfg.OpenSavedFiles {
		base = append(base, employee.WithOpener(opener.New()))
	}
	return employee.NewService(catalog, table, recordfile.NewWriter(), append(base, opts...)...), nil
}

func New(cfg config.Config, logger *slog.Logger, opts ...employee.Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	collector := metrics.New()
	service, err := NewService(cfg, collector, opts...)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger, collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		employeesHandler := employeeshandler.NewHandler(service, cfg.OutputDir)
		employeesHandler.RegisterRoutes(r)
	})

	return &App{
		Config:  cfg,
		Service: service,
		Metrics: collector,
		Router:  router,
		Logger:  logger,
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("empform server listening", "addr", a.Config.Addr, "outputDir", a.Config.OutputDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.Logger.Info("empform server stopped", "records", a.Service.Table().Len())
	return nil
}
