// Package server initializes and runs the application server: it opens the
// database, runs migrations, wires services, and serves the HTTP API with
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recordkeeper/recordkeeper/internal/logging"
	"github.com/recordkeeper/recordkeeper/internal/server/blob"
	"github.com/recordkeeper/recordkeeper/internal/server/config"
	"github.com/recordkeeper/recordkeeper/internal/server/guard"
	"github.com/recordkeeper/recordkeeper/internal/server/httpapi"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/repomanager"
	"github.com/recordkeeper/recordkeeper/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	router http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs := blob.NewS3Store(blob.S3Config{
		Region:       cfg.S3Region,
		RootUser:     cfg.S3RootUser,
		RootPassword: cfg.S3RootPassword,
		Bucket:       cfg.S3Bucket,
		BaseEndpoint: cfg.S3BaseEndpoint,
	})
	g := guard.New(db)

	svcs := httpapi.Services{
		Accounts:  services.NewAccountService(db, m, cfg),
		Headers:   services.NewHeaderService(db, m),
		Items:     services.NewItemService(db, m, logger),
		Reminders: services.NewReminderService(db, m, g),
		Alerts:    services.NewAlertService(db, m),
		Documents: services.NewDocumentService(db, m, blobs, g, logger, cfg),
	}

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		router: httpapi.NewRouter(svcs, cfg, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails. In-flight requests get shutdownTimeout to finish.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.router,
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "server shutdown error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}
	return nil
}
