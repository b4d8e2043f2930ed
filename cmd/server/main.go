// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/iyunix/go-mindster/internal/config"
	"github.com/iyunix/go-mindster/internal/database"
	"github.com/iyunix/go-mindster/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mindster: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := pflag.String("env-file", "", "path to a .env file (ignored in production)")
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	pflag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}

	logger := services.NewLogger("mindster", cfg.Environment, cfg.LogLevel)

	db, err := database.Open(cfg.DatabaseURL, cfg.IsDevelopment() && cfg.LogLevel == "debug")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("closing database failed", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("database migrated")
	if *migrateOnly {
		return nil
	}

	app, err := NewApplication(cfg, db, logger)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	srv := newHTTPServer(cfg.Addr(), app.Handler, logger)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		logger.Info("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newHTTPServer routes net/http's own error output through the structured logger
// when one is available.
func newHTTPServer(addr string, handler http.Handler, logger services.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if pl, ok := logger.(*services.ProductionLogger); ok {
		srv.ErrorLog = slog.NewLogLogger(pl.Slog().Handler(), slog.LevelError)
	}
	return srv
}
