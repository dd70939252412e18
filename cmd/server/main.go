package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pudottapommin/ephemeral-messages-service/config"
	"github.com/pudottapommin/ephemeral-messages-service/internal/app"
	"github.com/pudottapommin/ephemeral-messages-service/pkg/storage"
	"github.com/valkey-io/valkey-go"
)

func main() {
	cfg := new(config.Config)
	if err := cfg.Load(); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logLvl := slog.LevelWarn
	if !cfg.IsProd {
		logLvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLvl}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The backend is picked exactly once at startup; a bad name is a
	// config error, not a silent fallback.
	var backend storage.Backend
	switch cfg.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory backend, stored messages will not survive a restart")
		backend = storage.NewMemory()
	case config.BackendValkey:
		db, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{cfg.DB}})
		if err != nil {
			logger.Error("failed to create valkey client", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		backend = storage.NewValkey(db, cfg.BackendTimeout, logger)
	}

	webApp := app.New(ctx, backend, cfg, logger)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webApp.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := webApp.Run(cfg.Host); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}
