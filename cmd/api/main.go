package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guiapet/internal/platform/config"
	"guiapet/internal/platform/logger"
	"guiapet/internal/router"
)

// @title       GuiaPet API
// @version     1.0
// @description Sesión, login, mascotas, vacunas y recordatorios de GuiaPet.
// @BasePath    /
func main() {
	path := os.Getenv("GUIAPET_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err.Error(), "path": path})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, cleanup, err := router.FromConfig(ctx, cfg, log)
	if err != nil {
		log.Error("wiring error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// sin WriteTimeout: /events es un stream largo
		IdleTimeout: 60 * time.Second,
		// al recibir la señal se cortan los streams abiertos
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":      srv.Addr,
			"env":       cfg.Env,
			"storage":   cfg.Storage,
			"auth":      cfg.AuthProvider,
			"gate_open": !opts.GateEnabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("server error", map[string]any{"error": err.Error()})
			cleanup()
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
	}
}
