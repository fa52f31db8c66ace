package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gappu824/aura-ai-hackathon/internal/app"
	"github.com/Gappu824/aura-ai-hackathon/internal/config"
	"github.com/Gappu824/aura-ai-hackathon/internal/logger"
	"github.com/Gappu824/aura-ai-hackathon/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "aura-ui start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("aura-ui starting", "config", cfg)
	if cfg.APIURL == "" {
		logger.WarnObj("analysis backend url not set; every analysis will fail", "env", []string{"AURA_API_URL", "NEXT_PUBLIC_API_URL", "BACKEND_API_URL"})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console, err := app.NewConsole(cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize console", "error", err)
		return err
	}
	defer console.Close()

	console.Start(ctx)

	srv := web.NewServer(cfg, console, log)
	errCh := make(chan error, 1)
	go func() {
		logger.InfoObj("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.InfoObj("aura-ui shutting down", "reason", ctx.Err())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), web.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
