package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jaminalder/gomoku/internal/app"
	"github.com/jaminalder/gomoku/internal/bootstrap"
	"github.com/jaminalder/gomoku/internal/web"
)

func main() {
	cfgPath := pflag.StringP("config", "c", ".env", "path to the config file")
	pflag.Parse()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	svc := app.NewService(logger, app.WithThinkDelay(cfg.AIThinkDelay))
	go pruneSessions(ctx, svc, cfg.SessionTTL)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           web.NewServer(svc, logger, cfg.HeartbeatInterval),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnw("server shutdown", "error", err)
		}
	}()

	logger.Infof("Server is running on %s", cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func pruneSessions(ctx context.Context, svc *app.Service, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.Prune(ttl)
		}
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
