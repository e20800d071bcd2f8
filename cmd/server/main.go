// Command server starts the Career Insight HTTP API.
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

	"github.com/Dinesh-rish/Career-Insight/internal/adapter/ai/tokencount"
	httpserver "github.com/Dinesh-rish/Career-Insight/internal/adapter/httpserver"
	"github.com/Dinesh-rish/Career-Insight/internal/adapter/observability"
	"github.com/Dinesh-rish/Career-Insight/internal/app"
	"github.com/Dinesh-rish/Career-Insight/internal/config"
	"github.com/Dinesh-rish/Career-Insight/internal/questionbank"
	"github.com/Dinesh-rish/Career-Insight/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()

	bank, err := questionbank.Load(cfg.QuestionBankPath)
	if err != nil {
		slog.Error("question bank load failed", slog.Any("error", err))
		os.Exit(1)
	}

	aicl, err := app.NewAIClient(ctx, cfg)
	if err != nil {
		slog.Error("ai client init failed", slog.Any("error", err))
		os.Exit(1)
	}
	if !aicl.HasCredential() {
		// Analyses will fail with CONFIGURATION_ERROR until a key is set.
		slog.Warn("ai credential not configured", slog.String("provider", aicl.Provider()))
	}
	slog.Info("ai client initialized", slog.String("provider", aicl.Provider()), slog.String("model", aicl.Model()))

	analysis := usecase.NewAnalysisService(aicl, bank, tokencount.DefaultCounter)

	limiter, rdb, err := app.NewQuotaLimiter(cfg)
	if err != nil {
		slog.Error("redis config invalid", slog.Any("error", err))
		os.Exit(1)
	}
	var (
		quotaLimiter httpserver.QuotaLimiter
		redisPinger  app.Pinger
	)
	if limiter != nil {
		quotaLimiter, redisPinger = limiter, limiter
		defer func() { _ = rdb.Close() }()
		slog.Info("analysis quota enabled", slog.Int("per_hour", cfg.AnalysisQuotaPerHour))
	}

	srv := httpserver.NewServer(cfg, bank, analysis, quotaLimiter, app.BuildReadinessChecks(bank, aicl, redisPinger)...)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	if err := srvHTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown", slog.Any("error", err))
	}
}
