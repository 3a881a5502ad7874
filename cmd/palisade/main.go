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

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/palisade-authz/palisade/internal/app"
	"github.com/palisade-authz/palisade/internal/audit"
	"github.com/palisade-authz/palisade/internal/authz"
	"github.com/palisade-authz/palisade/internal/decision"
	"github.com/palisade-authz/palisade/internal/identity"
	"github.com/palisade-authz/palisade/internal/observability"
	"github.com/palisade-authz/palisade/internal/platform/cache"
	"github.com/palisade-authz/palisade/internal/platform/db"
	"github.com/palisade-authz/palisade/internal/resources/documents"
	"github.com/palisade-authz/palisade/internal/resources/projects"
	"github.com/palisade-authz/palisade/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	auditClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("connect job queue", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := auditClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	// Resource kinds register their capability checks here; the gate
	// and resolver stay generic.
	registry := authz.NewRegistry()
	registry.Register(documents.Kind(documents.NewRepository(pool)))
	membership := projects.NewMembershipCache(redisClient, projects.NewLoader(pool), cfg.MembershipTTL)
	registry.Register(projects.Kind(membership))

	gate := authz.NewGate(authz.NewResolver(registry))
	principals := identity.NewService(identity.NewRepository(pool))
	auditStore := audit.NewStore(pool)

	metrics := observability.NewMetrics()
	metrics.Registerer().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	decisionService := decision.NewService(principals, gate, auditClient, metrics, logger)
	decisionHandler := decision.NewHandler(decisionService, auditStore, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		DecisionHandler: decisionHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("palisade listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
}
