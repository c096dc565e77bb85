package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tripdesk/tripdesk-backend/api/routes"
	"github.com/tripdesk/tripdesk-backend/internal/agents"
	"github.com/tripdesk/tripdesk-backend/internal/assignment"
	"github.com/tripdesk/tripdesk-backend/internal/countries"
	"github.com/tripdesk/tripdesk-backend/internal/enquiries"
	"github.com/tripdesk/tripdesk-backend/internal/rules"
	"github.com/tripdesk/tripdesk-backend/internal/staff"
	"github.com/tripdesk/tripdesk-backend/pkg/config"
	"github.com/tripdesk/tripdesk-backend/pkg/db"
	"github.com/tripdesk/tripdesk-backend/pkg/env"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
	"github.com/tripdesk/tripdesk-backend/pkg/metrics"
	"github.com/tripdesk/tripdesk-backend/pkg/migrate"
	"github.com/tripdesk/tripdesk-backend/pkg/outbox"
	"github.com/tripdesk/tripdesk-backend/pkg/redis"
)

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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()

	outboxSvc := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	enquiriesSvc := enquiries.NewService(enquiries.NewRepository(dbClient.DB()), dbClient, outboxSvc, logg)
	staffSvc := staff.NewService(staff.NewRepository(dbClient.DB()), dbClient, outboxSvc, logg)
	rulesSvc := rules.NewService(rules.NewRepository(dbClient.DB()), logg)
	countriesSvc := countries.NewService(countries.NewRepository(dbClient.DB()))
	agentsSvc := agents.NewService(agents.NewRepository(dbClient.DB()))

	engine := assignment.NewEngine(assignment.Params{
		Enquiries: enquiriesSvc,
		Sequence:  staffSvc,
		Directories: []assignment.StaffDirectory{
			staff.NewTableDirectory(dbClient.DB()),
			staff.NewProfileDirectory(dbClient.DB()),
		},
		Countries:  countriesSvc,
		Workload:   enquiriesSvc,
		Relations:  agentsSvc,
		History:    enquiriesSvc,
		Toggles:    rulesSvc,
		Locks:      redisClient,
		Metrics:    metrics.NewAssignmentMetrics(registry),
		Logger:     logg,
		AssignedBy: cfg.Assignment.AssignedByTag,
		LockTTL:    cfg.Assignment.LockTTL,
	})

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:  cfg,
			Logger:  logg,
			DB:      dbClient,
			Redis:   redisClient,
			Engine:  engine,
			Enquiry: enquiriesSvc,
			Staff:   staffSvc,
			Rules:   rulesSvc,
			Metrics: registry,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
