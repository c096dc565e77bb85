package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tripdesk/tripdesk-backend/internal/agents"
	"github.com/tripdesk/tripdesk-backend/internal/assignment"
	"github.com/tripdesk/tripdesk-backend/internal/countries"
	"github.com/tripdesk/tripdesk-backend/internal/cron"
	"github.com/tripdesk/tripdesk-backend/internal/enquiries"
	"github.com/tripdesk/tripdesk-backend/internal/rules"
	"github.com/tripdesk/tripdesk-backend/internal/staff"
	"github.com/tripdesk/tripdesk-backend/pkg/config"
	"github.com/tripdesk/tripdesk-backend/pkg/db"
	"github.com/tripdesk/tripdesk-backend/pkg/logger"
	"github.com/tripdesk/tripdesk-backend/pkg/metrics"
	"github.com/tripdesk/tripdesk-backend/pkg/migrate"
	"github.com/tripdesk/tripdesk-backend/pkg/outbox"
	"github.com/tripdesk/tripdesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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
		Metrics:    metrics.NewAssignmentMetrics(prometheus.DefaultRegisterer),
		Logger:     logg,
		AssignedBy: cfg.Assignment.AssignedByTag,
		LockTTL:    cfg.Assignment.LockTTL,
	})

	lock, err := cron.NewRedisLock(redisClient, redisClient.CronLockKey("assignment-sweep"), cfg.Assignment.CronLockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(
		cron.NewAssignmentSweepJob(enquiriesSvc, engine, cfg.Assignment.SweepBatchSize, logg),
	)

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Assignment.SweepInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}
