package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/dealership_ledger/internal/core/services"
	"github.com/SscSPs/dealership_ledger/internal/jobs"
	"github.com/SscSPs/dealership_ledger/internal/platform/config"
	"github.com/SscSPs/dealership_ledger/internal/platform/lock"
	"github.com/SscSPs/dealership_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/dealership_ledger/pkg/cache"
	"github.com/SscSPs/dealership_ledger/pkg/database"
	"github.com/hibiken/asynq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.StoreDriver != config.StoreDriverPostgres {
		logger.Error("The integrity worker needs the postgres store", slog.String("store", cfg.StoreDriver))
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error("REDIS_ADDR is required by the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.WithMaxConns(cfg.DBMaxConns))
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cache.CloseRedisClient(redisClient)

	repos := pgsql.NewRepositoryProvider(dbPool, lock.NewReversalGuard(redisClient, lock.WithTTL(cfg.ReversalLockTTL)))
	capitalService := services.NewCapitalService(repos.LedgerRepo)
	integrityJob := jobs.NewCapitalIntegrityJob(capitalService, logger)

	cronTask, err := jobs.NewCapitalIntegrityTask(jobs.CapitalIntegrityPayload{Trigger: "cron"})
	if err != nil {
		logger.Error("Failed to build integrity task", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: redisOpts,
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskCapitalIntegrity, Handler: integrityJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.IntegrityCheckCron, Task: cronTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("Failed to init worker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	client := jobs.NewClient(redisOpts)
	if info, err := client.EnqueueCapitalIntegrity(ctx, "startup"); err != nil {
		logger.Warn("Failed to enqueue startup integrity check", slog.String("error", err.Error()))
	} else {
		logger.Info("Startup integrity check enqueued", slog.String("task_id", info.ID))
	}
	if err := client.Close(); err != nil {
		logger.Warn("Error closing asynq client", slog.String("error", err.Error()))
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
