package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-hrms/internal/accrual"
	"go-hrms/internal/leavebalance"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/connection"
)

const schedulerPollInterval = time.Hour

// RunScheduler triggers the monthly accrual and the year-end carry forward on
// the first day of their period. A redis lock keyed by period keeps the runs
// single-shot across restarts and replicas; the lock outlives the trigger
// window so an instance that comes up late does not rerun a finished period.
func RunScheduler() error {
	logger := zap.L().Named("app.scheduler")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	accrualService := accrual.NewServiceWithOutbox(sqlDB, leaveBalanceRepo, leaveTypeRepo, outboxRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := time.NewTicker(schedulerPollInterval)
	defer ticker.Stop()

	logger.Info("scheduler started", zap.Duration("poll_interval", schedulerPollInterval))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// First pass right away so a restart on the first of the month does not
	// wait an hour.
	runDueAccruals(ctx, rdb, accrualService, logger, time.Now().UTC())

	for {
		select {
		case <-quit:
			logger.Info("scheduler shutting down")
			return nil
		case <-ticker.C:
			runDueAccruals(ctx, rdb, accrualService, logger, time.Now().UTC())
		}
	}
}

func runDueAccruals(
	ctx context.Context,
	rdb *redis.Client,
	service accrual.Service,
	logger *zap.Logger,
	now time.Time,
) {
	if now.Day() != 1 {
		return
	}

	if now.Month() == time.January {
		lockKey := fmt.Sprintf("accrual:yearend:%d", now.Year())
		if acquirePeriodLock(ctx, rdb, lockKey, 35*24*time.Hour, logger) {
			summary, err := service.RunYearEndCarryForward(ctx, now)
			if err != nil {
				logger.Error("scheduled year-end carry forward failed", zap.Error(err))
			} else {
				logger.Info("scheduled year-end carry forward finished",
					zap.String("period", summary.Period),
					zap.Int("rows_updated", summary.RowsUpdated),
					zap.Int("rows_created", summary.RowsCreated),
				)
			}
		}
	}

	lockKey := fmt.Sprintf("accrual:monthly:%s", now.Format("2006-01"))
	if acquirePeriodLock(ctx, rdb, lockKey, 35*24*time.Hour, logger) {
		summary, err := service.RunMonthlyAccrual(ctx, now)
		if err != nil {
			logger.Error("scheduled monthly accrual failed", zap.Error(err))
		} else {
			logger.Info("scheduled monthly accrual finished",
				zap.String("period", summary.Period),
				zap.Int("rows_updated", summary.RowsUpdated),
			)
		}
	}
}

func acquirePeriodLock(
	ctx context.Context,
	rdb *redis.Client,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
) bool {
	acquired, err := rdb.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		logger.Error("period lock check failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !acquired {
		logger.Debug("period already processed", zap.String("key", key))
	}
	return acquired
}
