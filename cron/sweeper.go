package cron

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"frontdesk/config"
	"frontdesk/utils"
)

// InitSweeper schedules the housekeeping jobs: a telemetry queue health
// check every five minutes and a nightly prune of archived queue state.
// Session expiry itself is handled by the redis TTL on session keys.
func InitSweeper() *cron.Cron {
	c := cron.New()

	c.AddFunc("*/5 * * * *", checkTelemetryQueue)
	c.AddFunc("30 3 * * *", pruneArchivedTasks)

	c.Start()
	utils.GetLogger().Info("sweeper scheduled")
	return c
}

// checkTelemetryQueue logs queue depth so a stuck worker shows up in the
// logs before records pile up.
func checkTelemetryQueue() {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTelemetryDB,
	})
	defer inspector.Close()

	info, err := inspector.GetQueueInfo("telemetry")
	if err != nil {
		utils.GetLogger().Warn("telemetry queue inspect failed", zap.Error(err))
		return
	}
	if info.Pending > 1000 || info.Retry > 100 {
		utils.GetLogger().Warn("telemetry queue backing up",
			zap.Int("pending", info.Pending),
			zap.Int("retry", info.Retry))
	} else {
		utils.GetLogger().Debug("telemetry queue ok",
			zap.Int("pending", info.Pending))
	}
}

// pruneArchivedTasks drops archived telemetry tasks and verifies the session
// store is reachable.
func pruneArchivedTasks() {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTelemetryDB,
	})
	defer inspector.Close()

	n, err := inspector.DeleteAllArchivedTasks("telemetry")
	if err != nil {
		utils.GetLogger().Warn("archived task prune failed", zap.Error(err))
	} else if n > 0 {
		utils.GetLogger().Info("pruned archived telemetry tasks", zap.Int("count", n))
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		utils.GetLogger().Error("session store unreachable", zap.Error(err))
	}
}
