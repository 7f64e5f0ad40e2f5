package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"frontdesk/config"
	"frontdesk/models"
	"frontdesk/services/telemetry"
	"frontdesk/utils"
)

// InitTelemetryWorker runs the asynq consumer in the background, draining the
// telemetry queue into mongo.
func InitTelemetryWorker(db *mongo.Client) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTelemetryDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"telemetry": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(telemetry.TypeTurnRecord, handleTurnRecord(db))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting telemetry worker")

		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("telemetry worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("telemetry worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleTurnRecord(db *mongo.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var rec models.TurnRecord
		if err := json.Unmarshal(task.Payload(), &rec); err != nil {
			utils.GetLogger().Warn("invalid telemetry payload", zap.Error(err))
			return err
		}

		coll := db.Database(config.AppConfig.DatabaseName).Collection("turn_records")
		if _, err := coll.InsertOne(ctx, rec); err != nil {
			utils.GetLogger().Warn("telemetry insert failed",
				zap.String("sessionId", rec.SessionID), zap.Error(err))
			return err
		}
		return nil
	}
}
