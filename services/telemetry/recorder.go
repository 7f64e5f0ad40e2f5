package telemetry

import (
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"frontdesk/config"
	"frontdesk/models"
	"frontdesk/utils"
)

const TypeTurnRecord = "telemetry:turn"

// Recorder captures per-turn telemetry. Record must never block the turn and
// must swallow its own failures.
type Recorder interface {
	Record(rec models.TurnRecord)
}

// AsynqRecorder enqueues turn records onto the telemetry queue; a background
// worker persists them.
type AsynqRecorder struct {
	client *asynq.Client
}

func NewAsynqRecorder() *AsynqRecorder {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTelemetryDB,
	})
	return &AsynqRecorder{client: client}
}

func (r *AsynqRecorder) Record(rec models.TurnRecord) {
	payload, err := json.Marshal(rec)
	if err != nil {
		utils.GetLogger().Warn("telemetry marshal failed", zap.Error(err))
		return
	}
	task := asynq.NewTask(TypeTurnRecord, payload)
	if _, err := r.client.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("telemetry")); err != nil {
		utils.GetLogger().Warn("telemetry enqueue failed",
			zap.String("sessionId", rec.SessionID), zap.Error(err))
	}
}

func (r *AsynqRecorder) Close() error {
	return r.client.Close()
}

// NopRecorder drops all records. Used in tests and when Redis is unavailable.
type NopRecorder struct{}

func (NopRecorder) Record(models.TurnRecord) {}
