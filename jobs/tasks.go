package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerRefresh is the task type for re-warming the ledger snapshot.
	TaskLedgerRefresh = "ledger:refresh"
)

// LedgerRefreshPayload records why a refresh was requested.
type LedgerRefreshPayload struct {
	Reason string `json:"reason"`
}

// NewLedgerRefreshTask constructs an Asynq task.
func NewLedgerRefreshTask(payload LedgerRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerRefresh, data), nil
}

// RefreshService is the slice of the ledger service the worker needs.
type RefreshService interface {
	Refresh(ctx context.Context) (int, error)
}

// LedgerRefreshJob re-warms the cached ledger snapshot.
type LedgerRefreshJob struct {
	Service RefreshService
	Logger  *slog.Logger
}

// Handle processes TaskLedgerRefresh tasks.
func (j *LedgerRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload LedgerRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	count, err := j.Service.Refresh(ctx)
	if err != nil {
		j.Logger.Error("ledger refresh job failed", slog.String("reason", payload.Reason), slog.Any("error", err))
		return err
	}
	j.Logger.Info("ledger snapshot refreshed", slog.String("reason", payload.Reason), slog.Int("sales", count))
	return nil
}
