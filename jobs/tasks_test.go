package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRefresher struct {
	count int
	err   error
	calls int
}

func (s *stubRefresher) Refresh(ctx context.Context) (int, error) {
	s.calls++
	return s.count, s.err
}

func TestLedgerRefreshJobHandle(t *testing.T) {
	refresher := &stubRefresher{count: 12}
	job := &LedgerRefreshJob{Service: refresher, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	task, err := NewLedgerRefreshTask(LedgerRefreshPayload{Reason: "scheduled"})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 1, refresher.calls)
}

func TestLedgerRefreshJobPropagatesFailure(t *testing.T) {
	refresher := &stubRefresher{err: errors.New("data service down")}
	job := &LedgerRefreshJob{Service: refresher, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	task, err := NewLedgerRefreshTask(LedgerRefreshPayload{Reason: "manual"})
	require.NoError(t, err)

	assert.Error(t, job.Handle(context.Background(), task))
}

func TestLedgerRefreshJobSkipsBadPayload(t *testing.T) {
	refresher := &stubRefresher{}
	job := &LedgerRefreshJob{Service: refresher, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	task := asynq.NewTask(TaskLedgerRefresh, []byte("{not json"))
	err := job.Handle(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Zero(t, refresher.calls)
}
