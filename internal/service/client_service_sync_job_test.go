package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/models"
	"github.com/stretchr/testify/require"
)

// countingSyncService is a stub ClientSyncService counting Sync calls.
type countingSyncService struct {
	ClientSyncService
	calls atomic.Int64
}

func (c *countingSyncService) Sync(context.Context) ([]models.Event, error) {
	c.calls.Add(1)
	return nil, nil
}

func TestClientSyncJob_StartStopLifecycle(t *testing.T) {
	stub := &countingSyncService{}
	job := NewClientSyncJob(stub, time.Minute, logger.Nop())

	require.NoError(t, job.Start(context.Background()))

	// Stop is idempotent and must not deadlock.
	job.Stop()
	job.Stop()
}

func TestClientSyncJob_RestartReplacesSchedule(t *testing.T) {
	stub := &countingSyncService{}
	job := NewClientSyncJob(stub, time.Minute, logger.Nop())

	ctx := context.Background()
	require.NoError(t, job.Start(ctx))
	require.NoError(t, job.Start(ctx)) // restart while running
	job.Stop()
}

func TestClientSyncJob_PeriodicTick(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a real cron tick")
	}

	stub := &countingSyncService{}
	job := NewClientSyncJob(stub, time.Second, logger.Nop())

	require.NoError(t, job.Start(context.Background()))
	time.Sleep(1500 * time.Millisecond)
	job.Stop()

	require.GreaterOrEqual(t, stub.calls.Load(), int64(1))
}
