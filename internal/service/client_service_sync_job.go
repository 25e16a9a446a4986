package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmarakulin/learn-logbook/internal/logger"
)

type clientSyncJob struct {
	syncService ClientSyncService
	interval    time.Duration
	logger      *logger.Logger

	mu       sync.Mutex
	cron     *cron.Cron
	inFlight atomic.Bool
}

// NewClientSyncJob creates a job that runs syncService.Sync on a cron
// schedule. If interval is zero or negative it defaults to 5 minutes. The job
// is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, interval time.Duration, log *logger.Logger) ClientSyncJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &clientSyncJob{
		syncService: syncService,
		interval:    interval,
		logger:      log,
	}
}

// Start implements ClientSyncJob. A tick that fires while the previous sync
// is still running is skipped: at most one sync is in flight at a time.
func (j *clientSyncJob) Start(ctx context.Context) error {
	j.Stop()

	j.mu.Lock()
	defer j.mu.Unlock()

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		if !j.inFlight.CompareAndSwap(false, true) {
			j.logger.Debug().Msg("previous sync still running, skipping tick")
			return
		}
		defer j.inFlight.Store(false)

		if _, err := j.syncService.Sync(ctx); err != nil {
			j.logger.Warn().Err(err).Msg("background sync failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule background sync: %w", err)
	}

	c.Start()
	j.cron = c

	return nil
}

// Stop implements ClientSyncJob. It halts the schedule and blocks until an
// in-flight sync has finished. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	c := j.cron
	j.cron = nil
	j.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
