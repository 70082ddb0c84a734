package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

// DefaultCodeRetention is how long a spent code keeps its value before
// housekeeping releases it.
const DefaultCodeRetention = 24 * time.Hour

// HousekeepingService periodically releases the values of spent email codes,
// so the code space only holds codes that can still be used. Token rows are
// kept for auditing.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Now       Clock

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour. Retention defaults to
// DefaultCodeRetention the same way.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultCodeRetention
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retention", s.Retention)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.RunOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce releases codes that were consumed, or that expired more than
// Retention ago, and returns how many were released.
func (s *HousekeepingService) RunOnce(ctx context.Context) int64 {
	cutoff := s.Now.now().Add(-s.Retention)

	n, err := s.Store.Tokens().ReleaseSpentEmailCodes(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to release spent email codes", slogx.Tags("db"), "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "released_codes", n, "cutoff", cutoff)
	return n
}
