package service

import (
	"context"
	"time"

	"github.com/cdentertainment/site-api/internal/app/repository"
	"github.com/cdentertainment/site-api/internal/infra/prometheus"
	"go.uber.org/zap"
)

const defaultSweepInterval = 5 * time.Minute

// StaleRequestSweeper periodically archives active song requests older than maxAge,
// so a queue left open after an event does not carry into the next one.
type StaleRequestSweeper struct {
	logger   *zap.Logger
	repo     repository.SongRequestRepository
	maxAge   time.Duration
	interval time.Duration
	now      func() time.Time
	stopChan chan struct{}
	done     chan struct{}
}

// NewStaleRequestSweeper returns a sweeper, or nil when maxAge is zero (sweeping disabled).
func NewStaleRequestSweeper(logger *zap.Logger, repo repository.SongRequestRepository, maxAge, interval time.Duration) *StaleRequestSweeper {
	if maxAge <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaleRequestSweeper{
		logger:   logger,
		repo:     repo,
		maxAge:   maxAge,
		interval: interval,
		now:      time.Now,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (s *StaleRequestSweeper) Start() {
	go s.run()
}

// Stop ends the sweep loop and waits for an in-flight sweep to finish.
func (s *StaleRequestSweeper) Stop() {
	close(s.stopChan)
	<-s.done
}

func (s *StaleRequestSweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopChan:
			s.logger.Info("stale song request sweeper stopped")
			return
		}
	}
}

// Sweep archives every active request submitted before now minus maxAge.
func (s *StaleRequestSweeper) Sweep(ctx context.Context) int64 {
	cutoff := s.now().Add(-s.maxAge).UTC()

	affected, err := s.repo.ArchiveRequestedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to archive stale song requests", zap.Error(err))
		return 0
	}

	if affected > 0 {
		prometheus.ObserveSongRequestsArchived("stale", affected)
		s.logger.Info("archived stale song requests",
			zap.Int64("count", affected),
			zap.Time("requested_before", cutoff),
		)
	}
	return affected
}
