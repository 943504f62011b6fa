package sweeper

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hglok/raidsync/internal/common/logger"
	"github.com/hglok/raidsync/internal/metrics"
	"github.com/hglok/raidsync/internal/models"
	lockRepo "github.com/hglok/raidsync/internal/repositories/lock"
	"github.com/hglok/raidsync/internal/services/feed"
)

// Config holds the dependencies for the expiry sweeper
type Config struct {
	// Interval is how often expired locks are swept
	Interval time.Duration

	// LockRepo is where expired locks are evicted from
	LockRepo lockRepo.Repository

	// Feed receives an expiry notification per evicted lock
	Feed feed.Publisher
}

// Sweeper periodically evicts expired draft locks and announces each
// eviction on the change feed. The store's key TTL already reclaims the
// payloads on its own; the sweeper exists so subscribers hear about it.
type Sweeper struct {
	interval time.Duration
	lockRepo lockRepo.Repository
	feed     feed.Publisher

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// New creates a new sweeper
func New(cfg *Config) (*Sweeper, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.LockRepo == nil {
		return nil, errors.New("lock repository is required")
	}
	if cfg.Feed == nil {
		return nil, errors.New("feed publisher is required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("interval must be positive")
	}

	return &Sweeper{
		interval: cfg.Interval,
		lockRepo: cfg.LockRepo,
		feed:     cfg.Feed,
	}, nil
}

// Start launches the sweep loop. Calling Start on a running sweeper is a
// no-op.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.stopped = make(chan struct{})

	go s.run(ctx)
}

// Stop halts the sweep loop and waits for the in-flight sweep, if any, to
// finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, stopped := s.cancel, s.stopped
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	out, err := s.lockRepo.SweepExpired(ctx, &lockRepo.SweepExpiredInput{})
	if err != nil {
		logger.L().Error(ctx, "lock sweep failed", logger.Error(err))
		return
	}
	if len(out.Evicted) == 0 {
		return
	}

	metrics.RecordLocksExpired(len(out.Evicted))
	logger.L().Info(ctx, "evicted expired locks", logger.Int("count", len(out.Evicted)))

	for _, evicted := range out.Evicted {
		lock := evicted.Lock
		if lock == nil {
			// The payload already aged out of the store; the key fields
			// are all that is left to report.
			lock = &models.DraftLock{
				EventID:         evicted.EventID,
				ParticipantID:   evicted.ParticipantID,
				ParticipantType: evicted.ParticipantType,
			}
		}
		s.feed.Publish(ctx, evicted.EventID, feed.Notification{
			Kind:    feed.KindLockExpired,
			EventID: evicted.EventID,
			Lock:    lock,
		})
	}
}
