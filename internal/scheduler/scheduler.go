package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Pruner drops expired entries and reports how many went.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// Scheduler prunes the response cache on a fixed interval while the site
// is being served.
type Scheduler struct {
	pruner   Pruner
	interval time.Duration
	log      zerolog.Logger
}

// New creates a new scheduler. A zero interval defaults to one hour.
func New(p Pruner, interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		pruner:   p,
		interval: interval,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Run starts the scheduler loop. Blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Debug().Dur("interval", s.interval).Msg("running")
	for {
		select {
		case <-ctx.Done():
			s.log.Debug().Msg("stopped")
			return ctx.Err()
		case <-ticker.C:
			s.prune(ctx)
		}
	}
}

func (s *Scheduler) prune(ctx context.Context) {
	n, err := s.pruner.Prune(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("prune failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("removed", n).Msg("cache pruned")
	}
}
