package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultSweepInterval is how often the background sweeper fires.
const DefaultSweepInterval = time.Second

// StartSweeper runs Sweep on a fixed interval until ctx is cancelled. It is
// the only path expected to mutate the store concurrently with inserts;
// both serialize through the store lock.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Debug().Msg("Sweeper stopped")
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}
