package storage

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically removes expired records so that unread ones do not
// pile up forever. Reads are already safe without it; this is purely a
// resource-management loop.
type Sweeper struct {
	store    *Store
	interval time.Duration
	l        *slog.Logger
}

func NewSweeper(store *Store, interval time.Duration, l *slog.Logger) *Sweeper {
	return &Sweeper{store: store, interval: interval, l: l}
}

// Run blocks until the context is cancelled. Sweep failures are logged
// and the next cycle runs regardless.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := s.store.Cleanup(ctx)
			if err != nil {
				s.l.Warn("sweep failed", "error", err)
				continue
			}
			if count > 0 {
				s.l.Debug("swept expired records", "count", count)
			}
		}
	}
}
