package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Pruner drops expired entries and reports how many it removed.
type Pruner interface {
	Prune() int
}

// SessionPruner periodically sweeps expired sessions out of the in-memory
// session store. Redis expires keys on its own and needs no pruner.
type SessionPruner struct {
	store    Pruner
	interval time.Duration
	log      zerolog.Logger
}

// NewSessionPruner creates a new SessionPruner.
func NewSessionPruner(store Pruner, interval time.Duration, log zerolog.Logger) *SessionPruner {
	return &SessionPruner{
		store:    store,
		interval: interval,
		log:      log.With().Str("component", "session_pruner").Logger(),
	}
}

// Start runs until ctx is cancelled. Call in a goroutine.
func (w *SessionPruner) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

func (w *SessionPruner) runOnce() int {
	dropped := w.store.Prune()
	if dropped > 0 {
		w.log.Debug().Int("dropped", dropped).Msg("Pruned expired sessions")
	}
	return dropped
}
