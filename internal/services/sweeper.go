package services

import (
	"context"
	"time"

	"livepoll/internal/repository"
	"livepoll/pkg/logger"
)

// Sweeper evicts sessions that have seen no activity for the configured TTL,
// together with their polls. Without it the session and poll maps grow
// without bound for the life of the process.
type Sweeper struct {
	sessions repository.SessionRepository
	polls    repository.PollRepository
	ttl      time.Duration
	interval time.Duration
	logger   *logger.Logger
}

func NewSweeper(sessions repository.SessionRepository, polls repository.PollRepository, ttl, interval time.Duration, l *logger.Logger) *Sweeper {
	return &Sweeper{sessions: sessions, polls: polls, ttl: ttl, interval: interval, logger: l}
}

// Start runs the sweep loop until ctx is cancelled.
func (w *Sweeper) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := w.SweepOnce(ctx); n > 0 && w.logger != nil {
				w.logger.Infof("sweeper evicted %d idle session(s)", n)
			}
		}
	}
}

// SweepOnce evicts all sessions idle past the TTL and returns how many were
// removed.
func (w *Sweeper) SweepOnce(ctx context.Context) int {
	cutoff := time.Now().Add(-w.ttl)
	idle, err := w.sessions.ListIdleSince(ctx, cutoff)
	if err != nil {
		if w.logger != nil {
			w.logger.Errorf("sweeper list idle sessions: %s", err)
		}
		return 0
	}

	evicted := 0
	for _, sess := range idle {
		if err := w.polls.DeleteBySession(ctx, sess.ID); err != nil {
			if w.logger != nil {
				w.logger.Errorf("sweeper delete polls for session %s: %s", sess.ID, err)
			}
			continue
		}
		if err := w.sessions.Delete(ctx, sess.ID); err != nil {
			if w.logger != nil {
				w.logger.Errorf("sweeper delete session %s: %s", sess.ID, err)
			}
			continue
		}
		evicted++
	}
	return evicted
}
