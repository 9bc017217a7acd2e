// Package ratelimit provides a fixed-window request counter keyed by actor.
//
// The limiter is explicit, injected state: the window, the limit and the
// clock are all constructor parameters, so concurrent request-handling units
// share one coherent limiter instead of process-wide mutable globals.
package ratelimit

import (
	"sync"
	"time"
)

// ActorLimiter counts requests per actor within a fixed time window.
// Safe for concurrent use.
type ActorLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*actorWindow
}

type actorWindow struct {
	start time.Time
	count int
}

// NewActorLimiter creates a limiter allowing limit requests per actor per
// window. The clock is injected so tests can drive time explicitly.
func NewActorLimiter(limit int, window time.Duration, now func() time.Time) *ActorLimiter {
	return &ActorLimiter{
		limit:   limit,
		window:  window,
		now:     now,
		windows: make(map[string]*actorWindow),
	}
}

// Allow records one request for the actor and reports whether it fits the
// current window. The first request after a window expires resets the count.
func (l *ActorLimiter) Allow(actorKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[actorKey]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[actorKey] = &actorWindow{start: now, count: 1}
		return true
	}

	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Prune drops windows that expired before the current one.
// Call periodically to keep memory bounded with many distinct actors.
func (l *ActorLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
		}
	}
}
