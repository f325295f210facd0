// Package ratelimit provides an in-process, per-key rate limiter with
// windowed decay and optional temporary blocking. State is process-local;
// a multi-instance deployment needs an external shared limiter instead.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Config describes one limiter scope.
type Config struct {
	// Points is the number of consumptions allowed per window.
	Points int

	// Window is the time span after which a bucket's points reset.
	Window time.Duration

	// BlockDuration is how long a key stays blocked once its points are
	// exhausted. Zero means no block: the key simply waits for the
	// window to elapse.
	BlockDuration time.Duration
}

// Result reports the state of a bucket after a successful consumption.
type Result struct {
	Remaining int
}

// Error is returned when a key has no points left.
type Error struct {
	// MsBeforeNext is the time until the next point becomes available,
	// in milliseconds.
	MsBeforeNext int64
}

func (e *Error) Error() string {
	return fmt.Sprintf("too many requests, retry in %dms", e.MsBeforeNext)
}

// RetrySeconds returns the wait rounded up to whole seconds, minimum 1.
// Intended for Retry-After headers.
func (e *Error) RetrySeconds() int {
	secs := int((e.MsBeforeNext + 999) / 1000)
	if secs < 1 {
		secs = 1
	}
	return secs
}

type bucket struct {
	remaining    int
	windowStart  time.Time
	blockedUntil time.Time
}

// Limiter tracks per-key consumption for one scope. Keys are typically
// client addresses; buckets are created lazily on first consumption.
type Limiter struct {
	cfg Config

	mu       sync.Mutex
	buckets  map[string]*bucket
	consumes int

	now func() time.Time
}

// New creates a limiter for the given scope configuration.
func New(cfg Config) *Limiter {
	return &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// sweepInterval controls how often idle buckets are pruned, counted in
// consumptions across all keys.
const sweepInterval = 1024

// Consume takes one point from the bucket for key. When the bucket is
// exhausted or blocked it returns *Error carrying the wait until the next
// point; exhausting a scope with a BlockDuration puts the key into a
// blocked state for the full duration regardless of the window elapsing.
func (l *Limiter) Consume(key string) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	l.consumes++
	if l.consumes%sweepInterval == 0 {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{remaining: l.cfg.Points, windowStart: now}
		l.buckets[key] = b
	}

	if b.blockedUntil.After(now) {
		return nil, &Error{MsBeforeNext: b.blockedUntil.Sub(now).Milliseconds()}
	}

	if now.Sub(b.windowStart) >= l.cfg.Window {
		b.remaining = l.cfg.Points
		b.windowStart = now
		b.blockedUntil = time.Time{}
	}

	if b.remaining <= 0 {
		if l.cfg.BlockDuration > 0 {
			b.blockedUntil = now.Add(l.cfg.BlockDuration)
			return nil, &Error{MsBeforeNext: l.cfg.BlockDuration.Milliseconds()}
		}
		return nil, &Error{MsBeforeNext: b.windowStart.Add(l.cfg.Window).Sub(now).Milliseconds()}
	}

	b.remaining--
	return &Result{Remaining: b.remaining}, nil
}

// sweep drops buckets whose window and block have both passed. Caller
// holds l.mu.
func (l *Limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.cfg.Window && !b.blockedUntil.After(now) {
			delete(l.buckets, key)
		}
	}
}
