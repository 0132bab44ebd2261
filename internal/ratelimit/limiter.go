// Package ratelimit implements the in-memory sliding-window rate limiter
// guarding the login endpoint.
//
// The limiter is an injected stateful service: constructed once per process,
// it exposes Check and Reset operations and relies on a periodic sweep
// (see [Sweeper]) to reclaim expired entries. All table access is serialized
// by a single mutex so concurrent attempts from one client can never push
// the counter past the limit without transitioning into the blocked state.
package ratelimit

import (
	"sync"
	"time"

	"github.com/notulensi/notulensi-pro/internal/logger"
)

// Login endpoint policy constants.
const (
	// LoginMaxAttempts is the number of login attempts allowed per window.
	LoginMaxAttempts = 5
	// LoginWindow is the sliding attempt-counting window.
	LoginWindow = 15 * time.Minute
	// LoginBlockDuration is how long an identifier stays blocked after
	// exceeding the attempt limit.
	LoginBlockDuration = 15 * time.Minute
	// SweepInterval is how often expired entries are purged.
	SweepInterval = 10 * time.Minute
)

// Result is the outcome of a single rate-limit check.
type Result struct {
	// Allowed reports whether the attempt may proceed.
	Allowed bool

	// Remaining is the number of attempts left in the current window.
	// Zero when the identifier is blocked.
	Remaining int

	// ResetTime is when the current window ends, or, for a blocked
	// identifier, when the block expires.
	ResetTime time.Time
}

// entry is the per-identifier counter state. Mutated in place under the
// limiter's mutex.
type entry struct {
	count        int
	resetTime    time.Time
	blockedUntil time.Time
}

// Limiter is an in-memory per-identifier sliding-window counter with a
// block cooldown. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time

	logger *logger.Logger
}

// NewLimiter constructs an empty Limiter.
func NewLimiter(logger *logger.Logger) *Limiter {
	logger.Debug().Msg("creating rate limiter")
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
		logger:  logger,
	}
}

// Check records one attempt for identifier and reports whether it is
// allowed.
//
// Behavior:
//   - An active block returns not-allowed with the block's expiry as reset
//     time and zero remaining attempts.
//   - A missing entry or an expired window starts a fresh window with
//     count = 1.
//   - Otherwise the count is incremented; exceeding maxAttempts transitions
//     the identifier into a block lasting blockDuration.
func (l *Limiter) Check(identifier string, maxAttempts int, window, blockDuration time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e := l.entries[identifier]

	if e != nil && e.blockedUntil.After(now) {
		l.logger.Warn().
			Str("identifier", identifier).
			Time("blocked_until", e.blockedUntil).
			Msg("rate limit: identifier is blocked")
		return Result{Allowed: false, Remaining: 0, ResetTime: e.blockedUntil}
	}

	if e == nil || e.resetTime.Before(now) {
		resetTime := now.Add(window)
		l.entries[identifier] = &entry{count: 1, resetTime: resetTime}
		return Result{Allowed: true, Remaining: maxAttempts - 1, ResetTime: resetTime}
	}

	e.count++

	if e.count > maxAttempts {
		e.blockedUntil = now.Add(blockDuration)
		l.logger.Warn().
			Str("identifier", identifier).
			Int("attempts", e.count).
			Msg("rate limit exceeded: identifier blocked")
		return Result{Allowed: false, Remaining: 0, ResetTime: e.blockedUntil}
	}

	return Result{Allowed: true, Remaining: maxAttempts - e.count, ResetTime: e.resetTime}
}

// Reset deletes the entry for identifier outright. Called after a
// successful authentication so earlier failed attempts stop counting.
func (l *Limiter) Reset(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, identifier)
}

// Sweep purges entries whose window has expired and which are not currently
// blocked. One pass; the [Sweeper] worker calls it periodically.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for identifier, e := range l.entries {
		if e.resetTime.Before(now) && !e.blockedUntil.After(now) {
			delete(l.entries, identifier)
		}
	}
}

// Len returns the number of tracked identifiers. Intended for tests and
// diagnostics.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
