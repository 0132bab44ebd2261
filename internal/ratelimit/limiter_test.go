package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with a controllable clock.
func newTestLimiter(t *testing.T) (*Limiter, *time.Time) {
	t.Helper()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(logger.Nop())
	l.now = func() time.Time { return current }

	return l, &current
}

func TestLimiter_Check_AllowsUpToMaxAttempts(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 1; i <= LoginMaxAttempts; i++ {
		result := l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
		require.True(t, result.Allowed, "attempt %d should be allowed", i)
		assert.Equal(t, LoginMaxAttempts-i, result.Remaining)
	}
}

func TestLimiter_Check_BlocksSixthAttempt(t *testing.T) {
	l, clock := newTestLimiter(t)

	for i := 0; i < LoginMaxAttempts; i++ {
		l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	}

	result := l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	require.False(t, result.Allowed)
	assert.Zero(t, result.Remaining)
	assert.Equal(t, clock.Add(LoginBlockDuration), result.ResetTime)
}

func TestLimiter_Check_BlockedRetryDoesNotExtendBlock(t *testing.T) {
	l, clock := newTestLimiter(t)

	for i := 0; i <= LoginMaxAttempts; i++ {
		l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	}
	blockedUntil := clock.Add(LoginBlockDuration)

	// retrying while blocked must not move the expiry forward
	*clock = clock.Add(5 * time.Minute)
	result := l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	require.False(t, result.Allowed)
	assert.Equal(t, blockedUntil, result.ResetTime)
}

func TestLimiter_Check_FreshWindowAfterBlockExpires(t *testing.T) {
	l, clock := newTestLimiter(t)

	for i := 0; i <= LoginMaxAttempts; i++ {
		l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	}

	*clock = clock.Add(LoginBlockDuration + time.Second)
	result := l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	require.True(t, result.Allowed)
	assert.Equal(t, LoginMaxAttempts-1, result.Remaining)
}

func TestLimiter_Check_WindowExpiryStartsFreshCount(t *testing.T) {
	l, clock := newTestLimiter(t)

	for i := 0; i < LoginMaxAttempts; i++ {
		l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	}

	*clock = clock.Add(LoginWindow + time.Second)
	result := l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	require.True(t, result.Allowed)
	assert.Equal(t, LoginMaxAttempts-1, result.Remaining)
}

func TestLimiter_Check_IdentifiersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 0; i <= LoginMaxAttempts; i++ {
		l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	}

	result := l.Check("5.6.7.8", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	assert.True(t, result.Allowed)
}

func TestLimiter_Reset_ClearsAttemptHistory(t *testing.T) {
	l, _ := newTestLimiter(t)

	for i := 0; i < LoginMaxAttempts; i++ {
		l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	}

	l.Reset("1.2.3.4")

	result := l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	require.True(t, result.Allowed)
	assert.Equal(t, LoginMaxAttempts-1, result.Remaining)
}

func TestLimiter_Sweep_PurgesExpiredKeepsBlocked(t *testing.T) {
	l, clock := newTestLimiter(t)

	// expired-window entry
	l.Check("expired", LoginMaxAttempts, LoginWindow, LoginBlockDuration)

	// blocked entry: five attempts now, the sixth five minutes later so the
	// block outlives the counting window
	for i := 0; i < LoginMaxAttempts; i++ {
		l.Check("blocked", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
	}
	*clock = clock.Add(5 * time.Minute)
	l.Check("blocked", LoginMaxAttempts, LoginWindow, LoginBlockDuration)

	// both windows have expired, the block is still active
	*clock = clock.Add(11 * time.Minute)
	l.Sweep()

	assert.Equal(t, 1, l.Len())

	*clock = clock.Add(5 * time.Minute)
	l.Sweep()

	assert.Zero(t, l.Len())
}

func TestLimiter_Check_ConcurrentAttemptsNeverExceedLimit(t *testing.T) {
	l, _ := newTestLimiter(t)

	const goroutines = 50
	allowed := make(chan bool, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := l.Check("1.2.3.4", LoginMaxAttempts, LoginWindow, LoginBlockDuration)
			allowed <- result.Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	allowedCount := 0
	for ok := range allowed {
		if ok {
			allowedCount++
		}
	}

	assert.Equal(t, LoginMaxAttempts, allowedCount)
}
