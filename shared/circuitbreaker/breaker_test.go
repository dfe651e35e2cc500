package circuitbreaker

import (
	"errors"
	"jobboard/shared/config"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

// breaker с управляемыми часами
func newTestBreaker(cfg config.CircuitBreakerConfig) (*CircuitBreaker, *time.Time) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker("test", cfg)
	cb.now = func() time.Time { return now }
	return cb, &now
}

func fail() error    { return errStore }
func succeed() error { return nil }

func TestNewCircuitBreaker(t *testing.T) {
	t.Run("zero config uses defaults", func(t *testing.T) {
		cb := NewCircuitBreaker("docstore", config.CircuitBreakerConfig{})
		defaults := config.UseDefaultCircuitBreakerConfig()

		assert.Equal(t, defaults.FailureThreshold, cb.failureThreshold)
		assert.Equal(t, defaults.SuccessThreshold, cb.successThreshold)
		assert.Equal(t, defaults.HalfOpenMaxRequests, cb.halfOpenMaxRequests)
		assert.Equal(t, defaults.ResetTimeout, cb.resetTimeout)
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("custom config is kept", func(t *testing.T) {
		cb := NewCircuitBreaker("docstore", config.CircuitBreakerConfig{
			FailureThreshold:    10,
			SuccessThreshold:    5,
			HalfOpenMaxRequests: 3,
			ResetTimeout:        time.Second,
		})
		assert.Equal(t, uint32(10), cb.failureThreshold)
		assert.Equal(t, uint32(5), cb.successThreshold)
		assert.Equal(t, uint32(3), cb.halfOpenMaxRequests)
		assert.Equal(t, time.Second, cb.resetTimeout)
	})
}

func TestExecute(t *testing.T) {
	t.Run("success passes through", func(t *testing.T) {
		cb, _ := newTestBreaker(config.CircuitBreakerConfig{})
		require.NoError(t, cb.Execute(succeed))

		stats := cb.GetStats()
		assert.Equal(t, uint32(1), stats.TotalRequests)
		assert.Equal(t, uint32(1), stats.TotalSuccesses)
	})

	t.Run("failure is returned as is", func(t *testing.T) {
		cb, _ := newTestBreaker(config.CircuitBreakerConfig{})
		assert.ErrorIs(t, cb.Execute(fail), errStore)
		assert.Equal(t, uint32(1), cb.GetStats().TotalFailures)
	})
}

func TestStateTransitions(t *testing.T) {
	cfg := config.CircuitBreakerConfig{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		HalfOpenMaxRequests: 2,
		ResetTimeout:        10 * time.Second,
	}

	t.Run("closed to open after threshold", func(t *testing.T) {
		cb, _ := newTestBreaker(cfg)
		for i := 0; i < 3; i++ {
			_ = cb.Execute(fail)
		}
		assert.Equal(t, StateOpen, cb.State())

		called := false
		err := cb.Execute(func() error { called = true; return nil })
		assert.ErrorIs(t, err, ErrCircuitOpen)
		assert.False(t, called)
	})

	t.Run("success resets failure streak", func(t *testing.T) {
		cb, _ := newTestBreaker(cfg)
		_ = cb.Execute(fail)
		_ = cb.Execute(fail)
		_ = cb.Execute(succeed)
		_ = cb.Execute(fail)
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("open to half-open to closed", func(t *testing.T) {
		cb, now := newTestBreaker(cfg)
		for i := 0; i < 3; i++ {
			_ = cb.Execute(fail)
		}
		*now = now.Add(11 * time.Second)

		require.NoError(t, cb.Execute(succeed))
		assert.Equal(t, StateHalfOpen, cb.State())
		require.NoError(t, cb.Execute(succeed))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("half-open failure reopens", func(t *testing.T) {
		cb, now := newTestBreaker(cfg)
		for i := 0; i < 3; i++ {
			_ = cb.Execute(fail)
		}
		*now = now.Add(11 * time.Second)

		_ = cb.Execute(fail)
		assert.Equal(t, StateOpen, cb.State())
		assert.ErrorIs(t, cb.Execute(succeed), ErrCircuitOpen)
	})
}

func TestHalfOpenMaxRequestsConcurrent(t *testing.T) {
	cb, now := newTestBreaker(config.CircuitBreakerConfig{
		FailureThreshold:    1,
		SuccessThreshold:    10,
		HalfOpenMaxRequests: 2,
		ResetTimeout:        time.Second,
	})
	_ = cb.Execute(fail)
	*now = now.Add(2 * time.Second)

	release := make(chan struct{})
	var started sync.WaitGroup
	var rejected atomic.Int32
	var wg sync.WaitGroup

	// два пробных вызова висят, пока не отпустим
	for i := 0; i < 2; i++ {
		started.Add(1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cb.Execute(func() error {
				started.Done()
				<-release
				return nil
			})
		}()
	}
	started.Wait()

	for i := 0; i < 5; i++ {
		if errors.Is(cb.Execute(succeed), ErrTooManyRequests) {
			rejected.Add(1)
		}
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(5), rejected.Load())
	assert.Equal(t, uint32(5), cb.GetStats().Rejected)
}
