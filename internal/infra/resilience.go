// Package infra provides shared resilience primitives for outbound WordPress
// REST calls: a circuit breaker that fails fast when a site is unresponsive,
// and a request deduplicator that coalesces identical in-flight fetches.
package infra

import (
	"context"
	"sync"
	"time"
)

// Deduplicator coalesces identical in-flight requests. When several
// goroutines ask for the same key at once (e.g. two tool calls both
// refreshing the same site's content-type directory), only one fetch runs
// and every waiter receives its result.
type Deduplicator[T any] struct {
	mu       sync.Mutex
	inflight map[string]*flight[T]
}

type flight[T any] struct {
	done   chan struct{}
	result T
	err    error
}

// NewDeduplicator creates an empty Deduplicator.
func NewDeduplicator[T any]() *Deduplicator[T] {
	return &Deduplicator[T]{inflight: make(map[string]*flight[T])}
}

// Do runs fn unless a call with the same key is already in flight, in which
// case it waits for that call instead. The bool reports whether the result
// was shared from another caller's fetch.
func (d *Deduplicator[T]) Do(ctx context.Context, key string, fn func() (T, error)) (T, bool, error) {
	d.mu.Lock()
	if f, ok := d.inflight[key]; ok {
		d.mu.Unlock()
		select {
		case <-f.done:
			return f.result, true, f.err
		case <-ctx.Done():
			var zero T
			return zero, false, ctx.Err()
		}
	}

	f := &flight[T]{done: make(chan struct{})}
	d.inflight[key] = f
	d.mu.Unlock()

	f.result, f.err = fn()
	close(f.done)

	d.mu.Lock()
	delete(d.inflight, key)
	d.mu.Unlock()

	return f.result, false, f.err
}

// InFlight returns the number of requests currently in flight.
func (d *Deduplicator[T]) InFlight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.inflight)
}

// CircuitState is the current state of a CircuitBreaker.
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // normal operation
	CircuitOpen                         // failing fast
	CircuitHalfOpen                     // probing for recovery
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker opens after a run of consecutive failures and rejects
// requests until a reset timeout elapses, then lets a limited number of
// probe requests through before closing again.
type CircuitBreaker struct {
	mu sync.RWMutex

	failureThreshold int
	resetTimeout     time.Duration
	halfOpenMax      int

	state            CircuitState
	consecutiveFails int
	lastFailure      time.Time
	halfOpenCount    int
}

// NewCircuitBreaker creates a breaker with defaults suited to a single
// WordPress site: open after 5 consecutive failures, probe again after 30s.
func NewCircuitBreaker() *CircuitBreaker {
	return NewCircuitBreakerWithConfig(5, 30*time.Second, 2)
}

// NewCircuitBreakerWithConfig creates a breaker with custom thresholds.
func NewCircuitBreakerWithConfig(failureThreshold int, resetTimeout time.Duration, halfOpenMax int) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		halfOpenMax:      halfOpenMax,
		state:            CircuitClosed,
	}
}

// Allow reports whether a request may proceed, transitioning open→half-open
// once the reset timeout has elapsed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if time.Since(cb.lastFailure) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
			cb.halfOpenCount = 1
			return true
		}
		return false
	case CircuitHalfOpen:
		if cb.halfOpenCount < cb.halfOpenMax {
			cb.halfOpenCount++
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess resets the failure run; in half-open state it closes the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails = 0
	if cb.state == CircuitHalfOpen {
		cb.state = CircuitClosed
		cb.halfOpenCount = 0
	}
}

// RecordFailure counts a failure; at the threshold the circuit opens, and
// any failure in half-open state re-opens it.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails++
	cb.lastFailure = time.Now()

	switch cb.state {
	case CircuitClosed:
		if cb.consecutiveFails >= cb.failureThreshold {
			cb.state = CircuitOpen
		}
	case CircuitHalfOpen:
		cb.state = CircuitOpen
		cb.halfOpenCount = 0
	}
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Stats returns a snapshot of breaker state for logging and error messages.
func (cb *CircuitBreaker) Stats() CircuitBreakerStats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return CircuitBreakerStats{
		State:            cb.state.String(),
		ConsecutiveFails: cb.consecutiveFails,
		LastFailure:      cb.lastFailure,
	}
}

// CircuitBreakerStats is a point-in-time snapshot of a CircuitBreaker.
type CircuitBreakerStats struct {
	State            string    `json:"state"`
	ConsecutiveFails int       `json:"consecutive_failures"`
	LastFailure      time.Time `json:"last_failure,omitempty"`
}

// ErrCircuitOpen is returned when the circuit breaker rejects a request.
type ErrCircuitOpen struct {
	SiteID  string
	RetryAt time.Time
}

func (e *ErrCircuitOpen) Error() string {
	return "circuit breaker open for site " + e.SiteID + ": retry after " + e.RetryAt.Format(time.RFC3339)
}
