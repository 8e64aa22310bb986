package resilience

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrCircuitOpen = crerr.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker stops calls to a failing dependency for OpenTimeout after
// FailureThreshold consecutive failures, then lets HalfOpenMaxReq probes
// through before closing again.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig
	now func() time.Time

	// onStateChange runs outside the lock.
	onStateChange func(from, to CircuitState)

	state               CircuitState
	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
	halfOpenSuccesses   int
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// OnStateChange registers a callback for state transitions.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onStateChange = fn
}

// Execute runs fn when the breaker allows it and records the outcome.
// Context cancellation by the caller is not counted as a failure. A nil
// breaker or a disabled config runs fn directly.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if b == nil || !b.cfg.Enabled {
		return fn(ctx)
	}
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.RecordSuccess()
	case ctx.Err() != nil:
		b.release()
	default:
		b.RecordFailure()
	}
	return err
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	from := b.state
	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.toHalfOpen()
	}

	if b.state == CircuitStateHalfOpen && b.halfOpenInFlight >= b.cfg.HalfOpenMaxReq {
		b.mu.Unlock()
		return ErrCircuitOpen
	}
	if b.state == CircuitStateHalfOpen {
		b.halfOpenInFlight++
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures = 0
	case CircuitStateHalfOpen:
		if b.halfOpenInFlight > 0 {
			b.halfOpenInFlight--
		}
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= b.cfg.HalfOpenMaxReq && b.halfOpenInFlight == 0 {
			b.toClosed()
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.cfg.FailureThreshold {
			b.toOpen()
		}
	case CircuitStateHalfOpen:
		b.toOpen()
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

// State reports an expired open breaker as half-open.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

// release returns a half-open probe slot without judging the dependency.
func (b *CircuitBreaker) release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateHalfOpen && b.halfOpenInFlight > 0 {
		b.halfOpenInFlight--
	}
}

func (b *CircuitBreaker) notify(from, to CircuitState) {
	if from == to {
		return
	}
	b.mu.Lock()
	fn := b.onStateChange
	b.mu.Unlock()
	if fn != nil {
		fn(from, to)
	}
}

func (b *CircuitBreaker) toClosed() {
	b.state = CircuitStateClosed
	b.consecutiveFailures = 0
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) toOpen() {
	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
}

func (b *CircuitBreaker) toHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
}
