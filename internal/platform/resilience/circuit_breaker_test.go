package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
)

func newTestBreaker(now *time.Time) *CircuitBreaker {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})
	b.now = func() time.Time { return *now }
	return b
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	now := time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !crerr.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}
	if err := b.Allow(); !crerr.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteRecordsOutcome(t *testing.T) {
	now := time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	var transitions []CircuitState
	b.OnStateChange(func(_, to CircuitState) {
		transitions = append(transitions, to)
	})

	boom := errors.New("connection reset")
	for i := 0; i < 2; i++ {
		if err := b.Execute(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("expected dependency error, got %v", err)
		}
	}

	calls := 0
	err := b.Execute(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	if !crerr.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker to short-circuit, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected fn not to run while open, ran %d times", calls)
	}

	now = now.Add(6 * time.Second)
	if err := b.Execute(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected probe to succeed, got %v", err)
	}

	want := []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}
	if len(transitions) != len(want) {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition %d = %s want %s", i, transitions[i], want[i])
		}
	}
}

func TestCircuitBreaker_CanceledCallIsNotAFailure(t *testing.T) {
	now := time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 3; i++ {
		_ = b.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	}

	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected canceled calls to leave breaker closed, got %s", state)
	}
}

func TestCircuitBreaker_DisabledAndNil(t *testing.T) {
	var nilBreaker *CircuitBreaker
	if err := nilBreaker.Execute(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("nil breaker should pass through, got %v", err)
	}

	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	boom := errors.New("down")
	for i := 0; i < 3; i++ {
		_ = b.Execute(context.Background(), func(context.Context) error { return boom })
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("disabled breaker should never open, got %s", state)
	}
}
