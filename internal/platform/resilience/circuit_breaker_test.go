package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

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

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open trial request to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open trial request, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteIgnoresNonFailures(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	businessErr := errors.New("tournament is in progress")
	connErr := errors.New("connection refused")
	isFailure := func(err error) bool { return errors.Is(err, connErr) }

	if err := b.Execute(func() error { return businessErr }, isFailure); !errors.Is(err, businessErr) {
		t.Fatalf("expected business error to pass through, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after business error, got %s", state)
	}

	if err := b.Execute(func() error { return connErr }, isFailure); !errors.Is(err, connErr) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after connection error, got %s", state)
	}

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	}, isFailure)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Fatalf("fn must not run while the circuit is open")
	}
}
