package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, openTimeout time.Duration, probes int) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: threshold, OpenTimeout: openTimeout, HalfOpenMaxReq: probes})
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := newTestBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
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
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_ReportsTransitions(t *testing.T) {
	b := newTestBreaker(1, time.Second, 1)
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var seen []string
	b.OnStateChange(func(from, to CircuitState) {
		seen = append(seen, string(from)+"->"+string(to))
	})

	b.RecordFailure()
	if got := b.OpenedAt(); !got.Equal(now) {
		t.Fatalf("unexpected openedAt: %s", got)
	}

	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe: %v", err)
	}
	b.RecordSuccess()

	want := []string{"closed->open", "open->half_open", "half_open->closed"}
	if len(seen) != len(want) {
		t.Fatalf("unexpected transitions: %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transition %d: got=%s want=%s", i, seen[i], want[i])
		}
	}
	if !b.OpenedAt().IsZero() {
		t.Fatalf("openedAt must reset after closing")
	}
}

func TestCircuitBreaker_ObserveClassifiesErrors(t *testing.T) {
	b := newTestBreaker(1, time.Minute, 1)
	errBadRequest := errors.New("bad request")
	errTimeout := errors.New("timeout")
	tripsOn := func(err error) bool { return errors.Is(err, errTimeout) }

	b.Observe(errBadRequest, tripsOn)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-tripping error must keep the breaker closed, got %s", state)
	}

	b.Observe(errTimeout, tripsOn)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after tripping error, got %s", state)
	}
}

func TestCircuitBreaker_DisabledPassesThrough(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})

	for i := 0; i < 5; i++ {
		b.RecordFailure()
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("disabled breaker must allow, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("disabled breaker must report closed, got %s", state)
	}
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	got := CircuitBreakerConfig{Enabled: true, OpenTimeout: -time.Second}.withDefaults()
	want := DefaultCircuitBreakerConfig()
	if got != want {
		t.Fatalf("withDefaults()=%+v want=%+v", got, want)
	}
}
