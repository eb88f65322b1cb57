package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func testBreaker(threshold int, timeout time.Duration) (*Breaker, *time.Time) {
	b := NewBreaker(BreakerOpts{FailThreshold: threshold, Timeout: timeout, HalfOpenMax: 1})
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func fail(context.Context) error { return errBoom }
func ok(context.Context) error   { return nil }

func TestBreakerTripsAfterThreshold(t *testing.T) {
	b, _ := testBreaker(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := b.Call(ctx, fail); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if b.State() != StateOpen {
		t.Fatalf("state = %s, want open", b.State())
	}
	if err := b.Call(ctx, ok); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("open breaker let a call through: %v", err)
	}
}

func TestBreakerSuccessResetsCount(t *testing.T) {
	b, _ := testBreaker(3, time.Minute)
	ctx := context.Background()

	b.Call(ctx, fail)
	b.Call(ctx, fail)
	b.Call(ctx, ok) // resets the streak
	b.Call(ctx, fail)
	b.Call(ctx, fail)

	if b.State() != StateClosed {
		t.Fatalf("state = %s, want closed after a reset mid-streak", b.State())
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	b, now := testBreaker(1, time.Minute)
	ctx := context.Background()

	b.Call(ctx, fail)
	if b.State() != StateOpen {
		t.Fatalf("state = %s, want open", b.State())
	}

	*now = now.Add(2 * time.Minute)
	if b.State() != StateHalfOpen {
		t.Fatalf("state = %s, want half-open after the timeout", b.State())
	}
	if err := b.Call(ctx, ok); err != nil {
		t.Fatalf("probe call failed: %v", err)
	}
	if b.State() != StateClosed {
		t.Fatalf("state = %s, want closed after a successful probe", b.State())
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b, now := testBreaker(1, time.Minute)
	ctx := context.Background()

	b.Call(ctx, fail)
	*now = now.Add(2 * time.Minute)

	if err := b.Call(ctx, fail); !errors.Is(err, errBoom) {
		t.Fatalf("probe err = %v", err)
	}
	if b.State() != StateOpen {
		t.Fatalf("state = %s, want open after a failed probe", b.State())
	}
}

func TestBreakerHalfOpenLimitsProbes(t *testing.T) {
	b, now := testBreaker(1, time.Minute)
	ctx := context.Background()

	b.Call(ctx, fail)
	*now = now.Add(2 * time.Minute)

	done := make(chan struct{})
	blocked := func(context.Context) error { <-done; return nil }

	go b.Call(ctx, blocked)
	// Give the probe goroutine time to claim the half-open slot.
	time.Sleep(20 * time.Millisecond)

	if err := b.Call(ctx, ok); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("second probe err = %v, want ErrCircuitOpen", err)
	}
	close(done)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateClosed, "closed"},
		{StateOpen, "open"},
		{StateHalfOpen, "half-open"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
