package fn

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestResult(t *testing.T) {
	t.Run("ok path", func(t *testing.T) {
		r := Ok(42)
		if !r.IsOk() || r.IsErr() {
			t.Fatal("Ok result reports error")
		}
		v, err := r.Unwrap()
		if v != 42 || err != nil {
			t.Fatalf("Unwrap = (%v, %v)", v, err)
		}
		if got := r.UnwrapOr(7); got != 42 {
			t.Fatalf("UnwrapOr = %v", got)
		}
	})

	t.Run("err path", func(t *testing.T) {
		sentinel := errors.New("nope")
		r := Err[int](sentinel)
		if r.IsOk() {
			t.Fatal("Err result reports ok")
		}
		if _, err := r.Unwrap(); !errors.Is(err, sentinel) {
			t.Fatalf("Unwrap err = %v", err)
		}
		if got := r.UnwrapOr(7); got != 7 {
			t.Fatalf("UnwrapOr = %v, want fallback", got)
		}
	})

	t.Run("map transforms only ok", func(t *testing.T) {
		double := func(n int) int { return n * 2 }
		if v, _ := Ok(3).Map(double).Unwrap(); v != 6 {
			t.Fatalf("mapped value = %v", v)
		}
		if r := Err[int](errors.New("x")).Map(double); r.IsOk() {
			t.Fatal("Map ran on an error result")
		}
	})

	t.Run("FromPair", func(t *testing.T) {
		if r := FromPair(5, nil); !r.IsOk() {
			t.Fatal("FromPair with nil error should be ok")
		}
		if r := FromPair(5, errors.New("x")); r.IsOk() {
			t.Fatal("FromPair with error should not be ok")
		}
	})

	t.Run("Collect stops at first error", func(t *testing.T) {
		sentinel := errors.New("broken")
		r := Collect([]Result[int]{Ok(1), Err[int](sentinel), Ok(3)})
		if _, err := r.Unwrap(); !errors.Is(err, sentinel) {
			t.Fatalf("Collect err = %v", err)
		}
		good := Collect([]Result[int]{Ok(1), Ok(2)})
		if vs, _ := good.Unwrap(); !reflect.DeepEqual(vs, []int{1, 2}) {
			t.Fatalf("Collect = %v", vs)
		}
	})
}

func TestSliceHelpers(t *testing.T) {
	in := []int{3, 1, 3, 2}

	if got := Map(in, func(n int) int { return n * 10 }); !reflect.DeepEqual(got, []int{30, 10, 30, 20}) {
		t.Fatalf("Map = %v", got)
	}
	if got := Filter(in, func(n int) bool { return n > 1 }); !reflect.DeepEqual(got, []int{3, 3, 2}) {
		t.Fatalf("Filter = %v", got)
	}
	if got := Reduce(in, 0, func(acc, n int) int { return acc + n }); got != 9 {
		t.Fatalf("Reduce = %v", got)
	}
	if got := Unique(in); !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Fatalf("Unique = %v", got)
	}
}

func TestParMap(t *testing.T) {
	in := make([]int, 50)
	for i := range in {
		in[i] = i
	}
	got := ParMap(in, 4, func(n int) int { return n * n })

	if len(got) != len(in) {
		t.Fatalf("len = %d", len(got))
	}
	for i, v := range got {
		if v != i*i {
			t.Fatalf("got[%d] = %d, want %d; order not preserved", i, v, i*i)
		}
	}
}

func TestFanOut(t *testing.T) {
	got := FanOut(
		func() int { time.Sleep(10 * time.Millisecond); return 1 },
		func() int { return 2 },
		func() int { return 3 },
	)
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("FanOut = %v, want positional results [1 2 3]", got)
	}
}

func TestRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		r := Retry(context.Background(), RetryOpts{MaxAttempts: 3, InitialWait: time.Millisecond},
			func(context.Context) Result[string] {
				attempts++
				if attempts < 3 {
					return Errf[string]("transient %d", attempts)
				}
				return Ok("done")
			})
		if v, err := r.Unwrap(); err != nil || v != "done" {
			t.Fatalf("Retry = (%v, %v)", v, err)
		}
		if attempts != 3 {
			t.Fatalf("attempts = %d, want 3", attempts)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		attempts := 0
		r := Retry(context.Background(), RetryOpts{MaxAttempts: 2, InitialWait: time.Millisecond},
			func(context.Context) Result[string] {
				attempts++
				return Errf[string]("always")
			})
		if r.IsOk() {
			t.Fatal("expected failure")
		}
		if attempts != 2 {
			t.Fatalf("attempts = %d, want 2", attempts)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		attempts := 0
		Retry(ctx, RetryOpts{MaxAttempts: 5, InitialWait: 50 * time.Millisecond},
			func(context.Context) Result[int] {
				attempts++
				return Errf[int]("fail")
			})
		if attempts > 1 {
			t.Fatalf("attempts = %d, want 1 with a dead context", attempts)
		}
	})
}
