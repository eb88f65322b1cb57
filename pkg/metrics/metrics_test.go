package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCounter(t *testing.T) {
	r := New()
	c := r.Counter("requests_total", "Total requests.")
	c.Inc()
	c.Add(4)
	if got := c.Value(); got != 5 {
		t.Fatalf("counter = %d, want 5", got)
	}
	if again := r.Counter("requests_total", "Total requests."); again != c {
		t.Fatal("same name returned a different counter")
	}
}

func TestGauge(t *testing.T) {
	r := New()
	g := r.Gauge("sessions", "Live sessions.")
	g.Set(10)
	g.Inc()
	g.Dec()
	if got := g.Value(); got != 10 {
		t.Fatalf("gauge = %d, want 10", got)
	}
}

func TestHistogram(t *testing.T) {
	r := New()
	h := r.Histogram("latency_seconds", "Request latency.", []float64{0.1, 1})
	h.Observe(0.05)
	h.Observe(0.5)
	h.Observe(5)

	out := r.Render()
	for _, want := range []string{
		`latency_seconds_bucket{le="0.1"} 1`,
		`latency_seconds_bucket{le="1"} 2`,
		`latency_seconds_bucket{le="+Inf"} 3`,
		"latency_seconds_count 3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}

func TestHistogramSince(t *testing.T) {
	r := New()
	h := r.Histogram("elapsed_seconds", "", nil)
	h.Since(time.Now().Add(-10 * time.Millisecond))
	if !strings.Contains(r.Render(), "elapsed_seconds_count 1") {
		t.Fatal("Since did not record an observation")
	}
}

func TestWithLabels(t *testing.T) {
	if got := WithLabels("turns_total", "intent", "search_vehicles"); got != `turns_total{intent="search_vehicles"}` {
		t.Fatalf("WithLabels = %q", got)
	}
	if got := WithLabels("plain"); got != "plain" {
		t.Fatalf("WithLabels without pairs = %q", got)
	}
	if got := WithLabels("odd", "dangling"); got != "odd" {
		t.Fatalf("WithLabels with odd pair count = %q", got)
	}
}

func TestRenderLabeledSeries(t *testing.T) {
	r := New()
	r.Counter(WithLabels("turns_total", "intent", "general"), "Turns.").Inc()
	r.Counter(WithLabels("turns_total", "intent", "search_vehicles"), "Turns.").Add(2)

	out := r.Render()
	if strings.Count(out, "# TYPE turns_total counter") != 1 {
		t.Fatalf("TYPE line should appear once:\n%s", out)
	}
	for _, want := range []string{
		`turns_total{intent="general"} 1`,
		`turns_total{intent="search_vehicles"} 2`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}

func TestHandler(t *testing.T) {
	r := New()
	r.Counter("ok_total", "").Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "ok_total 1") {
		t.Fatalf("body missing counter:\n%s", rec.Body.String())
	}
}
