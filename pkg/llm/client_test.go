package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TruckScoutAI/truckscout-engine/pkg/resilience"
)

func fakeOllama(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat":
			var req chatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("bad chat request: %v", err)
			}
			if len(req.Messages) == 0 || req.Messages[len(req.Messages)-1].Role != "user" {
				t.Errorf("last message should be the user prompt: %+v", req.Messages)
			}
			var resp chatResponse
			resp.Message.Content = reply
			json.NewEncoder(w).Encode(resp)
		case "/api/embeddings":
			json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}})
		default:
			http.NotFound(w, r)
		}
	}))
}

func testClient(baseURL string) *Client {
	opts := DefaultOptions()
	opts.BaseURL = baseURL
	opts.RatePerSec = 0
	return New(opts)
}

func TestComplete(t *testing.T) {
	srv := fakeOllama(t, "a fine answer")
	defer srv.Close()

	got, err := testClient(srv.URL).Complete(context.Background(), "system", "prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "a fine answer" {
		t.Fatalf("Complete = %q", got)
	}
}

func TestCompleteJSON(t *testing.T) {
	srv := fakeOllama(t, "```json\n{\"intent\":\"general\",\"confidence\":0.5}\n```")
	defer srv.Close()

	var out classifyOut
	if err := testClient(srv.URL).CompleteJSON(context.Background(), "", "classify", &out); err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if out.Intent != "general" || out.Confidence != 0.5 {
		t.Fatalf("CompleteJSON = %+v", out)
	}
}

func TestEmbed(t *testing.T) {
	srv := fakeOllama(t, "")
	defer srv.Close()

	vec, err := testClient(srv.URL).Embed(context.Background(), "truck with retarder")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.1 {
		t.Fatalf("Embed = %v", vec)
	}
}

func TestCompleteDisabled(t *testing.T) {
	c := New(DefaultOptions())
	if _, err := c.Complete(context.Background(), "", "prompt"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("err = %v, want ErrDisabled", err)
	}
	if _, err := c.Embed(context.Background(), "text"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("err = %v, want ErrDisabled", err)
	}
}

func TestBreakerTripsOnRepeatedServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	for i := 0; i < resilience.DefaultBreakerOpts.FailThreshold; i++ {
		if _, err := c.Complete(context.Background(), "", "p"); err == nil {
			t.Fatalf("call %d should fail", i)
		}
	}
	if _, err := c.Complete(context.Background(), "", "p"); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen after %d failures",
			err, resilience.DefaultBreakerOpts.FailThreshold)
	}
}
