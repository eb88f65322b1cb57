// Package llm is the client for the external text-completion collaborator.
// It speaks an Ollama-compatible HTTP API and treats the service as
// unreliable: every call has a bounded timeout, runs through a circuit
// breaker and rate limiter, and callers are expected to parse output
// defensively and fall back to heuristics on any failure.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/pkg/resilience"
	"golang.org/x/time/rate"
)

// ErrDisabled is returned when the client has no base URL configured.
var ErrDisabled = errors.New("llm: client disabled")

// Options configures the completion client.
type Options struct {
	BaseURL     string
	ChatModel   string
	EmbedModel  string
	Timeout     time.Duration
	Temperature float64
	// RatePerSec bounds outbound calls; zero means no limit.
	RatePerSec float64
	Burst      int
}

// DefaultOptions returns sensible defaults. BaseURL stays empty so the
// client is disabled unless explicitly configured.
func DefaultOptions() Options {
	return Options{
		ChatModel:   "llama3.1:8b",
		EmbedModel:  "nomic-embed-text",
		Timeout:     10 * time.Second,
		Temperature: 0.3,
		RatePerSec:  5,
		Burst:       10,
	}
}

// Client calls the completion service.
type Client struct {
	opts    Options
	http    *http.Client
	breaker *resilience.Breaker
	limiter *rate.Limiter
}

// New creates a completion client. A zero BaseURL yields a disabled client
// whose calls fail fast with ErrDisabled.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	var lim *rate.Limiter
	if opts.RatePerSec > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(opts.RatePerSec), burst)
	}
	return &Client{
		opts:    opts,
		http:    &http.Client{Timeout: opts.Timeout},
		breaker: resilience.NewBreaker(resilience.DefaultBreakerOpts),
		limiter: lim,
	}
}

// Enabled reports whether the client has a configured endpoint.
func (c *Client) Enabled() bool { return c != nil && c.opts.BaseURL != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Complete sends a single-turn prompt and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("llm: rate wait: %w", err)
		}
	}

	var out string
	err := c.breaker.Call(ctx, func(ctx context.Context) error {
		msgs := []chatMessage{}
		if systemPrompt != "" {
			msgs = append(msgs, chatMessage{Role: "system", Content: systemPrompt})
		}
		msgs = append(msgs, chatMessage{Role: "user", Content: prompt})

		body, _ := json.Marshal(chatRequest{
			Model:    c.opts.ChatModel,
			Messages: msgs,
			Stream:   false,
			Options:  map[string]any{"temperature": c.opts.Temperature},
		})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/api/chat", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("llm: chat: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("llm: chat: status %d", resp.StatusCode)
		}

		var cr chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
			return fmt.Errorf("llm: chat decode: %w", err)
		}
		out = cr.Message.Content
		return nil
	})
	return out, err
}

// CompleteJSON runs Complete and defensively parses a JSON document out of
// the reply into target.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, prompt string, target any) error {
	text, err := c.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return err
	}
	return ParseJSON(text, target)
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("llm: rate wait: %w", err)
		}
	}

	var vec []float32
	err := c.breaker.Call(ctx, func(ctx context.Context) error {
		body, _ := json.Marshal(embedRequest{Model: c.opts.EmbedModel, Prompt: text})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/api/embeddings", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("llm: embed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("llm: embed: status %d", resp.StatusCode)
		}

		var er embedResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return fmt.Errorf("llm: embed decode: %w", err)
		}
		vec = make([]float32, len(er.Embedding))
		for i, v := range er.Embedding {
			vec[i] = float32(v)
		}
		return nil
	})
	return vec, err
}
