// Package convo is the conversational dispatcher: it routes an understood
// query to the matching intelligence component, keeps bounded per-session
// state, and assembles the structured reply. Every collaborator beyond the
// understander and the listing store is optional; a missing one degrades
// the affected intents to a simpler answer instead of failing the turn.
package convo

import (
	"context"
	"log/slog"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
	"github.com/TruckScoutAI/truckscout-engine/engine/listing"
	"github.com/TruckScoutAI/truckscout-engine/engine/market"
	"github.com/TruckScoutAI/truckscout-engine/engine/nlp"
	"github.com/TruckScoutAI/truckscout-engine/engine/pricing"
	"github.com/TruckScoutAI/truckscout-engine/engine/quality"
	"github.com/TruckScoutAI/truckscout-engine/engine/semantic"
	"github.com/TruckScoutAI/truckscout-engine/pkg/metrics"
)

// Reply is one assembled conversational answer.
type Reply struct {
	Message     string         `json:"message"`
	Intent      nlp.Intent     `json:"intent"`
	Confidence  float64        `json:"confidence"`
	Suggestions []string       `json:"suggestions,omitempty"`
	Actions     []Action       `json:"actions,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Action is a machine-readable follow-up a client can render as a button.
type Action struct {
	Type    string         `json:"type"`
	Label   string         `json:"label"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Understander turns free text into a structured query understanding.
type Understander interface {
	Understand(ctx context.Context, text string, convCtx nlp.Context) nlp.NLPResult
}

// Pricer estimates a vehicle's market price.
type Pricer interface {
	Predict(ctx context.Context, v domain.VehicleFeatures, history []pricing.PricePoint) (*pricing.PricePrediction, error)
}

// QualityScorer grades a vehicle's condition and risk.
type QualityScorer interface {
	Assess(ctx context.Context, v domain.VehicleFeatures, images []string, history []domain.MaintenanceRecord) (*quality.QualityAssessment, error)
}

// SemanticSearcher retrieves listings by embedding similarity.
type SemanticSearcher interface {
	Search(ctx context.Context, embedding []float32, topK int, brand string) ([]semantic.SearchResult, error)
}

// Embedder produces query embeddings for semantic retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Enabled() bool
}

// Phraser rewrites templated replies into natural language.
type Phraser interface {
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
	Enabled() bool
}

// MarketGraph enriches insight replies from the brand graph.
type MarketGraph interface {
	RelatedBrands(ctx context.Context, brand string) ([]market.Brand, error)
	SegmentStats(ctx context.Context, brand string) ([]market.SegmentStat, error)
}

// TurnPublisher emits one event per completed turn.
type TurnPublisher interface {
	PublishTurn(ctx context.Context, ev TurnEvent) error
}

// Deps bundles the dispatcher's collaborators. Understander and Listings
// are required; everything else may be nil.
type Deps struct {
	Understander Understander
	Listings     listing.Store
	Pricer       Pricer
	Quality      QualityScorer
	Semantic     SemanticSearcher
	Embedder     Embedder
	Phraser      Phraser
	Market       MarketGraph
	Events       TurnPublisher
	Metrics      *metrics.Registry
}

// Options are the dispatcher's tunables.
type Options struct {
	TopN          int           // listings returned per reply
	SessionLimit  int           // live sessions before LRU eviction
	PhraseTimeout time.Duration // budget for reply rephrasing
	EventTimeout  time.Duration // budget for turn-event publishing
}

// DefaultOptions returns production defaults.
func DefaultOptions() Options {
	return Options{
		TopN:          5,
		SessionLimit:  1000,
		PhraseTimeout: 8 * time.Second,
		EventTimeout:  2 * time.Second,
	}
}

// Dispatcher routes understood queries to intent handlers.
type Dispatcher struct {
	opts     Options
	deps     Deps
	sessions *SessionStore
	logger   *slog.Logger
	now      func() time.Time

	latency *metrics.Histogram
}

// NewDispatcher wires a Dispatcher from its collaborators.
func NewDispatcher(deps Deps, opts Options, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultOptions().TopN
	}
	if opts.PhraseTimeout <= 0 {
		opts.PhraseTimeout = DefaultOptions().PhraseTimeout
	}
	if opts.EventTimeout <= 0 {
		opts.EventTimeout = DefaultOptions().EventTimeout
	}
	d := &Dispatcher{
		opts:     opts,
		deps:     deps,
		sessions: NewSessionStore(opts.SessionLimit),
		logger:   logger,
		now:      time.Now,
	}
	if deps.Metrics != nil {
		d.latency = deps.Metrics.Histogram("convo_turn_seconds",
			"End-to-end conversational turn latency.", nil)
	}
	return d
}

// Sessions exposes the session store, mainly for health reporting.
func (d *Dispatcher) Sessions() *SessionStore { return d.sessions }

// Respond runs one conversational turn: understand, record history, route
// to the intent handler, fold entities into the preference projection, and
// assemble the reply. Turns for the same session are serialized; turns for
// different sessions run concurrently.
func (d *Dispatcher) Respond(ctx context.Context, sessionID, text string) (*Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sessionID == "" {
		sessionID = "anonymous"
	}
	start := d.now()

	sess := d.sessions.acquire(sessionID, start)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	convCtx := nlp.Context{PreferredBrands: sess.Prefs.Brands}
	if n := len(sess.History); n > 0 {
		convCtx.PreviousIntent = sess.History[n-1].Result.Intent
	}
	result := d.deps.Understander.Understand(ctx, text, convCtx)
	sess.append(Turn{Message: text, Result: result, At: start})

	reply := d.dispatch(ctx, sess, text, result)
	sess.observe(result)

	reply.Intent = result.Intent
	reply.Confidence = result.Confidence
	reply.Timestamp = start
	if reply.Suggestions == nil {
		reply.Suggestions = suggestionsFor(result)
	}
	if len(reply.Actions) == 0 {
		reply.Actions = actionsFor(result)
	}
	d.phrase(ctx, text, result, reply)

	elapsed := d.now().Sub(start)
	d.record(result.Intent, elapsed)
	d.publishTurn(ctx, TurnEvent{
		SessionID:  sessionID,
		Query:      text,
		Intent:     result.Intent,
		Confidence: result.Confidence,
		LatencyMS:  elapsed.Milliseconds(),
		At:         start,
	})

	d.logger.Info("turn handled",
		"session", sessionID,
		"intent", result.Intent,
		"confidence", result.Confidence,
		"elapsed_ms", elapsed.Milliseconds())
	return reply, nil
}

// dispatch routes by intent. The switch is exhaustive over the intent set;
// anything unexpected falls back to the general handler.
func (d *Dispatcher) dispatch(ctx context.Context, sess *Session, text string, r nlp.NLPResult) *Reply {
	switch r.Intent {
	case nlp.IntentSearchVehicles:
		return d.handleSearch(ctx, r)
	case nlp.IntentPriceEstimation:
		return d.handlePrice(ctx, sess, r)
	case nlp.IntentCompareVehicles:
		return d.handleCompare(ctx, r)
	case nlp.IntentQualityAssessment:
		return d.handleQuality(ctx, sess, r)
	case nlp.IntentGetRecommendations:
		return d.handleRecommendations(ctx, sess, r)
	case nlp.IntentMarketInsights:
		return d.handleMarket(ctx, sess, r)
	case nlp.IntentFeatureSearch:
		return d.handleFeatureSearch(ctx, text, r)
	case nlp.IntentGeneral:
		return d.handleGeneral(sess)
	default:
		d.logger.Warn("unknown intent, treating as general", "intent", r.Intent)
		return d.handleGeneral(sess)
	}
}

func (d *Dispatcher) record(intent nlp.Intent, elapsed time.Duration) {
	if d.deps.Metrics == nil {
		return
	}
	d.deps.Metrics.Counter(
		metrics.WithLabels("convo_turns_total", "intent", string(intent)),
		"Conversational turns by classified intent.").Inc()
	d.latency.Observe(elapsed.Seconds())
}

// publishTurn emits the turn event without blocking the reply. The event
// carries its own timeout because the request context is about to die.
func (d *Dispatcher) publishTurn(ctx context.Context, ev TurnEvent) {
	if d.deps.Events == nil {
		return
	}
	go func() {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.opts.EventTimeout)
		defer cancel()
		if err := d.deps.Events.PublishTurn(pctx, ev); err != nil {
			d.logger.Warn("turn event publish failed", "error", err)
		}
	}()
}
