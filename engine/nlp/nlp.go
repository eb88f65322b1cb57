// Package nlp turns free-text marketplace queries into structured intent,
// entities, sentiment, and complexity. Classification is keyword-driven and
// deterministic; an optional completion-service path handles high-complexity
// queries, with the keyword classifier authoritative whenever the service is
// unavailable or returns unparsable output.
package nlp

import (
	"context"
	"log/slog"
	"strings"

	"github.com/TruckScoutAI/truckscout-engine/pkg/llm"
)

// Intent is the closed-set classification of what a query asks for.
type Intent string

const (
	IntentSearchVehicles     Intent = "search_vehicles"
	IntentPriceEstimation    Intent = "price_estimation"
	IntentCompareVehicles    Intent = "compare_vehicles"
	IntentQualityAssessment  Intent = "quality_assessment"
	IntentGetRecommendations Intent = "get_recommendations"
	IntentMarketInsights     Intent = "market_insights"
	IntentFeatureSearch      Intent = "feature_search"
	IntentGeneral            Intent = "general"
)

// Intents lists every intent in classifier table order.
var Intents = []Intent{
	IntentSearchVehicles, IntentPriceEstimation, IntentCompareVehicles,
	IntentQualityAssessment, IntentGetRecommendations, IntentMarketInsights,
	IntentFeatureSearch, IntentGeneral,
}

// Sentiment is a bag-of-words polarity result.
type Sentiment struct {
	Label string  `json:"label"` // positive, negative, neutral
	Score float64 `json:"score"` // normalized to [-1, 1]
}

// Complexity describes how involved a query is.
type Complexity struct {
	WordCount      int     `json:"word_count"`
	MultiCondition bool    `json:"multi_condition"`
	Comparison     bool    `json:"comparison"`
	Negation       bool    `json:"negation"`
	Uncertainty    bool    `json:"uncertainty"`
	Score          float64 `json:"score"` // [0, 1]
	Level          string  `json:"level"` // low, medium, high
}

// NLPResult is the immutable per-query understanding output.
type NLPResult struct {
	Intent     Intent     `json:"intent"`
	Confidence float64    `json:"confidence"`
	Entities   Entities   `json:"entities"`
	Sentiment  Sentiment  `json:"sentiment"`
	Complexity Complexity `json:"complexity"`
}

// Context carries conversational state into understanding. All fields are
// optional hints; understanding never fails because of them.
type Context struct {
	PreviousIntent  Intent   `json:"previous_intent,omitempty"`
	PreferredBrands []string `json:"preferred_brands,omitempty"`
}

// Analyzer runs query understanding. The completion client is optional.
type Analyzer struct {
	llm    *llm.Client
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer. Pass a nil client to run fully offline.
func NewAnalyzer(client *llm.Client, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{llm: client, logger: logger}
}

// defaultResult is the degraded best-effort output used when extraction
// cannot say anything useful.
func defaultResult() NLPResult {
	return NLPResult{
		Intent:     IntentGeneral,
		Confidence: 0.5,
		Sentiment:  Sentiment{Label: "neutral"},
		Complexity: Complexity{Score: 0.3, Level: "low"},
	}
}

// Understand analyzes text into an NLPResult. It never returns an error:
// empty or unintelligible input degrades to a general-intent default.
func (a *Analyzer) Understand(ctx context.Context, text string, convCtx Context) NLPResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return defaultResult()
	}

	complexity := scoreComplexity(text)
	result := NLPResult{
		Entities:   extractEntities(text),
		Sentiment:  scoreSentiment(text),
		Complexity: complexity,
	}
	result.Intent, result.Confidence = classifyKeywords(text)

	// A query that names a brand or year without any trigger phrase is a
	// vehicle search, just a tersely phrased one.
	if result.Intent == IntentGeneral && (len(result.Entities.Brands) > 0 || len(result.Entities.Years) > 0) {
		result.Intent = IntentSearchVehicles
		result.Confidence = 0.4
	}

	// High-complexity queries get a second opinion from the completion
	// service; the keyword result stands on any failure or nonsense reply.
	if complexity.Level == "high" && a.llm.Enabled() {
		if intent, conf, ok := a.classifyWithLLM(ctx, text, convCtx); ok {
			result.Intent = intent
			result.Confidence = conf
		}
	}

	return result
}
