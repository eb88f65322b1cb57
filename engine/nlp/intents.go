package nlp

import "strings"

// intentTriggers binds an intent to its trigger phrases. Declaration order
// breaks score ties, so more specific intents come first.
type intentTriggers struct {
	intent  Intent
	phrases []string
}

// Weight constants for the keyword classifier: a literal phrase hit counts
// double a stemmed token overlap.
const (
	phraseWeight = 2
	tokenWeight  = 1
)

var intentTable = []intentTriggers{
	{IntentPriceEstimation, []string{
		"how much is", "how much does", "price estimate", "estimate the price",
		"what is it worth", "worth", "value", "valuation", "price for", "cost of",
	}},
	{IntentCompareVehicles, []string{
		"compare", "versus", "vs", "difference between", "which is better",
		"better than", "side by side",
	}},
	{IntentQualityAssessment, []string{
		"quality", "condition check", "inspect", "assessment", "reliable",
		"reliability", "is it in good condition", "how good is", "wear",
	}},
	{IntentGetRecommendations, []string{
		"recommend", "recommendation", "suggest", "what should i buy",
		"best truck for", "which truck", "advice",
	}},
	{IntentMarketInsights, []string{
		"market", "trend", "trends", "demand", "average price", "statistics",
		"insights", "how is the market",
	}},
	{IntentFeatureSearch, []string{
		"with retarder", "with adaptive cruise", "with air conditioning",
		"equipped with", "features", "has a", "including",
	}},
	{IntentSearchVehicles, []string{
		"find", "search", "show me", "looking for", "i need a", "i want a",
		"available", "for sale", "listings", "do you have",
	}},
}

// classifyKeywords scores every intent against the text and returns the
// winner with confidence min(score/5, 1). No hit at all falls back to the
// general intent at the degraded default confidence.
func classifyKeywords(text string) (Intent, float64) {
	lower := strings.ToLower(text)
	tokens := stemmedTokens(lower)

	bestIntent := IntentGeneral
	bestScore := 0
	for _, row := range intentTable {
		score := 0
		for _, phrase := range row.phrases {
			if strings.Contains(lower, phrase) {
				score += phraseWeight
			} else {
				for pt := range stemmedTokens(phrase) {
					if tokens[pt] {
						score += tokenWeight
					}
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestIntent = row.intent
		}
	}

	if bestScore == 0 {
		return IntentGeneral, 0.5
	}
	conf := float64(bestScore) / 5
	if conf > 1 {
		conf = 1
	}
	return bestIntent, conf
}

// stopTokens never contribute to token overlap; they appear in trigger
// phrases only as connective tissue.
var stopTokens = map[string]bool{
	"with": true, "for": true, "the": true, "and": true, "you": true,
	"have": true, "what": true, "which": true, "how": true, "much": true,
	"does": true, "should": true, "that": true, "this": true, "from": true,
}

// stemmedTokens lower-cases, strips punctuation, filters stopwords, and
// applies a crude suffix-stripping stem so "searching" overlaps "search".
func stemmedTokens(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		w = strings.Trim(w, "?.,!;:'\"()")
		if stopTokens[w] {
			continue
		}
		w = stem(w)
		if len(w) > 2 && !stopTokens[w] {
			out[w] = true
		}
	}
	return out
}

func stem(w string) string {
	for _, suffix := range []string{"ings", "ing", "ies", "ed", "es", "s"} {
		if strings.HasSuffix(w, suffix) && len(w)-len(suffix) >= 3 {
			return w[:len(w)-len(suffix)]
		}
	}
	return w
}
