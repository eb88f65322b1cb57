package nlp

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const classifySystemPrompt = `You classify truck-marketplace user queries.
Reply with JSON only: {"intent": "<one of search_vehicles, price_estimation,
compare_vehicles, quality_assessment, get_recommendations, market_insights,
feature_search, general>", "confidence": <0..1>}.`

const classifyTimeout = 5 * time.Second

type classifyReply struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// classifyWithLLM asks the completion service to classify a high-complexity
// query. ok is false on any transport or parse failure, or when the reply
// names an intent outside the closed set; the caller keeps the keyword result.
func (a *Analyzer) classifyWithLLM(ctx context.Context, text string, convCtx Context) (Intent, float64, bool) {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Query: %q", text)
	if convCtx.PreviousIntent != "" {
		prompt += fmt.Sprintf("\nPrevious intent in this conversation: %s", convCtx.PreviousIntent)
	}

	var reply classifyReply
	if err := a.llm.CompleteJSON(ctx, classifySystemPrompt, prompt, &reply); err != nil {
		a.logger.Warn("llm classification failed, keeping keyword result", "err", err)
		return "", 0, false
	}

	intent := Intent(strings.TrimSpace(strings.ToLower(reply.Intent)))
	valid := false
	for _, known := range Intents {
		if intent == known {
			valid = true
			break
		}
	}
	if !valid || reply.Confidence <= 0 || reply.Confidence > 1 {
		a.logger.Warn("llm classification unparsable, keeping keyword result",
			"intent", reply.Intent, "confidence", reply.Confidence)
		return "", 0, false
	}
	return intent, reply.Confidence, true
}
