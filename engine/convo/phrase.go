package convo

import (
	"context"
	"fmt"
	"strings"

	"github.com/TruckScoutAI/truckscout-engine/engine/nlp"
)

const phraseSystemPrompt = `You are the assistant of a European commercial truck marketplace.
Rewrite the draft answer so it reads naturally and conversationally.
Keep every number, price, and vehicle name exactly as given.
Answer in one or two sentences. Return only the rewritten answer, no preamble.`

// phrase optionally rewrites the templated message through the completion
// service. The template is always the fallback: any failure, timeout, or
// suspicious output leaves the reply untouched.
func (d *Dispatcher) phrase(ctx context.Context, query string, r nlp.NLPResult, reply *Reply) {
	if d.deps.Phraser == nil || !d.deps.Phraser.Enabled() || reply.Message == "" {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, d.opts.PhraseTimeout)
	defer cancel()

	prompt := fmt.Sprintf("User asked: %q\nIntent: %s\nDraft answer: %s", query, r.Intent, reply.Message)
	out, err := d.deps.Phraser.Complete(pctx, phraseSystemPrompt, prompt)
	if err != nil {
		d.logger.Debug("reply phrasing skipped", "error", err)
		return
	}
	out = strings.TrimSpace(out)
	if out == "" || len(out) > 4*len(reply.Message)+200 {
		return
	}
	reply.Message = out
}
