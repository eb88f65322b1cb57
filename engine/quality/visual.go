package quality

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// Defaults used when no images are supplied or the vision path fails.
const (
	defaultVisualScore      = 0.7
	defaultVisualConfidence = 0.3
	visualTimeout           = 15 * time.Second
)

const visionSystemPrompt = `You assess truck exterior and interior photos.
Reply with JSON only:
{"score": <0..1>, "issues": ["..."], "strengths": ["..."]}.`

type visionReply struct {
	Score     float64  `json:"score"`
	Issues    []string `json:"issues"`
	Strengths []string `json:"strengths"`
}

// assessVisual sends the images to the vision-capable completion service and
// parses a score out of its free-text reply. Missing images or any failure
// degrades to the neutral default at reduced confidence.
func (a *Assessor) assessVisual(ctx context.Context, v domain.VehicleFeatures, images []string) VisualResult {
	fallback := VisualResult{Score: defaultVisualScore, Confidence: defaultVisualConfidence}
	if len(images) == 0 || !a.llm.Enabled() {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, visualTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Assess the condition of a %d %s %s from these %d photos:\n%s",
		v.Year, v.Brand, v.Model, len(images), strings.Join(images, "\n"))

	var reply visionReply
	if err := a.llm.CompleteJSON(ctx, visionSystemPrompt, prompt, &reply); err != nil {
		a.logger.Warn("visual assessment failed, using default", "err", err)
		return fallback
	}
	if reply.Score < 0 || reply.Score > 1 {
		a.logger.Warn("visual assessment out of range, using default", "score", reply.Score)
		return fallback
	}

	return VisualResult{
		Score:      reply.Score,
		Confidence: 0.8,
		Issues:     reply.Issues,
		Strengths:  reply.Strengths,
	}
}
