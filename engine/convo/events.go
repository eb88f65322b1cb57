package convo

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/TruckScoutAI/truckscout-engine/engine/nlp"
	"github.com/TruckScoutAI/truckscout-engine/pkg/natsutil"
)

// SubjectTurns is the stream subject for completed conversational turns.
const SubjectTurns = "truckscout.convo.turns"

// TurnEvent is the per-turn analytics record published after each reply.
type TurnEvent struct {
	SessionID  string     `json:"session_id"`
	Query      string     `json:"query"`
	Intent     nlp.Intent `json:"intent"`
	Confidence float64    `json:"confidence"`
	LatencyMS  int64      `json:"latency_ms"`
	At         time.Time  `json:"at"`
}

// NATSPublisher publishes turn events to NATS.
type NATSPublisher struct {
	nc *nats.Conn
}

// NewNATSPublisher wraps an established NATS connection.
func NewNATSPublisher(nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{nc: nc}
}

// PublishTurn sends the event on SubjectTurns.
func (p *NATSPublisher) PublishTurn(ctx context.Context, ev TurnEvent) error {
	return natsutil.Publish(ctx, p.nc, SubjectTurns, ev)
}
