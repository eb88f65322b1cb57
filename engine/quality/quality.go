// Package quality scores vehicle condition: five mechanical components, an
// optional image-based visual score, a market-impact estimate, and an
// independent risk profile, blended into one graded quality score.
package quality

import (
	"context"
	"log/slog"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
	"github.com/TruckScoutAI/truckscout-engine/pkg/llm"
)

// ComponentScores are the five mechanical sub-scores, each in [0,1].
type ComponentScores struct {
	Engine       float64 `json:"engine"`
	Transmission float64 `json:"transmission"`
	Brakes       float64 `json:"brakes"`
	Suspension   float64 `json:"suspension"`
	Electrical   float64 `json:"electrical"`
}

// Mean returns the unweighted mean of the five components.
func (c ComponentScores) Mean() float64 {
	return (c.Engine + c.Transmission + c.Brakes + c.Suspension + c.Electrical) / 5
}

// VisualResult is the image-derived condition estimate.
type VisualResult struct {
	Score      float64  `json:"score"`
	Confidence float64  `json:"confidence"`
	Issues     []string `json:"issues,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
}

// RiskEntry is one structured finding in the risk profile.
type RiskEntry struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"` // low, medium, high
	Description string `json:"description"`
	Mitigation  string `json:"mitigation"`
}

// RiskProfile accumulates risk findings and an overall score.
type RiskProfile struct {
	Entries      []RiskEntry `json:"entries"`
	OverallScore float64     `json:"overall_score"` // [0,1]
	Level        string      `json:"level"`         // low, medium, high
}

// QualityAssessment is the full scorer output.
type QualityAssessment struct {
	OverallScore    float64         `json:"overall_score"`
	Grade           domain.Grade    `json:"grade"`
	Visual          VisualResult    `json:"visual"`
	Mechanical      ComponentScores `json:"mechanical"`
	MechanicalScore float64         `json:"mechanical_score"`
	MarketScore     float64         `json:"market_score"`
	Risk            RiskProfile     `json:"risk"`
	Recommendations []string        `json:"recommendations"`
}

// Config holds the scorer's tunable tables.
type Config struct {
	// Blend weights over visual/mechanical/market/(1-risk), summing to 1.
	VisualWeight, MechanicalWeight, MarketWeight, RiskWeight float64
	// HigherMaintenanceBrands raise the risk score when matched.
	HigherMaintenanceBrands []string
	// Risk increments.
	RiskBase, RiskHighMileage, RiskOldAge, RiskSparseHistory, RiskBrand float64
	HighMileageKM                                                      int
	OldAgeYears                                                        int
	MinMaintenanceRecords                                              int
}

// DefaultConfig returns the hand-tuned defaults.
func DefaultConfig() Config {
	return Config{
		VisualWeight:            0.3,
		MechanicalWeight:        0.4,
		MarketWeight:            0.2,
		RiskWeight:              0.1,
		HigherMaintenanceBrands: []string{"Iveco", "Renault Trucks"},
		RiskBase:                0.3,
		RiskHighMileage:         0.2,
		RiskOldAge:              0.15,
		RiskSparseHistory:       0.25,
		RiskBrand:               0.1,
		HighMileageKM:           600000,
		OldAgeYears:             12,
		MinMaintenanceRecords:   3,
	}
}

// Assessor runs quality assessment. The completion client is optional and
// only used for image analysis.
type Assessor struct {
	cfg    Config
	llm    *llm.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewAssessor creates an Assessor.
func NewAssessor(cfg Config, client *llm.Client, logger *slog.Logger) *Assessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assessor{cfg: cfg, llm: client, logger: logger, now: time.Now}
}

// Assess scores the vehicle. Images and maintenance history are optional;
// their absence lowers confidence rather than failing.
func (a *Assessor) Assess(ctx context.Context, v domain.VehicleFeatures, images []string, history []domain.MaintenanceRecord) (*QualityAssessment, error) {
	if err := v.Validate(a.now()); err != nil {
		return nil, err
	}
	now := a.now()

	visual := a.assessVisual(ctx, v, images)
	mechanical := scoreMechanical(v, history, now)
	market := marketImpactScore(v)
	risk := a.assessRisk(v, history, now)

	overall := clamp01(
		a.cfg.VisualWeight*visual.Score +
			a.cfg.MechanicalWeight*mechanical.Mean() +
			a.cfg.MarketWeight*market +
			a.cfg.RiskWeight*(1-risk.OverallScore))

	return &QualityAssessment{
		OverallScore:    overall,
		Grade:           domain.GradeForScore(overall),
		Visual:          visual,
		Mechanical:      mechanical,
		MechanicalScore: mechanical.Mean(),
		MarketScore:     market,
		Risk:            risk,
		Recommendations: a.recommendations(v, mechanical, risk, history),
	}, nil
}

// marketImpactScore estimates how the market perceives this configuration.
func marketImpactScore(v domain.VehicleFeatures) float64 {
	score := 0.6
	if domain.IsPremiumBrand(v.Brand) {
		score += 0.15
	}
	if v.EuroStandard == "Euro 6" {
		score += 0.1
	}
	if v.Category == domain.CategoryTractorUnit {
		score += 0.05
	}
	return clamp01(score)
}

func (a *Assessor) recommendations(v domain.VehicleFeatures, m ComponentScores, risk RiskProfile, history []domain.MaintenanceRecord) []string {
	var recs []string
	if len(history) < a.cfg.MinMaintenanceRecords {
		recs = append(recs, "Request the full service history before committing.")
	}
	if m.Engine < 0.5 {
		recs = append(recs, "Commission an independent engine inspection.")
	}
	if m.Transmission < 0.5 {
		recs = append(recs, "Have the gearbox checked for wear under load.")
	}
	if risk.Level == "high" {
		recs = append(recs, "Overall risk is high; budget a contingency for early repairs.")
	}
	if v.MileageKM > a.cfg.HighMileageKM {
		recs = append(recs, "Verify the odometer reading against inspection records.")
	}
	if len(recs) == 0 {
		recs = append(recs, "No major concerns found; a standard pre-purchase inspection is sufficient.")
	}
	return recs
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
