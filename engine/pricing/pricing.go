// Package pricing implements the price prediction ensemble: a set of
// independently computed heuristic sub-models blended with fixed weights.
// The models are hand-coded coefficient tables, not trained systems; every
// weight and scale lives in Config so it can be tuned without code changes.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
	"github.com/TruckScoutAI/truckscout-engine/pkg/fn"
)

// ErrNoEstimate is returned when every sub-model failed; callers can
// distinguish "no price available" from a real zero price.
var ErrNoEstimate = errors.New("pricing: no sub-model produced an estimate")

// Impact tags a price factor.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Factor explains one input's effect on the estimate.
type Factor struct {
	Name        string `json:"name"`
	Impact      Impact `json:"impact"`
	Explanation string `json:"explanation"`
}

// PriceRange is the reported estimate band.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PricePrediction is the ensemble output, derived fresh per request.
type PricePrediction struct {
	PredictedPrice  float64    `json:"predicted_price"`
	PriceRange      PriceRange `json:"price_range"`
	Confidence      float64    `json:"confidence"`
	Factors         []Factor   `json:"factors"`
	Recommendations []string   `json:"recommendations"`
}

// PricePoint is one observation in a historical price series.
type PricePoint struct {
	Price float64   `json:"price"`
	At    time.Time `json:"at"`
}

// modelFn is a pure sub-model over the feature vector.
type modelFn func(cfg Config, v domain.VehicleFeatures, now time.Time) (float64, error)

// SubModel pairs a model function with its fixed ensemble weight and the
// per-model confidence it contributes.
type SubModel struct {
	Name       string
	Weight     float64
	Confidence float64
	fn         modelFn
}

// Config holds every tunable weight, coefficient, and band of the ensemble.
type Config struct {
	// RangeBand spreads the point estimate into price_range.
	RangeLow, RangeHigh float64
	// Confidence blend weights, summing to 1.
	AgreementWeight, CompletenessWeight, StabilityWeight float64
	// TrendDeadBand is the stable zone for recent-vs-older comparison.
	TrendDeadBand float64
	// BrandBase is the reference price for a recent low-mileage vehicle.
	BrandBase map[string]float64
	// DefaultBase is used for brands missing from BrandBase.
	DefaultBase float64
	// Per-category market stability estimates in [0,1].
	CategoryStability map[domain.Category]float64
	DefaultStability  float64
}

// DefaultConfig returns the tuned-by-hand defaults. The magnitudes are
// heuristic placeholders, kept as data so recalibration never touches code.
func DefaultConfig() Config {
	return Config{
		RangeLow:           0.85,
		RangeHigh:          1.15,
		AgreementWeight:    0.5,
		CompletenessWeight: 0.3,
		StabilityWeight:    0.2,
		TrendDeadBand:      0.05,
		BrandBase: map[string]float64{
			"Mercedes-Benz":  95000,
			"Scania":         98000,
			"Volvo":          92000,
			"MAN":            85000,
			"DAF":            80000,
			"Iveco":          70000,
			"Renault Trucks": 72000,
			"Ford Trucks":    65000,
		},
		DefaultBase: 60000,
		CategoryStability: map[domain.Category]float64{
			domain.CategoryTractorUnit:  0.8,
			domain.CategoryBoxTruck:     0.7,
			domain.CategoryTipper:       0.6,
			domain.CategoryRefrigerated: 0.65,
		},
		DefaultStability: 0.6,
	}
}

// Predictor runs the ensemble.
type Predictor struct {
	cfg    Config
	models []SubModel
	logger *slog.Logger
	now    func() time.Time
}

// NewPredictor creates a Predictor with the given config. Model weights are
// normalized so they always sum to 1.
func NewPredictor(cfg Config, logger *slog.Logger) *Predictor {
	if logger == nil {
		logger = slog.Default()
	}
	models := []SubModel{
		{Name: "linear", Weight: 0.30, Confidence: 0.75, fn: linearModel},
		{Name: "tree", Weight: 0.25, Confidence: 0.70, fn: treeModel},
		{Name: "neural", Weight: 0.20, Confidence: 0.60, fn: neuralModel},
		{Name: "booster", Weight: 0.25, Confidence: 0.72, fn: boosterModel},
	}
	normalizeWeights(models)
	return &Predictor{cfg: cfg, models: models, logger: logger, now: time.Now}
}

func normalizeWeights(models []SubModel) {
	total := 0.0
	for _, m := range models {
		total += m.Weight
	}
	if total == 0 {
		return
	}
	for i := range models {
		models[i].Weight /= total
	}
}

// Predict estimates a market price for the vehicle. Brand and year are
// required; everything else is optional and merely lowers confidence.
// History may be nil; when present it feeds the timing recommendation.
func (p *Predictor) Predict(ctx context.Context, v domain.VehicleFeatures, history []PricePoint) (*PricePrediction, error) {
	if v.Brand == "" {
		return nil, domain.NewValidationError("brand", "", domain.ErrMissingBrand)
	}
	if v.Year <= 0 {
		return nil, domain.NewValidationError("year", fmt.Sprintf("%d", v.Year), domain.ErrMissingYear)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := p.now()

	// Sub-models are pure and independent, so they run concurrently;
	// ParMap keeps the results aligned with p.models by index.
	results := fn.ParMap(p.models, 0, func(m SubModel) fn.Result[float64] {
		return fn.FromPair(m.fn(p.cfg, v, now))
	})

	type estimate struct {
		model SubModel
		price float64
	}
	var estimates []estimate
	for i, r := range results {
		m := p.models[i]
		price, err := r.Unwrap()
		if err != nil || price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			p.logger.Warn("sub-model excluded from ensemble", "model", m.Name, "err", err)
			continue
		}
		estimates = append(estimates, estimate{model: m, price: price})
	}

	if len(estimates) == 0 {
		return &PricePrediction{}, ErrNoEstimate
	}

	// Renormalize the weights of the surviving models.
	totalWeight := 0.0
	for _, e := range estimates {
		totalWeight += e.model.Weight
	}
	blended := 0.0
	modelConf := 0.0
	prices := make([]float64, len(estimates))
	for i, e := range estimates {
		w := e.model.Weight / totalWeight
		blended += w * e.price
		modelConf += w * e.model.Confidence
		prices[i] = e.price
	}

	confidence := p.confidence(prices, modelConf, v)
	pred := &PricePrediction{
		PredictedPrice: round2(blended),
		PriceRange: PriceRange{
			Min: round2(blended * p.cfg.RangeLow),
			Max: round2(blended * p.cfg.RangeHigh),
		},
		Confidence:      confidence,
		Factors:         ExplainFactors(v, now),
		Recommendations: p.recommendations(v, blended, history),
	}
	return pred, nil
}

// confidence blends inter-model agreement, input completeness, and market
// stability, then scales by the surviving models' own confidence.
func (p *Predictor) confidence(prices []float64, modelConf float64, v domain.VehicleFeatures) float64 {
	agreement := agreementScore(prices)
	completeness := completenessScore(v)
	stability := p.cfg.DefaultStability
	if s, ok := p.cfg.CategoryStability[v.Category]; ok {
		stability = s
	}

	blend := p.cfg.AgreementWeight*agreement +
		p.cfg.CompletenessWeight*completeness +
		p.cfg.StabilityWeight*stability
	return clamp01(blend * modelConf / 0.75) // normalized so full-strength models reach the blend value
}

// agreementScore is 1 - stddev/mean over the sub-model prices, clamped to [0,1].
func agreementScore(prices []float64) float64 {
	if len(prices) < 2 {
		return 0.5
	}
	mean := 0.0
	for _, p := range prices {
		mean += p
	}
	mean /= float64(len(prices))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, p := range prices {
		d := p - mean
		variance += d * d
	}
	variance /= float64(len(prices))
	return clamp01(1 - math.Sqrt(variance)/mean)
}

// completenessScore is the fraction of optional fields supplied.
func completenessScore(v domain.VehicleFeatures) float64 {
	present := 0
	total := 7
	if v.MileageKM > 0 {
		present++
	}
	if v.Category != "" {
		present++
	}
	if v.Condition != "" {
		present++
	}
	if v.FuelType != "" {
		present++
	}
	if v.Transmission != "" {
		present++
	}
	if v.EuroStandard != "" {
		present++
	}
	if v.PowerHP > 0 {
		present++
	}
	return float64(present) / float64(total)
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

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
