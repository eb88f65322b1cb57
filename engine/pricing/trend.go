package pricing

import (
	"fmt"
	"sort"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// TrendDirection is the market direction derived from a price series.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendStable  TrendDirection = "stable"
)

// Trend compares the recent half of the series against the older half, with
// the configured dead band treated as stable. Fewer than four points give a
// stable reading.
func (p *Predictor) Trend(history []PricePoint) TrendDirection {
	if len(history) < 4 {
		return TrendStable
	}
	pts := make([]PricePoint, len(history))
	copy(pts, history)
	sort.Slice(pts, func(i, j int) bool { return pts[i].At.Before(pts[j].At) })

	mid := len(pts) / 2
	older := meanPrice(pts[:mid])
	recent := meanPrice(pts[mid:])
	if older == 0 {
		return TrendStable
	}

	change := (recent - older) / older
	switch {
	case change > p.cfg.TrendDeadBand:
		return TrendRising
	case change < -p.cfg.TrendDeadBand:
		return TrendFalling
	default:
		return TrendStable
	}
}

func meanPrice(pts []PricePoint) float64 {
	if len(pts) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range pts {
		sum += p.Price
	}
	return sum / float64(len(pts))
}

// recommendations produces the rule-based advice list: asking-price deltas
// beyond +-10% of the estimate and a timing hint from the market trend.
func (p *Predictor) recommendations(v domain.VehicleFeatures, estimate float64, history []PricePoint) []string {
	var recs []string

	if v.Price > 0 {
		switch {
		case estimate > v.Price*1.1:
			recs = append(recs, fmt.Sprintf(
				"The market estimate (%.0f) is above your asking price; consider raising it.", estimate))
		case estimate < v.Price*0.9:
			recs = append(recs, fmt.Sprintf(
				"The market estimate (%.0f) is below your asking price; consider lowering it to sell faster.", estimate))
		default:
			recs = append(recs, "Your asking price is in line with the market estimate.")
		}
	}

	switch p.Trend(history) {
	case TrendRising:
		recs = append(recs, "Prices in this segment are trending up; waiting may improve your sale price.")
	case TrendFalling:
		recs = append(recs, "Prices in this segment are softening; selling sooner is likely to net more.")
	default:
		if len(history) >= 4 {
			recs = append(recs, "The market for this segment is stable; timing is not critical.")
		}
	}

	if v.MileageKM > 700000 && v.Condition != domain.ConditionPoor {
		recs = append(recs, "Documented maintenance history will help justify the price at this mileage.")
	}

	return recs
}
