package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// The four sub-models below are pure functions over the feature vector and
// the Config coefficient tables. Each one may fail independently; the
// ensemble excludes failures and renormalizes.

// linearModel is a straight coefficient model: brand base minus linear
// depreciation for age and mileage, plus equipment adders.
func linearModel(cfg Config, v domain.VehicleFeatures, now time.Time) (float64, error) {
	base := cfg.DefaultBase
	if b, ok := cfg.BrandBase[v.Brand]; ok {
		base = b
	}

	price := base
	price -= float64(v.Age(now)) * 4200
	price -= float64(v.MileageKM) * 0.045
	if v.PowerHP > 0 {
		price += float64(v.PowerHP-400) * 35
	}
	if v.EuroStandard == "Euro 6" {
		price += 5500
	}
	if v.Flags.Retarder {
		price += 2000
	}
	if v.Flags.AdaptiveCruise {
		price += 1500
	}

	if price < base*0.1 {
		price = base * 0.1
	}
	return price, nil
}

// treeModel is a shallow hand-built decision tree: age picks a value tier,
// mileage and condition adjust it multiplicatively.
func treeModel(cfg Config, v domain.VehicleFeatures, now time.Time) (float64, error) {
	base := cfg.DefaultBase
	if b, ok := cfg.BrandBase[v.Brand]; ok {
		base = b
	}

	age := v.Age(now)
	var tier float64
	switch {
	case age <= 1:
		tier = 1.00
	case age <= 3:
		tier = 0.82
	case age <= 6:
		tier = 0.62
	case age <= 10:
		tier = 0.42
	case age <= 15:
		tier = 0.26
	default:
		tier = 0.15
	}

	price := base * tier
	switch {
	case v.MileageKM > 900000:
		price *= 0.75
	case v.MileageKM > 600000:
		price *= 0.85
	case v.MileageKM > 300000:
		price *= 0.95
	}
	switch v.Condition {
	case domain.ConditionCertified:
		price *= 1.08
	case domain.ConditionFair:
		price *= 0.88
	case domain.ConditionPoor:
		price *= 0.70
	}
	return price, nil
}

// neuralModel is a tiny fixed-weight feed-forward net over normalized
// features: two tanh hidden units and a scaled linear output. The weights
// and the output scale are untrained placeholders held as data.
var neuralWeights = struct {
	hidden [2][4]float64
	bias   [2]float64
	out    [2]float64
	outBias, scale float64
}{
	hidden: [2][4]float64{
		{0.9, -1.4, 0.5, 0.3},
		{-0.6, 0.8, 1.1, -0.2},
	},
	bias:    [2]float64{0.1, -0.05},
	out:     [2]float64{1.3, 0.7},
	outBias: 0.2,
	scale:   52000,
}

func neuralModel(cfg Config, v domain.VehicleFeatures, now time.Time) (float64, error) {
	if v.MileageKM == 0 && v.PowerHP == 0 {
		return 0, fmt.Errorf("pricing: neural model needs mileage or power input")
	}

	// Normalize inputs to roughly [0,1].
	in := [4]float64{
		1 - math.Min(float64(v.Age(now))/20, 1),
		1 - math.Min(float64(v.MileageKM)/1200000, 1),
		math.Min(float64(v.PowerHP)/700, 1),
		brandSignal(cfg, v.Brand),
	}

	var out float64
	for h := 0; h < 2; h++ {
		sum := neuralWeights.bias[h]
		for i := 0; i < 4; i++ {
			sum += neuralWeights.hidden[h][i] * in[i]
		}
		out += neuralWeights.out[h] * math.Tanh(sum)
	}
	out += neuralWeights.outBias

	price := out * neuralWeights.scale
	if price <= 0 {
		return 0, fmt.Errorf("pricing: neural model produced non-positive output")
	}
	return price, nil
}

// brandSignal maps a brand to its base price relative to the strongest one.
func brandSignal(cfg Config, brand string) float64 {
	base, ok := cfg.BrandBase[brand]
	if !ok {
		base = cfg.DefaultBase
	}
	top := cfg.DefaultBase
	for _, b := range cfg.BrandBase {
		if b > top {
			top = b
		}
	}
	if top == 0 {
		return 0.5
	}
	return base / top
}

// boosterModel starts from a conservative base and applies a sequence of
// additive corrections, gradient-boosting style but with fixed stumps.
func boosterModel(cfg Config, v domain.VehicleFeatures, now time.Time) (float64, error) {
	base := cfg.DefaultBase
	if b, ok := cfg.BrandBase[v.Brand]; ok {
		base = b
	}
	price := base * 0.5

	age := v.Age(now)
	if age <= 3 {
		price += base * 0.35
	} else if age <= 8 {
		price += base * 0.12
	} else {
		price -= base * 0.18
	}

	perYear := v.MileagePerYear(now)
	if perYear > 0 && perYear < 90000 {
		price += base * 0.08
	} else if perYear > 150000 {
		price -= base * 0.10
	}

	if v.EuroStandard == "Euro 6" {
		price += base * 0.05
	}
	if v.Category == domain.CategoryTractorUnit {
		price += base * 0.03
	}
	if v.Flags.SleeperCab {
		price += 1200
	}

	if price < base*0.08 {
		price = base * 0.08
	}
	return price, nil
}
