package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func testPredictor(t *testing.T) *Predictor {
	t.Helper()
	p := NewPredictor(DefaultConfig(), slog.Default())
	p.now = func() time.Time { return testNow }
	return p
}

func testVehicle() domain.VehicleFeatures {
	return domain.VehicleFeatures{
		Brand:        "Mercedes-Benz",
		Model:        "Actros 1845",
		Year:         2020,
		MileageKM:    350000,
		Category:     domain.CategoryTractorUnit,
		Condition:    domain.ConditionUsed,
		FuelType:     domain.FuelDiesel,
		Transmission: domain.TransmissionAutomatic,
		EuroStandard: "Euro 6",
		PowerHP:      450,
	}
}

func TestPredict(t *testing.T) {
	p := testPredictor(t)
	pred, err := p.Predict(context.Background(), testVehicle(), nil)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if pred.PredictedPrice <= 0 {
		t.Fatalf("predicted price = %v, want > 0", pred.PredictedPrice)
	}
	if !(pred.PriceRange.Min < pred.PredictedPrice && pred.PredictedPrice < pred.PriceRange.Max) {
		t.Fatalf("range [%v, %v] does not bracket %v",
			pred.PriceRange.Min, pred.PriceRange.Max, pred.PredictedPrice)
	}
	if pred.Confidence < 0 || pred.Confidence > 1 {
		t.Fatalf("confidence = %v, want in [0,1]", pred.Confidence)
	}
	if len(pred.Factors) == 0 {
		t.Fatal("expected explanatory factors")
	}

	wantMin := round2(pred.PredictedPrice * 0.85)
	wantMax := round2(pred.PredictedPrice * 1.15)
	if math.Abs(pred.PriceRange.Min-wantMin) > 1 || math.Abs(pred.PriceRange.Max-wantMax) > 1 {
		t.Fatalf("range [%v, %v], want about [%v, %v]",
			pred.PriceRange.Min, pred.PriceRange.Max, wantMin, wantMax)
	}
}

func TestPredictValidation(t *testing.T) {
	p := testPredictor(t)

	t.Run("missing brand", func(t *testing.T) {
		v := testVehicle()
		v.Brand = ""
		_, err := p.Predict(context.Background(), v, nil)
		if !errors.Is(err, domain.ErrMissingBrand) {
			t.Fatalf("err = %v, want ErrMissingBrand", err)
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Field != "brand" {
			t.Fatalf("err = %v, want ValidationError on brand", err)
		}
	})

	t.Run("missing year", func(t *testing.T) {
		v := testVehicle()
		v.Year = 0
		_, err := p.Predict(context.Background(), v, nil)
		if !errors.Is(err, domain.ErrMissingYear) {
			t.Fatalf("err = %v, want ErrMissingYear", err)
		}
	})
}

func TestPredictRenormalizesOnSubModelFailure(t *testing.T) {
	p := testPredictor(t)

	// No mileage and no power makes the neural model refuse; the ensemble
	// must still answer from the survivors.
	v := testVehicle()
	v.MileageKM = 0
	v.PowerHP = 0
	v.Condition = domain.ConditionNew
	v.Year = 2026

	pred, err := p.Predict(context.Background(), v, nil)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred.PredictedPrice <= 0 {
		t.Fatalf("predicted price = %v, want > 0 despite model failure", pred.PredictedPrice)
	}
	if pred.Confidence <= 0 || pred.Confidence > 1 {
		t.Fatalf("confidence = %v, want in (0,1]", pred.Confidence)
	}
}

func TestPredictNoEstimate(t *testing.T) {
	failing := func(Config, domain.VehicleFeatures, time.Time) (float64, error) {
		return 0, fmt.Errorf("pricing: model offline")
	}
	p := &Predictor{
		cfg:    DefaultConfig(),
		models: []SubModel{{Name: "broken", Weight: 1, Confidence: 0.9, fn: failing}},
		logger: slog.Default(),
		now:    func() time.Time { return testNow },
	}

	_, err := p.Predict(context.Background(), testVehicle(), nil)
	if !errors.Is(err, ErrNoEstimate) {
		t.Fatalf("err = %v, want ErrNoEstimate", err)
	}
}

func TestNormalizeWeights(t *testing.T) {
	models := []SubModel{
		{Name: "a", Weight: 2},
		{Name: "b", Weight: 2},
		{Name: "c", Weight: 4},
	}
	normalizeWeights(models)
	sum := 0.0
	for _, m := range models {
		sum += m.Weight
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("weights sum to %v, want 1", sum)
	}
	if models[2].Weight != 0.5 {
		t.Fatalf("dominant weight = %v, want 0.5", models[2].Weight)
	}
}

func TestAgreementScore(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		check  func(t *testing.T, got float64)
	}{
		{"identical prices agree fully", []float64{50000, 50000, 50000},
			func(t *testing.T, got float64) {
				if got != 1 {
					t.Fatalf("got %v, want 1", got)
				}
			}},
		{"single price is the shrug value", []float64{50000},
			func(t *testing.T, got float64) {
				if got != 0.5 {
					t.Fatalf("got %v, want 0.5", got)
				}
			}},
		{"wild disagreement scores low", []float64{10000, 90000},
			func(t *testing.T, got float64) {
				if got > 0.3 {
					t.Fatalf("got %v, want <= 0.3", got)
				}
			}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, agreementScore(tt.prices))
		})
	}
}

func TestSubModelsProducePlausiblePrices(t *testing.T) {
	cfg := DefaultConfig()
	v := testVehicle()
	for _, m := range []struct {
		name string
		fn   modelFn
	}{
		{"linear", linearModel},
		{"tree", treeModel},
		{"neural", neuralModel},
		{"booster", boosterModel},
	} {
		t.Run(m.name, func(t *testing.T) {
			price, err := m.fn(cfg, v, testNow)
			if err != nil {
				t.Fatalf("%s: %v", m.name, err)
			}
			if price < 1000 || price > 250000 {
				t.Fatalf("%s price = %v, outside plausible band", m.name, price)
			}
		})
	}
}

func TestOlderVehicleIsCheaper(t *testing.T) {
	p := testPredictor(t)
	newer := testVehicle()
	older := testVehicle()
	older.Year = 2014
	older.MileageKM = 800000

	pn, err := p.Predict(context.Background(), newer, nil)
	if err != nil {
		t.Fatalf("Predict newer: %v", err)
	}
	po, err := p.Predict(context.Background(), older, nil)
	if err != nil {
		t.Fatalf("Predict older: %v", err)
	}
	if po.PredictedPrice >= pn.PredictedPrice {
		t.Fatalf("older truck priced %v >= newer %v", po.PredictedPrice, pn.PredictedPrice)
	}
}

func TestTrend(t *testing.T) {
	p := testPredictor(t)
	at := func(daysAgo int) time.Time { return testNow.AddDate(0, 0, -daysAgo) }

	tests := []struct {
		name    string
		history []PricePoint
		want    TrendDirection
	}{
		{"too few points", []PricePoint{{Price: 50000, At: at(10)}}, TrendStable},
		{"rising", []PricePoint{
			{Price: 50000, At: at(90)}, {Price: 51000, At: at(60)},
			{Price: 58000, At: at(30)}, {Price: 60000, At: at(1)},
		}, TrendRising},
		{"falling", []PricePoint{
			{Price: 60000, At: at(90)}, {Price: 59000, At: at(60)},
			{Price: 52000, At: at(30)}, {Price: 50000, At: at(1)},
		}, TrendFalling},
		{"flat within dead band", []PricePoint{
			{Price: 50000, At: at(90)}, {Price: 50500, At: at(60)},
			{Price: 50200, At: at(30)}, {Price: 50400, At: at(1)},
		}, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Trend(tt.history); got != tt.want {
				t.Fatalf("Trend = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExplainFactors(t *testing.T) {
	v := testVehicle()
	v.MileageKM = 900000
	factors := ExplainFactors(v, testNow)
	if len(factors) == 0 {
		t.Fatal("expected factors")
	}
	foundNegativeMileage := false
	for _, f := range factors {
		if f.Name == "mileage" && f.Impact == ImpactNegative {
			foundNegativeMileage = true
		}
	}
	if !foundNegativeMileage {
		t.Fatalf("no negative mileage factor in %+v", factors)
	}
}
