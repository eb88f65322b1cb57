package pricing

import (
	"fmt"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// ExplainFactors inspects the input features and tags each one with its
// direction of influence. It is deliberately independent of the ensemble
// math so it can be tested without invoking the models.
func ExplainFactors(v domain.VehicleFeatures, now time.Time) []Factor {
	var factors []Factor

	age := v.Age(now)
	switch {
	case age <= 2:
		factors = append(factors, Factor{
			Name: "age", Impact: ImpactPositive,
			Explanation: fmt.Sprintf("%d-year-old vehicle holds most of its value", age),
		})
	case age <= 8:
		factors = append(factors, Factor{
			Name: "age", Impact: ImpactNeutral,
			Explanation: fmt.Sprintf("%d years is mid-life for a commercial vehicle", age),
		})
	default:
		factors = append(factors, Factor{
			Name: "age", Impact: ImpactNegative,
			Explanation: fmt.Sprintf("%d years of age weighs on resale value", age),
		})
	}

	if v.MileageKM > 0 {
		switch {
		case v.MileageKM < 300000:
			factors = append(factors, Factor{
				Name: "mileage", Impact: ImpactPositive,
				Explanation: fmt.Sprintf("%d km is low for this class", v.MileageKM),
			})
		case v.MileageKM <= 700000:
			factors = append(factors, Factor{
				Name: "mileage", Impact: ImpactNeutral,
				Explanation: fmt.Sprintf("%d km is typical usage", v.MileageKM),
			})
		default:
			factors = append(factors, Factor{
				Name: "mileage", Impact: ImpactNegative,
				Explanation: fmt.Sprintf("%d km is high and lowers the estimate", v.MileageKM),
			})
		}
	}

	if domain.IsPremiumBrand(v.Brand) {
		factors = append(factors, Factor{
			Name: "brand", Impact: ImpactPositive,
			Explanation: fmt.Sprintf("%s carries a resale premium", v.Brand),
		})
	} else {
		factors = append(factors, Factor{
			Name: "brand", Impact: ImpactNeutral,
			Explanation: fmt.Sprintf("%s trades at standard market rates", v.Brand),
		})
	}

	if v.EuroStandard == "Euro 6" {
		factors = append(factors, Factor{
			Name: "euro_standard", Impact: ImpactPositive,
			Explanation: "Euro 6 keeps the vehicle eligible for low-emission zones",
		})
	} else if v.EuroStandard != "" {
		factors = append(factors, Factor{
			Name: "euro_standard", Impact: ImpactNegative,
			Explanation: fmt.Sprintf("%s restricts access to some markets", v.EuroStandard),
		})
	}

	if v.Flags.Retarder || v.Flags.AdaptiveCruise || v.Flags.Webasto {
		factors = append(factors, Factor{
			Name: "equipment", Impact: ImpactPositive,
			Explanation: "value-adding equipment fitted",
		})
	}

	return factors
}
