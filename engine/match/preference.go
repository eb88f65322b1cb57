package match

import (
	"math"
	"sort"
	"strings"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// Preferences is a user preference vector. Zero-valued fields are treated as
// unspecified and do not enter the score at all: unlike reference
// similarity, weights only apply to preferences the user actually stated.
type Preferences struct {
	Brand        string              `json:"brand,omitempty"`
	Category     domain.Category     `json:"category,omitempty"`
	PriceMax     float64             `json:"price_max,omitempty"`
	YearMin      int                 `json:"year_min,omitempty"`
	MaxMileageKM int                 `json:"max_mileage_km,omitempty"`
	Transmission domain.Transmission `json:"transmission,omitempty"`
	EuroStandard string              `json:"euro_standard,omitempty"`
	FuelType     domain.FuelType     `json:"fuel_type,omitempty"`
}

// preference weights, applied only when the preference is specified.
var preferenceWeights = struct {
	brand, category, price, year, mileage, transmission, euro, fuel float64
}{
	brand: 25, category: 20, price: 20, year: 15, mileage: 10,
	transmission: 5, euro: 3, fuel: 2,
}

// RankByPreferences scores candidates with category-weighted partial
// credit: each specified preference contributes its weight to the
// denominator, and to the numerator when satisfied. With no preferences at
// all every candidate scores the neutral 50.
func RankByPreferences(prefs Preferences, candidates []domain.VehicleFeatures) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		score, reason := preferenceScore(prefs, c)
		out[i] = Candidate{Vehicle: c, Score: score, Reason: reason}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func preferenceScore(p Preferences, c domain.VehicleFeatures) (int, string) {
	num, den := 0.0, 0.0
	var matched []string
	credit := func(weight float64, ok bool, clause string) {
		den += weight
		if ok {
			num += weight
			if len(matched) < 3 {
				matched = append(matched, clause)
			}
		}
	}

	if p.Brand != "" {
		credit(preferenceWeights.brand, c.Brand == p.Brand, "preferred brand")
	}
	if p.Category != "" {
		credit(preferenceWeights.category, c.Category == p.Category, "matching category")
	}
	if p.PriceMax > 0 {
		credit(preferenceWeights.price, c.Price > 0 && c.Price <= p.PriceMax, "within budget")
	}
	if p.YearMin > 0 {
		credit(preferenceWeights.year, c.Year >= p.YearMin, "recent enough")
	}
	if p.MaxMileageKM > 0 {
		credit(preferenceWeights.mileage, c.MileageKM > 0 && c.MileageKM <= p.MaxMileageKM, "acceptable mileage")
	}
	if p.Transmission != "" {
		credit(preferenceWeights.transmission, c.Transmission == p.Transmission, "preferred transmission")
	}
	if p.EuroStandard != "" {
		credit(preferenceWeights.euro, c.EuroStandard == p.EuroStandard, "matching emissions class")
	}
	if p.FuelType != "" {
		credit(preferenceWeights.fuel, c.FuelType == p.FuelType, "preferred fuel type")
	}

	if den == 0 {
		return 50, "no preferences specified"
	}
	score := int(math.Round(100 * num / den))
	reason := "few preference matches"
	if len(matched) > 0 {
		reason = strings.Join(matched, ", ")
	}
	return score, reason
}
