package quality

import (
	"strings"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// componentBase is the starting score for every mechanical component; all
// adjustments below are additive deltas clamped into [0,1].
const componentBase = 0.7

// componentKeywords mark maintenance records as relevant to a component.
var componentKeywords = map[string][]string{
	"engine":       {"engine", "motor", "oil", "turbo", "injector"},
	"transmission": {"transmission", "gearbox", "clutch", "shift"},
	"brakes":       {"brake", "pad", "disc", "caliper"},
	"suspension":   {"suspension", "shock", "spring", "air bag", "axle"},
	"electrical":   {"electrical", "battery", "alternator", "wiring", "sensor", "ecu"},
}

// scoreMechanical scores the five components independently with the shared
// additive/clamped pattern.
func scoreMechanical(v domain.VehicleFeatures, history []domain.MaintenanceRecord, now time.Time) ComponentScores {
	age := v.Age(now)
	perYear := v.MileagePerYear(now)

	return ComponentScores{
		Engine:       scoreComponent("engine", v, age, perYear, history, 0),
		Transmission: scoreComponent("transmission", v, age, perYear, history, transmissionDelta(v)),
		Brakes:       scoreComponent("brakes", v, age, perYear, history, 0),
		Suspension:   scoreComponent("suspension", v, age, perYear, history, suspensionDelta(v)),
		Electrical:   scoreComponent("electrical", v, age, perYear, history, electricalDelta(v)),
	}
}

func scoreComponent(name string, v domain.VehicleFeatures, age int, perYear float64, history []domain.MaintenanceRecord, extra float64) float64 {
	score := componentBase

	// Age buckets.
	switch {
	case age <= 3:
		score += 0.15
	case age <= 8:
		score += 0.05
	case age <= 12:
		score -= 0.05
	default:
		score -= 0.15
	}

	// Yearly usage buckets.
	switch {
	case perYear <= 80000:
		score += 0.05
	case perYear <= 130000:
		// typical fleet usage, no adjustment
	default:
		score -= 0.10
	}

	// Every documented service touching this component helps, capped so a
	// long history does not saturate the score on its own.
	relevant := countRelevantRecords(name, history)
	bonus := 0.04 * float64(relevant)
	if bonus > 0.12 {
		bonus = 0.12
	}
	score += bonus

	score += extra
	return clamp01(score)
}

// transmissionDelta: automated gearboxes in this class wear more gracefully
// than clutch-operated manuals at high mileage.
func transmissionDelta(v domain.VehicleFeatures) float64 {
	switch v.Transmission {
	case domain.TransmissionAutomatic:
		return 0.05
	case domain.TransmissionManual:
		if v.MileageKM > 500000 {
			return -0.05
		}
	}
	return 0
}

// suspensionDelta: tipper and construction configurations see harder duty.
func suspensionDelta(v domain.VehicleFeatures) float64 {
	if v.Category == domain.CategoryTipper || v.Category == domain.CategoryChassisCab {
		return -0.05
	}
	return 0
}

// electricalDelta: newer emissions packages mean newer, better-supported
// electronics.
func electricalDelta(v domain.VehicleFeatures) float64 {
	switch v.EuroStandard {
	case "Euro 6":
		return 0.05
	case "Euro 3", "Euro 2":
		return -0.05
	}
	return 0
}

func countRelevantRecords(component string, history []domain.MaintenanceRecord) int {
	keywords := componentKeywords[component]
	count := 0
	for _, rec := range history {
		text := strings.ToLower(rec.Type + " " + rec.Description)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				count++
				break
			}
		}
	}
	return count
}
