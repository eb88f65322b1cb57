package quality

import (
	"fmt"
	"time"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// assessRisk accumulates fixed increments per triggered condition, with a
// structured entry for each. The score is independent of the mechanical and
// visual paths.
func (a *Assessor) assessRisk(v domain.VehicleFeatures, history []domain.MaintenanceRecord, now time.Time) RiskProfile {
	profile := RiskProfile{OverallScore: a.cfg.RiskBase}

	if v.MileageKM > a.cfg.HighMileageKM {
		profile.OverallScore += a.cfg.RiskHighMileage
		profile.Entries = append(profile.Entries, RiskEntry{
			Type:        "high_mileage",
			Severity:    "medium",
			Description: fmt.Sprintf("Mileage of %d km exceeds the %d km threshold.", v.MileageKM, a.cfg.HighMileageKM),
			Mitigation:  "Inspect driveline wear items and review overhaul records.",
		})
	}

	if age := v.Age(now); age > a.cfg.OldAgeYears {
		profile.OverallScore += a.cfg.RiskOldAge
		profile.Entries = append(profile.Entries, RiskEntry{
			Type:        "vehicle_age",
			Severity:    "medium",
			Description: fmt.Sprintf("Vehicle is %d years old.", age),
			Mitigation:  "Check corrosion, hoses, and rubber components for age-related wear.",
		})
	}

	if len(history) < a.cfg.MinMaintenanceRecords {
		profile.OverallScore += a.cfg.RiskSparseHistory
		profile.Entries = append(profile.Entries, RiskEntry{
			Type:        "sparse_history",
			Severity:    "high",
			Description: fmt.Sprintf("Only %d maintenance records available.", len(history)),
			Mitigation:  "Request missing service documentation from the seller.",
		})
	}

	for _, brand := range a.cfg.HigherMaintenanceBrands {
		if v.Brand == brand {
			profile.OverallScore += a.cfg.RiskBrand
			profile.Entries = append(profile.Entries, RiskEntry{
				Type:        "brand_maintenance",
				Severity:    "low",
				Description: fmt.Sprintf("%s models in this class average higher upkeep costs.", brand),
				Mitigation:  "Budget for above-average parts and service pricing.",
			})
			break
		}
	}

	profile.OverallScore = clamp01(profile.OverallScore)
	switch {
	case profile.OverallScore >= 0.7:
		profile.Level = "high"
	case profile.OverallScore >= 0.4:
		profile.Level = "medium"
	default:
		profile.Level = "low"
	}
	return profile
}
