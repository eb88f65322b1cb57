// Package listing defines the read-only listing store the engine queries and
// an in-memory implementation used by tests and the demo server.
package listing

import (
	"context"

	"github.com/TruckScoutAI/truckscout-engine/engine/domain"
)

// Filter narrows a listing query. Zero-valued fields are ignored.
type Filter struct {
	Brand        string          `json:"brand,omitempty"`
	Category     domain.Category `json:"category,omitempty"`
	PriceMin     float64         `json:"price_min,omitempty"`
	PriceMax     float64         `json:"price_max,omitempty"`
	YearMin      int             `json:"year_min,omitempty"`
	YearMax      int             `json:"year_max,omitempty"`
	MaxMileageKM int             `json:"max_mileage_km,omitempty"`
	Limit        int             `json:"limit,omitempty"`
}

// Store is the read-only query surface over vehicle records.
// Implementations return an empty slice, never nil, when nothing matches.
type Store interface {
	Find(ctx context.Context, f Filter) ([]domain.VehicleFeatures, error)
}

// Matches reports whether v passes every populated filter field.
func (f Filter) Matches(v domain.VehicleFeatures) bool {
	if f.Brand != "" && v.Brand != f.Brand {
		return false
	}
	if f.Category != "" && v.Category != f.Category {
		return false
	}
	if f.PriceMin > 0 && v.Price < f.PriceMin {
		return false
	}
	if f.PriceMax > 0 && v.Price > f.PriceMax {
		return false
	}
	if f.YearMin > 0 && v.Year < f.YearMin {
		return false
	}
	if f.YearMax > 0 && v.Year > f.YearMax {
		return false
	}
	if f.MaxMileageKM > 0 && v.MileageKM > f.MaxMileageKM {
		return false
	}
	return true
}
