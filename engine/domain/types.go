// Package domain defines the core value types, vocabularies, and validation
// for the TruckScout market intelligence engine. It is the validation gate at
// every engine entry point.
package domain

import "time"

// Category classifies a commercial vehicle body/configuration.
type Category string

const (
	CategoryTractorUnit  Category = "tractor_unit"
	CategoryBoxTruck     Category = "box_truck"
	CategoryTipper       Category = "tipper"
	CategoryFlatbed      Category = "flatbed"
	CategoryCurtainsider Category = "curtainsider"
	CategoryRefrigerated Category = "refrigerated"
	CategoryTanker       Category = "tanker"
	CategoryChassisCab   Category = "chassis_cab"
)

// ValidCategories is the set of recognised vehicle categories.
var ValidCategories = map[Category]bool{
	CategoryTractorUnit: true, CategoryBoxTruck: true, CategoryTipper: true,
	CategoryFlatbed: true, CategoryCurtainsider: true, CategoryRefrigerated: true,
	CategoryTanker: true, CategoryChassisCab: true,
}

// Condition describes the sale condition of a vehicle.
type Condition string

const (
	ConditionNew       Condition = "new"
	ConditionUsed      Condition = "used"
	ConditionCertified Condition = "certified"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

// ValidConditions is the set of recognised conditions.
var ValidConditions = map[Condition]bool{
	ConditionNew: true, ConditionUsed: true, ConditionCertified: true,
	ConditionFair: true, ConditionPoor: true,
}

// FuelType enumerates drivetrain fuel options.
type FuelType string

const (
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelLNG      FuelType = "lng"
	FuelCNG      FuelType = "cng"
	FuelHybrid   FuelType = "hybrid"
)

// Transmission enumerates gearbox types.
type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
	TransmissionSemiAuto  Transmission = "semi_automatic"
)

// FeatureFlags are the boolean equipment flags carried on a listing.
type FeatureFlags struct {
	Retarder        bool `json:"retarder,omitempty"`
	AdaptiveCruise  bool `json:"adaptive_cruise,omitempty"`
	AirConditioning bool `json:"air_conditioning,omitempty"`
	Webasto         bool `json:"webasto,omitempty"`
	TailLift        bool `json:"tail_lift,omitempty"`
	SleeperCab      bool `json:"sleeper_cab,omitempty"`
}

// VehicleFeatures describes one listing or a hypothetical vehicle. It is the
// feature vector consumed by the pricing, quality, and matching engines.
type VehicleFeatures struct {
	ID           string       `json:"id,omitempty"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model,omitempty"`
	Year         int          `json:"year"`
	MileageKM    int          `json:"mileage_km"`
	Price        float64      `json:"price,omitempty"`
	Category     Category     `json:"category,omitempty"`
	Condition    Condition    `json:"condition,omitempty"`
	FuelType     FuelType     `json:"fuel_type,omitempty"`
	Transmission Transmission `json:"transmission,omitempty"`
	EuroStandard string       `json:"euro_standard,omitempty"` // "Euro 5", "Euro 6", ...
	PowerHP      int          `json:"power_hp,omitempty"`
	AxleConfig   string       `json:"axle_config,omitempty"` // "4x2", "6x2", ...
	Location     string       `json:"location,omitempty"`
	Description  string       `json:"description,omitempty"`
	Flags        FeatureFlags `json:"flags,omitempty"`
}

// Age returns the vehicle age in whole years relative to now, never negative.
func (v VehicleFeatures) Age(now time.Time) int {
	age := now.Year() - v.Year
	if age < 0 {
		return 0
	}
	return age
}

// MileagePerYear returns average yearly mileage, guarding the first year.
func (v VehicleFeatures) MileagePerYear(now time.Time) float64 {
	age := v.Age(now)
	if age < 1 {
		age = 1
	}
	return float64(v.MileageKM) / float64(age)
}

// MaintenanceRecord is one entry from a vehicle's service history. Type is
// free text; the quality scorer matches component keywords against it.
type MaintenanceRecord struct {
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date,omitempty"`
	CostEUR     float64   `json:"cost_eur,omitempty"`
}

// Grade is a qualitative score bucket shared by the pricing and quality engines.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradePoor      Grade = "poor"
)

// GradeForScore buckets a [0,1] score using the shared thresholds.
func GradeForScore(score float64) Grade {
	switch {
	case score >= 0.9:
		return GradeExcellent
	case score >= 0.75:
		return GradeGood
	case score >= 0.6:
		return GradeFair
	default:
		return GradePoor
	}
}
