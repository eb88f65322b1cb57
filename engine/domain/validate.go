package domain

import (
	"fmt"
	"time"
)

// Validate checks structural invariants on a vehicle feature vector.
// It rejects malformed records; sparse but well-typed records pass.
func (v VehicleFeatures) Validate(now time.Time) error {
	if v.Brand == "" {
		return NewValidationError("brand", "", ErrMissingBrand)
	}
	if v.Year <= 0 {
		return NewValidationError("year", fmt.Sprintf("%d", v.Year), ErrMissingYear)
	}
	if v.Year > now.Year()+1 {
		return NewValidationError("year", fmt.Sprintf("%d", v.Year), ErrYearOutOfRange)
	}
	if v.MileageKM < 0 {
		return NewValidationError("mileage_km", fmt.Sprintf("%d", v.MileageKM), ErrNegativeMileage)
	}
	if v.Price < 0 {
		return NewValidationError("price", fmt.Sprintf("%f", v.Price), ErrNegativePrice)
	}
	if v.MileageKM == 0 && v.Condition != "" && v.Condition != ConditionNew {
		return NewValidationError("mileage_km", "0", ErrZeroMileageUsed)
	}
	if v.Category != "" && !ValidCategories[v.Category] {
		return NewValidationError("category", string(v.Category), ErrUnknownCategory)
	}
	if v.Condition != "" && !ValidConditions[v.Condition] {
		return NewValidationError("condition", string(v.Condition), ErrUnknownCondition)
	}
	return nil
}
