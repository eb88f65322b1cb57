package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation failures.
var (
	ErrInvalidVehicle   = errors.New("invalid vehicle")
	ErrMissingBrand     = errors.New("brand is required")
	ErrMissingYear      = errors.New("year is required")
	ErrYearOutOfRange   = errors.New("year out of range")
	ErrNegativeMileage  = errors.New("mileage must be non-negative")
	ErrNegativePrice    = errors.New("price must be non-negative")
	ErrZeroMileageUsed  = errors.New("zero mileage only valid for new vehicles")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownCondition = errors.New("unknown condition")
)

// ValidationError wraps a sentinel with the offending field and value.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}
