package domain

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func validVehicle() VehicleFeatures {
	return VehicleFeatures{
		Brand:     "Volvo",
		Model:     "FH 500",
		Year:      2021,
		MileageKM: 310000,
		Price:     72800,
		Category:  CategoryTractorUnit,
		Condition: ConditionUsed,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *VehicleFeatures)
		wantErr error
	}{
		{"valid", func(v *VehicleFeatures) {}, nil},
		{"missing brand", func(v *VehicleFeatures) { v.Brand = "" }, ErrMissingBrand},
		{"zero year", func(v *VehicleFeatures) { v.Year = 0 }, ErrMissingYear},
		{"future year", func(v *VehicleFeatures) { v.Year = testNow.Year() + 2 }, ErrYearOutOfRange},
		{"next model year allowed", func(v *VehicleFeatures) { v.Year = testNow.Year() + 1 }, nil},
		{"negative mileage", func(v *VehicleFeatures) { v.MileageKM = -10 }, ErrNegativeMileage},
		{"negative price", func(v *VehicleFeatures) { v.Price = -1 }, ErrNegativePrice},
		{"zero mileage on used truck", func(v *VehicleFeatures) { v.MileageKM = 0 }, ErrZeroMileageUsed},
		{"zero mileage on new truck allowed", func(v *VehicleFeatures) {
			v.MileageKM = 0
			v.Condition = ConditionNew
		}, nil},
		{"zero mileage without condition allowed", func(v *VehicleFeatures) {
			v.MileageKM = 0
			v.Condition = ""
		}, nil},
		{"unknown category", func(v *VehicleFeatures) { v.Category = "hovercraft" }, ErrUnknownCategory},
		{"unknown condition", func(v *VehicleFeatures) { v.Condition = "pristine" }, ErrUnknownCondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVehicle()
			tt.mutate(&v)
			err := v.Validate(testNow)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %v is not a ValidationError", err)
			}
			if verr.Field == "" {
				t.Fatal("ValidationError carries no field")
			}
		})
	}
}

func TestCanonicalBrand(t *testing.T) {
	tests := []struct{ alias, want string }{
		{"mercedes", "Mercedes-Benz"},
		{"actros", "Mercedes-Benz"},
		{"mb", "Mercedes-Benz"},
		{"scania", "Scania"},
		{"volvo", "Volvo"},
		{"daf", "DAF"},
		{"unknownbrand", ""},
	}
	for _, tt := range tests {
		if got := CanonicalBrand(tt.alias); got != tt.want {
			t.Errorf("CanonicalBrand(%q) = %q, want %q", tt.alias, got, tt.want)
		}
	}
}

func TestAgeAndMileagePerYear(t *testing.T) {
	v := validVehicle() // 2021, 310000 km

	if got := v.Age(testNow); got != 5 {
		t.Fatalf("Age = %d, want 5", got)
	}
	if got := v.MileagePerYear(testNow); got != 62000 {
		t.Fatalf("MileagePerYear = %v, want 62000", got)
	}

	// A current-year truck must not divide by zero.
	v.Year = testNow.Year()
	v.MileageKM = 40000
	if got := v.MileagePerYear(testNow); got != 40000 {
		t.Fatalf("first-year MileagePerYear = %v, want 40000", got)
	}
}

func TestGradeForScoreThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  Grade
	}{
		{1.0, GradeExcellent},
		{0.9, GradeExcellent},
		{0.89, GradeGood},
		{0.75, GradeGood},
		{0.74, GradeFair},
		{0.6, GradeFair},
		{0.59, GradePoor},
		{0, GradePoor},
	}
	for _, tt := range tests {
		if got := GradeForScore(tt.score); got != tt.want {
			t.Errorf("GradeForScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
