package domain

import (
	"errors"
	"testing"
)

func TestValidateFieldParameters_Valid(t *testing.T) {
	cases := []FieldParameters{
		{CropType: "wheat", SoilType: SoilLoamy, FieldCapacity: 35, WiltingPoint: 15, RootDepth: 100, StressThreshold: 24},
		{CropType: "rice", SoilType: SoilClay, FieldCapacity: 45, WiltingPoint: 20, RootDepth: 50, StressThreshold: 40},
		{CropType: "onion", SoilType: SoilSandy, FieldCapacity: 25, WiltingPoint: 10, RootDepth: 40, StressThreshold: 10},
	}
	for _, p := range cases {
		if err := ValidateFieldParameters(p); err != nil {
			t.Errorf("expected valid for %+v, got %v", p, err)
		}
	}
}

func TestValidateFieldParameters_CapacityBelowWilting(t *testing.T) {
	p := FieldParameters{FieldCapacity: 20, WiltingPoint: 25, RootDepth: 100, StressThreshold: 22}
	if !errors.Is(ValidateFieldParameters(p), ErrCapacityBelowWilting) {
		t.Errorf("expected ErrCapacityBelowWilting")
	}
	// Equal bounds are just as broken: the stress index would divide by zero.
	p = FieldParameters{FieldCapacity: 25, WiltingPoint: 25, RootDepth: 100, StressThreshold: 25}
	if !errors.Is(ValidateFieldParameters(p), ErrCapacityBelowWilting) {
		t.Errorf("expected ErrCapacityBelowWilting for equal bounds")
	}
}

func TestValidateFieldParameters_ThresholdOutOfBand(t *testing.T) {
	p := FieldParameters{FieldCapacity: 35, WiltingPoint: 15, RootDepth: 100, StressThreshold: 40}
	if !errors.Is(ValidateFieldParameters(p), ErrThresholdOutOfBand) {
		t.Errorf("expected ErrThresholdOutOfBand above capacity")
	}
	p.StressThreshold = 10
	if !errors.Is(ValidateFieldParameters(p), ErrThresholdOutOfBand) {
		t.Errorf("expected ErrThresholdOutOfBand below wilting point")
	}
}

func TestValidateFieldParameters_RootDepth(t *testing.T) {
	p := FieldParameters{FieldCapacity: 35, WiltingPoint: 15, RootDepth: 0, StressThreshold: 24}
	if !errors.Is(ValidateFieldParameters(p), ErrRootDepthOutOfRange) {
		t.Errorf("expected ErrRootDepthOutOfRange for zero depth")
	}
	p.RootDepth = 500
	if !errors.Is(ValidateFieldParameters(p), ErrRootDepthOutOfRange) {
		t.Errorf("expected ErrRootDepthOutOfRange for 500cm")
	}
}

func TestValidateForecast_Valid(t *testing.T) {
	days := []WeatherDay{
		{Date: "2026-06-01", TempMin: 20, TempMax: 32, Humidity: 55},
		{Date: "2026-06-02", TempMin: 21, TempMax: 33, Humidity: 50, Precipitation: 12},
		{Date: "2026-06-03", TempMin: 19, TempMax: 30, Humidity: 60},
	}
	if err := ValidateForecast(days); err != nil {
		t.Errorf("expected valid forecast, got %v", err)
	}
	// Empty is fine at this layer; the simulator degrades gracefully.
	if err := ValidateForecast(nil); err != nil {
		t.Errorf("expected nil forecast to validate, got %v", err)
	}
}

func TestValidateForecast_BadDate(t *testing.T) {
	days := []WeatherDay{{Date: "June 1st", Humidity: 50}}
	if !errors.Is(ValidateForecast(days), ErrBadDate) {
		t.Errorf("expected ErrBadDate")
	}
}

func TestValidateForecast_Gap(t *testing.T) {
	days := []WeatherDay{
		{Date: "2026-06-01", Humidity: 50},
		{Date: "2026-06-03", Humidity: 50}, // skips the 2nd
	}
	if !errors.Is(ValidateForecast(days), ErrForecastUnordered) {
		t.Errorf("expected ErrForecastUnordered for gapped dates")
	}
	days = []WeatherDay{
		{Date: "2026-06-02", Humidity: 50},
		{Date: "2026-06-01", Humidity: 50},
	}
	if !errors.Is(ValidateForecast(days), ErrForecastUnordered) {
		t.Errorf("expected ErrForecastUnordered for reversed dates")
	}
}

func TestValidateForecast_Ranges(t *testing.T) {
	if !errors.Is(ValidateForecast([]WeatherDay{{Date: "2026-06-01", Humidity: 140}}), ErrHumidityOutOfRange) {
		t.Errorf("expected ErrHumidityOutOfRange")
	}
	if !errors.Is(ValidateForecast([]WeatherDay{{Date: "2026-06-01", Humidity: 50, Precipitation: -3}}), ErrNegativeRainfall) {
		t.Errorf("expected ErrNegativeRainfall")
	}
}

func TestValidateIrrigationEvents(t *testing.T) {
	ok := []IrrigationEvent{{Date: "2026-06-04", Amount: 25}}
	if err := ValidateIrrigationEvents(ok); err != nil {
		t.Errorf("expected valid events, got %v", err)
	}
	if !errors.Is(ValidateIrrigationEvents([]IrrigationEvent{{Date: "2026-06-04", Amount: -1}}), ErrNegativeIrrigation) {
		t.Errorf("expected ErrNegativeIrrigation")
	}
	if !errors.Is(ValidateIrrigationEvents([]IrrigationEvent{{Date: "bad", Amount: 5}}), ErrBadDate) {
		t.Errorf("expected ErrBadDate")
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	ve := NewValidationError("field_capacity", "20<=25", ErrCapacityBelowWilting)
	if !errors.Is(ve, ErrCapacityBelowWilting) {
		t.Errorf("Unwrap should expose ErrCapacityBelowWilting")
	}
	var target *ValidationError
	if !errors.As(ve, &target) {
		t.Errorf("errors.As should work for *ValidationError")
	}
	if target.Field != "field_capacity" {
		t.Errorf("unexpected field %q", target.Field)
	}
}

func TestKcStages_For(t *testing.T) {
	kc := KcStages{Initial: 0.3, Development: 0.75, MidSeason: 1.15, LateSeason: 0.4}
	cases := []struct {
		stage GrowthStage
		want  float64
	}{
		{StageInitial, 0.3},
		{StageDevelopment, 0.75},
		{StageMidSeason, 1.15},
		{StageLateSeason, 0.4},
		{GrowthStage("bogus"), 1.15}, // unknown stage defaults to peak demand
	}
	for _, c := range cases {
		if got := kc.For(c.stage); got != c.want {
			t.Errorf("For(%s) = %v, want %v", c.stage, got, c.want)
		}
	}
}
