package domain

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// maxRootDepthCM bounds plausible root zones; deeper values indicate a unit
// mix-up (meters vs centimeters) upstream.
const maxRootDepthCM = 300

// ParseDate parses an ISO calendar date used throughout the pipeline.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// ValidateSoilBounds fails fast when field capacity does not strictly exceed
// the wilting point. Every downstream formula divides by (fc - wp).
func ValidateSoilBounds(fieldCapacity, wiltingPoint float64) error {
	if fieldCapacity <= wiltingPoint {
		return NewValidationError("field_capacity",
			fmt.Sprintf("%.1f<=%.1f", fieldCapacity, wiltingPoint),
			ErrCapacityBelowWilting)
	}
	return nil
}

// ValidateFieldParameters validates an explicitly supplied parameter set.
// Resolver-produced parameters satisfy these by construction; caller-supplied
// ones are rejected with a typed error rather than silently defaulted.
func ValidateFieldParameters(p FieldParameters) error {
	if err := ValidateSoilBounds(p.FieldCapacity, p.WiltingPoint); err != nil {
		return err
	}
	if p.FieldCapacity < 0 || p.FieldCapacity > 100 {
		return NewValidationError("field_capacity", fmt.Sprintf("%.1f", p.FieldCapacity), ErrMoistureOutOfRange)
	}
	if p.WiltingPoint < 0 || p.WiltingPoint > 100 {
		return NewValidationError("wilting_point", fmt.Sprintf("%.1f", p.WiltingPoint), ErrMoistureOutOfRange)
	}
	if p.StressThreshold < p.WiltingPoint || p.StressThreshold > p.FieldCapacity {
		return NewValidationError("stress_threshold", fmt.Sprintf("%.1f", p.StressThreshold), ErrThresholdOutOfBand)
	}
	if p.RootDepth <= 0 || p.RootDepth > maxRootDepthCM {
		return NewValidationError("root_depth", fmt.Sprintf("%.1f", p.RootDepth), ErrRootDepthOutOfRange)
	}
	return nil
}

// ValidateForecast checks the data contract for a forecast sequence: valid
// dates in chronological, gap-free order, humidity within 0-100 and
// non-negative precipitation.
func ValidateForecast(days []WeatherDay) error {
	var prev time.Time
	for i, d := range days {
		t, err := ParseDate(d.Date)
		if err != nil {
			return NewValidationError("date", d.Date, ErrBadDate)
		}
		if i > 0 && !t.Equal(prev.AddDate(0, 0, 1)) {
			return NewValidationError("date", d.Date, ErrForecastUnordered)
		}
		prev = t
		if d.Humidity < 0 || d.Humidity > 100 {
			return NewValidationError("humidity", fmt.Sprintf("%.1f", d.Humidity), ErrHumidityOutOfRange)
		}
		if d.Precipitation < 0 {
			return NewValidationError("precipitation", fmt.Sprintf("%.1f", d.Precipitation), ErrNegativeRainfall)
		}
	}
	return nil
}

// ValidateIrrigationEvents checks pre-planned irrigation events.
func ValidateIrrigationEvents(events []IrrigationEvent) error {
	for _, e := range events {
		if _, err := ParseDate(e.Date); err != nil {
			return NewValidationError("date", e.Date, ErrBadDate)
		}
		if e.Amount < 0 {
			return NewValidationError("amount", fmt.Sprintf("%.1f", e.Amount), ErrNegativeIrrigation)
		}
	}
	return nil
}
