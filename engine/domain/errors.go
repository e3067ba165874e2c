package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for contract violations. Missing reference data is NOT an
// error: the resolver substitutes documented defaults and logs a warning.
var (
	ErrCapacityBelowWilting = errors.New("field capacity must exceed wilting point")
	ErrEmptyPredictions     = errors.New("at least one prediction point is required")
	ErrThresholdOutOfBand   = errors.New("stress threshold outside wilting point / field capacity band")
	ErrRootDepthOutOfRange  = errors.New("root depth out of range")
	ErrKcOutOfRange         = errors.New("crop coefficient must be positive")
	ErrDepletionOutOfRange  = errors.New("depletion factor must be in (0,1)")
	ErrMoistureOutOfRange   = errors.New("moisture percentage out of range")
	ErrHumidityOutOfRange   = errors.New("humidity out of range")
	ErrNegativeRainfall     = errors.New("precipitation cannot be negative")
	ErrNegativeIrrigation   = errors.New("irrigation amount cannot be negative")
	ErrBadDate              = errors.New("date is not a valid calendar day")
	ErrForecastUnordered    = errors.New("forecast days must be chronological and gap-free")
)

// ValidationError wraps a sentinel with context about the offending field.
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
