// Package stress scores soil moisture against the plant-available water
// window and classifies the result into actionable severity levels.
package stress

import (
	"math"

	"github.com/agrosense/agrocore/engine/domain"
	"github.com/agrosense/agrocore/pkg/fn"
)

// Classification breakpoints on the 0..1 index, where 1 is field capacity
// and 0 is the wilting point.
const (
	breakOptimal  = 0.8
	breakMild     = 0.6
	breakModerate = 0.4
	breakSevere   = 0.2
)

var descriptions = map[domain.StressStatus]string{
	domain.StressOptimal:  "Soil moisture is optimal. No irrigation needed.",
	domain.StressMild:     "Mild water stress. Monitor closely, irrigation may be needed soon.",
	domain.StressModerate: "Moderate water stress. Irrigation recommended within 1-2 days.",
	domain.StressSevere:   "Severe water stress. Immediate irrigation required.",
	domain.StressCritical: "Critical water stress. Crop damage likely. Irrigate immediately!",
}

// Index maps moisture onto the available-water window as a 0..1 score,
// clamped at both ends: at or below wilting point scores 0, at or above
// field capacity scores 1.
func Index(moisture, fieldCapacity, wiltingPoint float64) (float64, error) {
	if err := domain.ValidateSoilBounds(fieldCapacity, wiltingPoint); err != nil {
		return 0, err
	}
	idx := (moisture - wiltingPoint) / (fieldCapacity - wiltingPoint)
	if idx < 0 {
		return 0, nil
	}
	if idx > 1 {
		return 1, nil
	}
	return idx, nil
}

// Classify buckets an index value into a severity level.
func Classify(index float64) domain.StressStatus {
	switch {
	case index >= breakOptimal:
		return domain.StressOptimal
	case index >= breakMild:
		return domain.StressMild
	case index >= breakModerate:
		return domain.StressModerate
	case index >= breakSevere:
		return domain.StressSevere
	default:
		return domain.StressCritical
	}
}

// Description returns the operator-facing text for a severity level.
func Description(status domain.StressStatus) string {
	if d, ok := descriptions[status]; ok {
		return d
	}
	return descriptions[domain.StressModerate]
}

// Analyze is the single-reading entry point: index, level and text in one
// call. The index is reported rounded to 2 decimals.
func Analyze(moisture, fieldCapacity, wiltingPoint float64) (domain.StressIndexResult, error) {
	idx, err := Index(moisture, fieldCapacity, wiltingPoint)
	if err != nil {
		return domain.StressIndexResult{}, err
	}
	status := Classify(idx)
	return domain.StressIndexResult{
		CurrentIndex: round2(idx),
		Status:       status,
		Description:  Description(status),
	}, nil
}

// AnalyzeTrend scores a full moisture trajectory. The headline index and
// status come from the first day; PredictedIndices covers every day.
func AnalyzeTrend(preds []domain.DailyPrediction, fieldCapacity, wiltingPoint float64) (domain.StressIndexResult, error) {
	if err := domain.ValidateSoilBounds(fieldCapacity, wiltingPoint); err != nil {
		return domain.StressIndexResult{}, err
	}
	if len(preds) == 0 {
		return domain.StressIndexResult{}, domain.ErrEmptyPredictions
	}

	points := fn.Map(preds, func(p domain.DailyPrediction) domain.StressPoint {
		idx, _ := Index(p.Moisture, fieldCapacity, wiltingPoint)
		return domain.StressPoint{
			Date:   p.Date,
			Index:  round2(idx),
			Status: Classify(idx),
		}
	})

	first := points[0]
	return domain.StressIndexResult{
		CurrentIndex:     first.Index,
		Status:           first.Status,
		Description:      Description(first.Status),
		PredictedIndices: points,
	}, nil
}

// Assessment is the yes/no verdict derived from a single reading.
type Assessment struct {
	Needed  bool
	Urgency domain.Urgency
	Reason  string
}

// NeedsIrrigation compares a reading against the field's stress threshold.
// The crossing decides whether to act; the index decides how urgently.
func NeedsIrrigation(moisture, stressThreshold, fieldCapacity, wiltingPoint float64) (Assessment, error) {
	idx, err := Index(moisture, fieldCapacity, wiltingPoint)
	if err != nil {
		return Assessment{}, err
	}
	if moisture > stressThreshold {
		return Assessment{Needed: false, Urgency: domain.UrgencyNone, Reason: "Soil moisture is adequate"}, nil
	}
	switch {
	case idx <= breakSevere:
		return Assessment{true, domain.UrgencyCritical,
			"Soil moisture is critically low. Immediate irrigation required to prevent crop damage."}, nil
	case idx <= breakModerate:
		return Assessment{true, domain.UrgencyHigh,
			"Soil moisture is well below stress threshold. Irrigate as soon as possible."}, nil
	case idx <= breakMild:
		return Assessment{true, domain.UrgencyMedium,
			"Soil moisture is approaching stress threshold. Plan irrigation within 1-2 days."}, nil
	default:
		return Assessment{true, domain.UrgencyLow,
			"Soil moisture is slightly below optimal. Irrigation should be scheduled soon."}, nil
	}
}

// DaysUntilStress scans a trajectory for the first day at or below the
// stress threshold. The second return is false when no day crosses.
func DaysUntilStress(preds []domain.DailyPrediction, threshold float64) (int, bool) {
	for i, p := range preds {
		if p.Moisture <= threshold {
			return i, true
		}
	}
	return 0, false
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
