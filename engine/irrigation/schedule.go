// Package irrigation turns simulated moisture trajectories into concrete
// watering recommendations: when, how much, and how urgently.
package irrigation

import (
	"fmt"
	"math"
	"strings"

	"github.com/agrosense/agrocore/engine/domain"
	"github.com/agrosense/agrocore/engine/stress"
)

// leadTimeDays is how far ahead of the projected stress crossing the
// application is scheduled. Water applied the day before the crossing
// arrives in the root zone in time.
const leadTimeDays = 1

const (
	// minApplicationMM is the smallest practical field application.
	minApplicationMM = 15.0

	// applicationBuffer compensates for delivery losses.
	applicationBuffer = 1.1

	// Confidence decays with forecast distance but never below the floor.
	confidenceBase  = 0.95
	confidenceDecay = 0.05
	confidenceFloor = 0.6

	// noStressConfidence applies when the whole horizon stays adequate.
	noStressConfidence = 0.85
)

// Params carries a simulation result plus the field geometry needed to
// size an application. FieldArea (hectares) is optional; zero skips the
// volume conversion.
type Params struct {
	Simulation      domain.SimulationResult
	StressThreshold float64
	FieldCapacity   float64
	WiltingPoint    float64
	RootDepth       float64
	FieldArea       float64
}

// Schedule finds the first projected threshold crossing, schedules an
// application leadTimeDays before it, and sizes the application to refill
// the root zone to field capacity.
func Schedule(p Params) (domain.IrrigationRecommendation, error) {
	if err := domain.ValidateSoilBounds(p.FieldCapacity, p.WiltingPoint); err != nil {
		return domain.IrrigationRecommendation{}, err
	}
	if p.RootDepth <= 0 {
		return domain.IrrigationRecommendation{}, domain.NewValidationError("root_depth",
			fmt.Sprintf("%.1f", p.RootDepth), domain.ErrRootDepthOutOfRange)
	}

	preds := p.Simulation.Predictions
	crossing, found := stress.DaysUntilStress(preds, p.StressThreshold)
	if !found {
		return domain.IrrigationRecommendation{
			IsNeeded:   false,
			Reason:     "Soil moisture is expected to remain adequate throughout the forecast period.",
			Urgency:    domain.UrgencyNone,
			Confidence: noStressConfidence,
		}, nil
	}

	scheduledIdx := crossing - leadTimeDays
	if scheduledIdx < 0 {
		scheduledIdx = 0
	}
	scheduled := preds[scheduledIdx]

	amount := applicationAmount(scheduled.Moisture, p.FieldCapacity, p.RootDepth)

	var liters float64
	if p.FieldArea > 0 {
		liters = amount * p.FieldArea * 10000
	}

	days := crossing
	return domain.IrrigationRecommendation{
		IsNeeded:        true,
		ScheduledDate:   scheduled.Date,
		Amount:          amount,
		AmountLiters:    liters,
		Reason:          reason(crossing, scheduled.Moisture, p.WiltingPoint),
		DaysUntilStress: &days,
		Urgency:         urgencyFor(crossing),
		Confidence:      confidence(crossing),
	}, nil
}

// applicationAmount refills the deficit with the delivery buffer, subject
// to the practical minimum. Whole millimetres.
func applicationAmount(moisture, fieldCapacity, rootDepth float64) float64 {
	deficit := fieldCapacity - moisture
	amount := deficit / 100 * rootDepth * 10 * applicationBuffer
	if amount < minApplicationMM {
		amount = minApplicationMM
	}
	return math.Round(amount)
}

func urgencyFor(crossing int) domain.Urgency {
	switch {
	case crossing == 0:
		return domain.UrgencyCritical
	case crossing == 1:
		return domain.UrgencyHigh
	case crossing <= 2:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}

func confidence(crossing int) float64 {
	c := confidenceBase - float64(crossing)*confidenceDecay
	if c < confidenceFloor {
		c = confidenceFloor
	}
	return math.Round(c*100) / 100
}

func reason(crossing int, moisture, wiltingPoint float64) string {
	switch crossing {
	case 0:
		return fmt.Sprintf("Soil moisture is at or below stress threshold (%.1f%%). Immediate irrigation is required to prevent crop water stress.", moisture)
	case 1:
		return fmt.Sprintf("Soil moisture is predicted to drop below stress threshold tomorrow (%.1f%%). Irrigate today to maintain optimal crop health.", moisture)
	}
	severity := "moderate"
	if moisture < wiltingPoint+5 {
		severity = "severe"
	}
	return fmt.Sprintf("Soil moisture is predicted to drop below stress threshold in %d days, reaching %.1f%%. Schedule irrigation now to prevent %s water stress.", crossing, moisture, severity)
}

// RefillAmount sizes a one-shot refill from the current reading to field
// capacity, adjusted for application efficiency (defaulting to 0.9 when
// out of range). Whole millimetres, never negative.
func RefillAmount(currentMoisture, fieldCapacity, rootDepth, efficiency float64) float64 {
	if efficiency <= 0 || efficiency > 1 {
		efficiency = 0.9
	}
	deficit := fieldCapacity - currentMoisture
	amount := deficit / 100 * rootDepth * 10 / efficiency
	if amount < 0 {
		return 0
	}
	return math.Round(amount)
}

// Season for strategy suggestions.
type Season string

const (
	SeasonSummer  Season = "summer"
	SeasonMonsoon Season = "monsoon"
	SeasonWinter  Season = "winter"
)

// Strategy is an advisory watering regime, not a schedule.
type Strategy struct {
	Frequency string `json:"frequency"`
	Depth     string `json:"depth"`
	Method    string `json:"method"`
	Notes     string `json:"notes"`
}

// SuggestStrategy adapts a baseline regime to growth stage, season and
// crop. Adjustments stack in that order.
func SuggestStrategy(cropType string, growthStage domain.GrowthStage, season Season) Strategy {
	s := Strategy{
		Frequency: "Every 5-7 days",
		Depth:     "Light to moderate (20-30mm)",
		Method:    "Drip or sprinkler irrigation",
		Notes:     "Monitor soil moisture regularly and adjust based on weather conditions.",
	}

	switch growthStage {
	case domain.StageInitial:
		s.Frequency = "Every 3-4 days"
		s.Depth = "Light (15-20mm)"
		s.Notes = "Frequent light irrigation during establishment phase."
	case domain.StageMidSeason:
		s.Frequency = "Every 4-6 days"
		s.Depth = "Moderate to heavy (30-40mm)"
		s.Notes = "Peak water demand period. Ensure adequate soil moisture."
	case domain.StageLateSeason:
		s.Frequency = "Every 7-10 days"
		s.Depth = "Light to moderate (20-30mm)"
		s.Notes = "Reduce irrigation as crop approaches maturity."
	}

	switch season {
	case SeasonSummer:
		s.Frequency = tightenFrequency(s.Frequency)
		s.Notes += " Increase frequency during hot, dry summer months."
	case SeasonMonsoon:
		s.Frequency = "As needed (monitor rainfall)"
		s.Depth = "Supplemental only"
		s.Notes = "Reduce or skip irrigation during rainy season. Monitor soil saturation."
	}

	switch strings.ToLower(cropType) {
	case "rice":
		s.Method = "Flood irrigation or continuous saturation"
		s.Notes = "Rice requires standing water during most growth stages."
	case "potato", "tomato":
		s.Method = "Drip irrigation (preferred)"
		s.Notes += " Avoid overhead irrigation to reduce disease risk."
	}

	return s
}

// tightenFrequency shifts an "Every X-Y days" interval one day earlier at
// both ends, bottoming out at 1.
func tightenFrequency(freq string) string {
	var lo, hi int
	if _, err := fmt.Sscanf(freq, "Every %d-%d days", &lo, &hi); err != nil {
		return freq
	}
	if lo > 1 {
		lo--
	}
	if hi > 1 {
		hi--
	}
	return fmt.Sprintf("Every %d-%d days", lo, hi)
}

// ScheduleOption is one candidate application window.
type ScheduleOption struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount_mm"`
	Score  float64 `json:"score"`
}

// ScheduleComparison weighs waiting until just before the crossing against
// irrigating immediately.
type ScheduleComparison struct {
	JustInTime  ScheduleOption `json:"just_in_time"`
	Immediate   ScheduleOption `json:"immediate"`
	Recommended string         `json:"recommended"`
}

// EvaluateScheduleOptions compares the just-in-time window with irrigating
// on day one. Waiting is penalized per day of forecast risk; irrigating
// early carries a flat safety score since it may waste water.
func EvaluateScheduleOptions(preds []domain.DailyPrediction, stressThreshold, fieldCapacity float64) (ScheduleComparison, error) {
	if len(preds) == 0 {
		return ScheduleComparison{}, domain.ErrEmptyPredictions
	}

	crossing, found := stress.DaysUntilStress(preds, stressThreshold)
	if !found {
		last := preds[len(preds)-1]
		opt := ScheduleOption{Date: last.Date, Amount: 0, Score: 100}
		return ScheduleComparison{JustInTime: opt, Immediate: opt, Recommended: "just_in_time"}, nil
	}

	jitIdx := crossing - leadTimeDays
	if jitIdx < 0 {
		jitIdx = 0
	}

	jitScore := 100 - float64(crossing)*10
	if jitScore < 0 {
		jitScore = 0
	}
	const immediateScore = 85

	cmp := ScheduleComparison{
		JustInTime: ScheduleOption{
			Date:   preds[jitIdx].Date,
			Amount: optionAmount(preds[jitIdx].Moisture, fieldCapacity),
			Score:  jitScore,
		},
		Immediate: ScheduleOption{
			Date:   preds[0].Date,
			Amount: optionAmount(preds[0].Moisture, fieldCapacity),
			Score:  immediateScore,
		},
		Recommended: "just_in_time",
	}
	if jitScore < immediateScore {
		cmp.Recommended = "immediate"
	}
	return cmp, nil
}

func optionAmount(moisture, fieldCapacity float64) float64 {
	amount := math.Round((fieldCapacity - moisture) * 10)
	if amount < minApplicationMM {
		amount = minApplicationMM
	}
	return amount
}
