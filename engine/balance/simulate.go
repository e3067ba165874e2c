// Package balance implements the daily soil water balance ("bucket") model.
//
// Each simulated day adds effective rainfall and scheduled irrigation to the
// root-zone water depth, then subtracts crop evapotranspiration and drainage.
// Day i depends on day i-1's ending depth, so the fold is inherently
// sequential within a run; across runs there is no shared state.
package balance

import (
	"fmt"

	"github.com/agrosense/agrocore/engine/domain"
	"github.com/agrosense/agrocore/engine/et"
	"github.com/agrosense/agrocore/pkg/fn"
)

// MaxHorizonDays bounds a single simulation run.
const MaxHorizonDays = 7

// Empirical policy constants. These are tuning knobs, not derived physics;
// keep them named so they can change without touching the control flow.
const (
	// overfillFactor allows transient saturation above field capacity
	// before the clamp: depth never exceeds 1.1 * field capacity depth.
	overfillFactor = 1.1

	// needBufferPct is the early-warning margin: irrigation is flagged as
	// needed when projected minimum moisture comes within 5 points of the
	// wilting point.
	needBufferPct = 5.0
)

// drainageRates is the fraction of above-capacity excess lost per day, by
// soil texture.
var drainageRates = map[domain.SoilTexture]float64{
	domain.SoilSandy: 0.5,
	domain.SoilLoamy: 0.3,
	domain.SoilClay:  0.1,
}

// Rainfall effectiveness tiers: dry soil absorbs most of a rain event, wet
// soil sheds more to runoff.
const (
	effectivenessDry      = 0.9 // below 50% of capacity depth
	effectivenessModerate = 0.8 // below 80%
	effectivenessWet      = 0.6
)

// Input is a single simulation request. FieldCapacity and WiltingPoint are %
// volumetric, RootDepth is cm.
type Input struct {
	CurrentMoisture  float64
	FieldCapacity    float64
	WiltingPoint     float64
	RootDepth        float64
	Forecast         []domain.WeatherDay
	CropKc           float64
	SoilType         domain.SoilTexture
	IrrigationEvents []domain.IrrigationEvent
}

// runConstants are the per-run depth conversions, computed once.
type runConstants struct {
	rootDepth    float64
	capacityMM   float64
	wiltingMM    float64
	drainageRate float64
	cropKc       float64
	irrigation   map[string]float64 // by exact date
}

// dayState is the immutable fold state between days.
type dayState struct {
	depthMM      float64
	criticalDate string
}

// Simulate folds the forecast into a day-by-day moisture trajectory, at most
// MaxHorizonDays long. A forecast shorter than the horizon degrades
// gracefully; an empty forecast yields empty predictions and a zero summary.
// FieldCapacity <= WiltingPoint is a caller contract violation and fails
// before any simulation step.
func Simulate(in Input) (domain.SimulationResult, error) {
	var zero domain.SimulationResult

	if err := domain.ValidateSoilBounds(in.FieldCapacity, in.WiltingPoint); err != nil {
		return zero, err
	}
	if in.RootDepth <= 0 {
		return zero, domain.NewValidationError("root_depth",
			fmt.Sprintf("%.1f", in.RootDepth), domain.ErrRootDepthOutOfRange)
	}

	consts := runConstants{
		rootDepth:    in.RootDepth,
		capacityMM:   percentToDepth(in.FieldCapacity, in.RootDepth),
		wiltingMM:    percentToDepth(in.WiltingPoint, in.RootDepth),
		drainageRate: drainageRateFor(in.SoilType),
		cropKc:       in.CropKc,
		irrigation:   irrigationByDate(in.IrrigationEvents),
	}

	horizon := len(in.Forecast)
	if horizon > MaxHorizonDays {
		horizon = MaxHorizonDays
	}

	state := dayState{depthMM: percentToDepth(in.CurrentMoisture, in.RootDepth)}
	predictions := make([]domain.DailyPrediction, 0, horizon)
	for _, day := range in.Forecast[:horizon] {
		var pred domain.DailyPrediction
		state, pred = step(state, day, consts)
		predictions = append(predictions, pred)
	}

	summary := summarize(predictions)

	return domain.SimulationResult{
		Predictions:      predictions,
		IrrigationNeeded: len(predictions) > 0 && summary.MinMoisture < in.WiltingPoint+needBufferPct,
		CriticalDate:     state.criticalDate,
		Summary:          summary,
	}, nil
}

// step advances the water balance by one day:
// depth' = clamp(depth + effectiveRain + irrigation - ETc - drainage).
func step(s dayState, day domain.WeatherDay, c runConstants) (dayState, domain.DailyPrediction) {
	etMM := et.DailyCropET(day.TempMin, day.TempMax, day.Humidity, c.cropKc)
	rainMM := day.Precipitation
	irrigationMM := c.irrigation[day.Date]

	effectiveRain := rainMM * rainEffectiveness(s.depthMM, c.capacityMM)
	depth := s.depthMM + effectiveRain + irrigationMM

	var drainage float64
	if depth > c.capacityMM {
		drainage = (depth - c.capacityMM) * c.drainageRate
	}

	depth -= etMM + drainage
	depth = clamp(depth, 0, c.capacityMM*overfillFactor)

	deficit := c.capacityMM - depth
	if deficit < 0 {
		deficit = 0
	}

	next := dayState{depthMM: depth, criticalDate: s.criticalDate}
	// The first wilting-point day is sticky: later recoveries don't clear it.
	if next.criticalDate == "" && depth <= c.wiltingMM {
		next.criticalDate = day.Date
	}

	return next, domain.DailyPrediction{
		Date:          day.Date,
		Moisture:      round1(depthToPercent(depth, c.rootDepth)),
		ET:            round2(etMM),
		Rainfall:      round2(rainMM),
		Irrigation:    round2(irrigationMM),
		Drainage:      round2(drainage),
		Deficit:       round2(deficit),
		MoistureDepth: round2(depth),
	}
}

// summarize aggregates the emitted (already rounded) predictions; an empty
// run produces an all-zero summary rather than NaN.
func summarize(preds []domain.DailyPrediction) domain.SimulationSummary {
	if len(preds) == 0 {
		return domain.SimulationSummary{}
	}

	moistures := fn.Map(preds, func(p domain.DailyPrediction) float64 { return p.Moisture })
	minM, maxM, _ := fn.MinMax(moistures)
	sum := fn.Reduce(moistures, 0.0, func(acc, m float64) float64 { return acc + m })

	return domain.SimulationSummary{
		AvgMoisture: round1(sum / float64(len(moistures))),
		MinMoisture: minM,
		MaxMoisture: maxM,
		TotalET: round2(fn.Reduce(preds, 0.0, func(acc float64, p domain.DailyPrediction) float64 {
			return acc + p.ET
		})),
		TotalRainfall: round2(fn.Reduce(preds, 0.0, func(acc float64, p domain.DailyPrediction) float64 {
			return acc + p.Rainfall
		})),
		TotalIrrigation: round2(fn.Reduce(preds, 0.0, func(acc float64, p domain.DailyPrediction) float64 {
			return acc + p.Irrigation
		})),
	}
}

// QuickIrrigationCheck is a cheap 3-day lookahead: does moisture projected from
// per-day ET and rainfall (at a flat 0.8 effectiveness) cross the stress
// threshold? Useful as a pre-filter before a full simulation.
func QuickIrrigationCheck(currentMoisture float64, forecastET, forecastRain []float64, stressThreshold float64) bool {
	days := len(forecastET)
	if days > 3 {
		days = 3
	}
	moisture := currentMoisture
	for i := 0; i < days; i++ {
		var rain float64
		if i < len(forecastRain) {
			rain = forecastRain[i]
		}
		moisture += rain*0.8 - forecastET[i]
		if moisture <= stressThreshold {
			return true
		}
	}
	return false
}

// rainEffectiveness picks the absorption tier from how full the bucket is.
func rainEffectiveness(depthMM, capacityMM float64) float64 {
	ratio := depthMM / capacityMM
	switch {
	case ratio < 0.5:
		return effectivenessDry
	case ratio < 0.8:
		return effectivenessModerate
	default:
		return effectivenessWet
	}
}

func drainageRateFor(texture domain.SoilTexture) float64 {
	if rate, ok := drainageRates[texture]; ok {
		return rate
	}
	return drainageRates[domain.SoilLoamy]
}

func irrigationByDate(events []domain.IrrigationEvent) map[string]float64 {
	if len(events) == 0 {
		return nil
	}
	byDate := make(map[string]float64, len(events))
	for _, e := range events {
		byDate[e.Date] += e.Amount
	}
	return byDate
}

// percentToDepth converts % volumetric moisture to mm of water over a root
// zone given in cm: depth = pct/100 * rootDepth * 10.
func percentToDepth(pct, rootDepthCM float64) float64 {
	return pct / 100 * rootDepthCM * 10
}

func depthToPercent(depthMM, rootDepthCM float64) float64 {
	return depthMM / (rootDepthCM * 10) * 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
