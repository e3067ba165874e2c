// Package domain defines the core types, constants, and validation for the
// agrocore simulation pipeline. It acts as the validation gate at pipeline
// entry points; all records here are plain data and safe to serialize.
package domain

// WeatherDay is one day of forecast input. The slice order of a forecast IS
// the simulation timeline: index 0 is the first simulated day.
type WeatherDay struct {
	Date          string  `json:"date"`                     // ISO calendar date, e.g. "2026-06-01"
	TempMin       float64 `json:"temp_min"`                 // °C
	TempMax       float64 `json:"temp_max"`                 // °C
	Humidity      float64 `json:"humidity"`                 // % relative, 0-100
	WindSpeed     float64 `json:"wind_speed,omitempty"`     // m/s at 2m
	SunshineHours float64 `json:"sunshine_hours,omitempty"` // hours, 0-24
	Precipitation float64 `json:"precipitation"`            // mm, >= 0
}

// SoilTexture classifies soil by infiltration behavior.
type SoilTexture string

const (
	SoilSandy SoilTexture = "sandy"
	SoilLoamy SoilTexture = "loamy"
	SoilClay  SoilTexture = "clay"
)

// ValidSoilTextures is the set of recognised soil textures.
var ValidSoilTextures = map[SoilTexture]bool{
	SoilSandy: true, SoilLoamy: true, SoilClay: true,
}

// SoilProfile holds the water-holding characteristics of a soil type.
// FieldCapacity and WiltingPoint are % volumetric water content.
type SoilProfile struct {
	Texture          SoilTexture `json:"texture"`
	FieldCapacity    float64     `json:"field_capacity"`
	WiltingPoint     float64     `json:"wilting_point"`
	InfiltrationRate float64     `json:"infiltration_rate"` // mm/hour
}

// GrowthStage is one of the four FAO-56 crop growth stages.
type GrowthStage string

const (
	StageInitial     GrowthStage = "initial"
	StageDevelopment GrowthStage = "development"
	StageMidSeason   GrowthStage = "midSeason"
	StageLateSeason  GrowthStage = "lateSeason"
)

// ValidGrowthStages is the set of recognised growth stages.
var ValidGrowthStages = map[GrowthStage]bool{
	StageInitial: true, StageDevelopment: true,
	StageMidSeason: true, StageLateSeason: true,
}

// KcStages holds the crop coefficient for each growth stage.
type KcStages struct {
	Initial     float64 `json:"initial" yaml:"initial"`
	Development float64 `json:"development" yaml:"development"`
	MidSeason   float64 `json:"mid_season" yaml:"midSeason"`
	LateSeason  float64 `json:"late_season" yaml:"lateSeason"`
}

// For returns the coefficient for a growth stage. Unknown stages fall back to
// the mid-season (peak demand) value.
func (k KcStages) For(stage GrowthStage) float64 {
	switch stage {
	case StageInitial:
		return k.Initial
	case StageDevelopment:
		return k.Development
	case StageMidSeason:
		return k.MidSeason
	case StageLateSeason:
		return k.LateSeason
	}
	return k.MidSeason
}

// CropProfile holds the physical constants of a crop, FAO-56 style.
type CropProfile struct {
	Name            string   `json:"name"`
	Kc              KcStages `json:"kc"`
	DepletionFactor float64  `json:"depletion_factor"` // p, fraction in (0,1)
	RootDepth       float64  `json:"root_depth"`       // cm
	// StageRootDepth is root depth in meters for
	// [initial/development, mid-season, late-season].
	StageRootDepth [3]float64 `json:"stage_root_depth"`
}

// FieldParameters is the derived per-field configuration the simulator and
// scheduler consume. Produced by refdata.Resolver; callers supplying their
// own must pass ValidateFieldParameters.
type FieldParameters struct {
	CropType        string      `json:"crop_type"`
	SoilType        SoilTexture `json:"soil_type"`
	FieldCapacity   float64     `json:"field_capacity"`   // %
	WiltingPoint    float64     `json:"wilting_point"`    // %
	RootDepth       float64     `json:"root_depth"`       // cm
	StressThreshold float64     `json:"stress_threshold"` // %, irrigation trigger
}

// IrrigationEvent is a pre-planned irrigation supplied by the caller, matched
// to simulation days by exact date equality.
type IrrigationEvent struct {
	Date   string  `json:"date" yaml:"date"`
	Amount float64 `json:"amount" yaml:"amount"` // mm
}

// DailyPrediction is one simulated day of the water balance. All quantities
// are rounded at construction: moisture to 1 decimal, mm values to 2.
type DailyPrediction struct {
	Date          string  `json:"date"`
	Moisture      float64 `json:"moisture"`    // %
	ET            float64 `json:"et"`          // mm
	Rainfall      float64 `json:"rainfall"`    // mm, forecast (not effective)
	Irrigation    float64 `json:"irrigation"`  // mm applied
	Drainage      float64 `json:"drainage"`    // mm lost below root zone
	Deficit       float64 `json:"deficit"`     // mm short of field capacity
	MoistureDepth float64 `json:"moisture_mm"` // mm of water in the root zone
}

// SimulationSummary aggregates a prediction run.
type SimulationSummary struct {
	AvgMoisture     float64 `json:"avg_moisture"`
	MinMoisture     float64 `json:"min_moisture"`
	MaxMoisture     float64 `json:"max_moisture"`
	TotalET         float64 `json:"total_et"`
	TotalRainfall   float64 `json:"total_rainfall"`
	TotalIrrigation float64 `json:"total_irrigation"`
}

// SimulationResult is the output of the water balance simulator.
type SimulationResult struct {
	Predictions []DailyPrediction `json:"predictions"`
	// IrrigationNeeded is a fixed early-warning signal: true when the
	// projected minimum moisture falls within 5 points of the wilting
	// point. Independent of the scheduler's own decision.
	IrrigationNeeded bool `json:"irrigation_needed"`
	// CriticalDate is the first date the root zone reaches the wilting
	// point, empty when never reached within the horizon.
	CriticalDate string            `json:"critical_date,omitempty"`
	Summary      SimulationSummary `json:"summary"`
}

// StressStatus is the discrete classification of a stress index value.
type StressStatus string

const (
	StressOptimal  StressStatus = "optimal"
	StressMild     StressStatus = "mild_stress"
	StressModerate StressStatus = "moderate_stress"
	StressSevere   StressStatus = "severe_stress"
	StressCritical StressStatus = "critical"
)

// StressPoint is the stress index for a single predicted day.
type StressPoint struct {
	Date   string       `json:"date"`
	Index  float64      `json:"index"`
	Status StressStatus `json:"status"`
}

// StressIndexResult is the output of the stress analyzer. CurrentIndex is
// computed from the first prediction day; PredictedIndices covers the whole
// horizon.
type StressIndexResult struct {
	CurrentIndex     float64       `json:"current_index"` // in [0,1]
	Status           StressStatus  `json:"status"`
	Description      string        `json:"description"`
	PredictedIndices []StressPoint `json:"predicted_indices,omitempty"`
}

// Urgency ranks how soon an irrigation should happen.
type Urgency string

const (
	UrgencyNone     Urgency = "none"
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// IrrigationRecommendation is the actionable output of the scheduler.
type IrrigationRecommendation struct {
	IsNeeded      bool    `json:"is_needed"`
	ScheduledDate string  `json:"scheduled_date,omitempty"`
	Amount        float64 `json:"amount"`                  // mm, >= 15 when needed
	AmountLiters  float64 `json:"amount_liters,omitempty"` // derived from field area
	Reason        string  `json:"reason"`
	// DaysUntilStress is the index of the first predicted day at or below
	// the stress threshold; nil when no crossing occurs in the horizon.
	DaysUntilStress *int    `json:"days_until_stress"`
	Urgency         Urgency `json:"urgency"`
	Confidence      float64 `json:"confidence"` // in [0.6,0.95]; fixed 0.85 when not needed
}
