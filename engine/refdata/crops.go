// Package refdata holds the crop and soil reference tables and resolves a
// crop/soil pair into the field parameters the simulation pipeline consumes.
//
// The tables are passed explicitly (never a package-level mutable) so
// concurrent simulations share nothing; Builtin returns a fresh copy and
// Load can merge YAML overrides on top of it.
package refdata

import "github.com/agrosense/agrocore/engine/domain"

// builtinCrops are FAO-56 (Irrigation and Drainage Paper 56) values: Kc per
// growth stage, critical depletion factor p, typical root depth in cm, and
// stage root depths in meters for [initial/development, mid, late].
var builtinCrops = map[string]domain.CropProfile{
	"rice": {
		Name:            "Rice",
		Kc:              domain.KcStages{Initial: 1.05, Development: 1.10, MidSeason: 1.20, LateSeason: 0.90},
		DepletionFactor: 0.20, // very sensitive to water stress
		RootDepth:       50,
		StageRootDepth:  [3]float64{0.20, 0.30, 0.35},
	},
	"wheat": {
		Name:            "Wheat",
		Kc:              domain.KcStages{Initial: 0.30, Development: 0.75, MidSeason: 1.15, LateSeason: 0.40},
		DepletionFactor: 0.55,
		RootDepth:       100,
		StageRootDepth:  [3]float64{0.30, 1.00, 1.20},
	},
	"maize": {
		Name:            "Maize",
		Kc:              domain.KcStages{Initial: 0.40, Development: 0.80, MidSeason: 1.20, LateSeason: 0.60},
		DepletionFactor: 0.55,
		RootDepth:       100,
		StageRootDepth:  [3]float64{0.30, 1.20, 1.50},
	},
	"sugarcane": {
		Name:            "Sugarcane",
		Kc:              domain.KcStages{Initial: 0.40, Development: 0.75, MidSeason: 1.25, LateSeason: 0.75},
		DepletionFactor: 0.65,
		RootDepth:       120,
		StageRootDepth:  [3]float64{0.40, 1.50, 1.80},
	},
	"tomato": {
		Name:            "Tomato",
		Kc:              domain.KcStages{Initial: 0.60, Development: 0.90, MidSeason: 1.15, LateSeason: 0.80},
		DepletionFactor: 0.40,
		RootDepth:       70,
		StageRootDepth:  [3]float64{0.25, 0.60, 0.80},
	},
	"soybean": {
		Name:            "Soybean",
		Kc:              domain.KcStages{Initial: 0.40, Development: 0.70, MidSeason: 1.15, LateSeason: 0.50},
		DepletionFactor: 0.50,
		RootDepth:       80,
		StageRootDepth:  [3]float64{0.30, 0.80, 1.00},
	},
	"groundnut": {
		Name:            "Groundnut",
		Kc:              domain.KcStages{Initial: 0.40, Development: 0.70, MidSeason: 1.15, LateSeason: 0.60},
		DepletionFactor: 0.50,
		RootDepth:       60,
		StageRootDepth:  [3]float64{0.20, 0.50, 0.60},
	},
	"cotton": {
		Name:            "Cotton",
		Kc:              domain.KcStages{Initial: 0.35, Development: 0.70, MidSeason: 1.15, LateSeason: 0.70},
		DepletionFactor: 0.65,
		RootDepth:       120,
		StageRootDepth:  [3]float64{0.30, 1.20, 1.50},
	},
	"banana": {
		Name:            "Banana",
		Kc:              domain.KcStages{Initial: 0.50, Development: 0.80, MidSeason: 1.10, LateSeason: 1.00},
		DepletionFactor: 0.35,
		RootDepth:       60,
		StageRootDepth:  [3]float64{0.30, 0.50, 0.60},
	},
	"potato": {
		Name:            "Potato",
		Kc:              domain.KcStages{Initial: 0.50, Development: 0.75, MidSeason: 1.15, LateSeason: 0.75},
		DepletionFactor: 0.35,
		RootDepth:       60,
		StageRootDepth:  [3]float64{0.25, 0.60, 0.70},
	},
	"onion": {
		Name:            "Onion",
		Kc:              domain.KcStages{Initial: 0.50, Development: 0.75, MidSeason: 1.05, LateSeason: 0.85},
		DepletionFactor: 0.30,
		RootDepth:       40,
		StageRootDepth:  [3]float64{0.20, 0.40, 0.50},
	},
	"cabbage": {
		Name:            "Cabbage",
		Kc:              domain.KcStages{Initial: 0.40, Development: 0.75, MidSeason: 1.05, LateSeason: 0.95},
		DepletionFactor: 0.45,
		RootDepth:       50,
		StageRootDepth:  [3]float64{0.20, 0.40, 0.50},
	},
	"mustard": {
		Name:            "Mustard",
		Kc:              domain.KcStages{Initial: 0.35, Development: 0.70, MidSeason: 1.10, LateSeason: 0.60},
		DepletionFactor: 0.55,
		RootDepth:       70,
		StageRootDepth:  [3]float64{0.25, 0.60, 0.80},
	},
	"sunflower": {
		Name:            "Sunflower",
		Kc:              domain.KcStages{Initial: 0.35, Development: 0.75, MidSeason: 1.15, LateSeason: 0.60},
		DepletionFactor: 0.60,
		RootDepth:       100,
		StageRootDepth:  [3]float64{0.30, 0.80, 1.20},
	},
}

// Fallbacks for unknown reference keys: a generic crop and loamy soil.
var (
	// DefaultCropProfile is substituted for unknown crops: Kc 1.0 at every
	// stage (the reference surface itself), p 0.5, 80cm root zone.
	DefaultCropProfile = domain.CropProfile{
		Name:            "Generic",
		Kc:              domain.KcStages{Initial: 1.0, Development: 1.0, MidSeason: 1.0, LateSeason: 1.0},
		DepletionFactor: 0.50,
		RootDepth:       80,
		StageRootDepth:  [3]float64{0.30, 0.80, 1.00},
	}

	// DefaultSoilTexture is substituted for unknown soil keys.
	DefaultSoilTexture = domain.SoilLoamy
)
