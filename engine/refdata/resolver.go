package refdata

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/agrosense/agrocore/engine/domain"
)

// Tables is an immutable-by-convention reference table set. Build one with
// Builtin or Load and share it freely across concurrent simulations.
type Tables struct {
	Crops map[string]domain.CropProfile
	Soils map[domain.SoilTexture]domain.SoilProfile
}

// Builtin returns a fresh copy of the built-in reference tables.
func Builtin() *Tables {
	t := &Tables{
		Crops: make(map[string]domain.CropProfile, len(builtinCrops)),
		Soils: make(map[domain.SoilTexture]domain.SoilProfile, len(builtinSoils)),
	}
	for k, v := range builtinCrops {
		t.Crops[k] = v
	}
	for k, v := range builtinSoils {
		t.Soils[k] = v
	}
	return t
}

// Crop looks up a crop profile by case-insensitive name.
func (t *Tables) Crop(name string) (domain.CropProfile, bool) {
	c, ok := t.Crops[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Soil looks up a soil profile by case-insensitive texture name.
func (t *Tables) Soil(name string) (domain.SoilProfile, bool) {
	s, ok := t.Soils[domain.SoilTexture(strings.ToLower(strings.TrimSpace(name)))]
	return s, ok
}

// CropNames returns the known crop keys, sorted.
func (t *Tables) CropNames() []string {
	names := make([]string, 0, len(t.Crops))
	for k := range t.Crops {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Resolver maps crop and soil names to field parameters. Unknown names never
// fail: the documented defaults are substituted and a warning logged, since
// farm data is routinely incomplete and a degraded answer beats no answer.
type Resolver struct {
	Tables *Tables
	Logger *slog.Logger
}

// NewResolver creates a Resolver; nil arguments get the built-in tables and
// the default logger.
func NewResolver(tables *Tables, logger *slog.Logger) *Resolver {
	if tables == nil {
		tables = Builtin()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{Tables: tables, Logger: logger}
}

// Resolve derives the field parameters for a crop/soil pair. The stress
// threshold is wp + (fc-wp)*(1-p), rounded to 1 decimal, and always lands
// inside [wp, fc] for p in (0,1).
func (r *Resolver) Resolve(cropType, soilType string) domain.FieldParameters {
	crop, ok := r.Tables.Crop(cropType)
	if !ok {
		r.Logger.Warn("unknown crop, using generic profile", "crop", cropType)
		crop = DefaultCropProfile
	}

	soil, ok := r.Tables.Soil(soilType)
	if !ok {
		r.Logger.Warn("unknown soil type, using loamy defaults", "soil", soilType)
		soil = r.Tables.Soils[DefaultSoilTexture]
	}

	threshold := soil.WiltingPoint +
		(soil.FieldCapacity-soil.WiltingPoint)*(1-crop.DepletionFactor)

	return domain.FieldParameters{
		CropType:        strings.ToLower(strings.TrimSpace(cropType)),
		SoilType:        soil.Texture,
		FieldCapacity:   soil.FieldCapacity,
		WiltingPoint:    soil.WiltingPoint,
		RootDepth:       crop.RootDepth,
		StressThreshold: math.Round(threshold*10) / 10,
	}
}

// Kc returns the crop coefficient for a crop and growth stage; 1.0 for
// unknown crops.
func (r *Resolver) Kc(cropType string, stage domain.GrowthStage) float64 {
	crop, ok := r.Tables.Crop(cropType)
	if !ok {
		r.Logger.Warn("unknown crop, using Kc=1.0", "crop", cropType)
		crop = DefaultCropProfile
	}
	return crop.Kc.For(stage)
}

// DepletionFactor returns the critical depletion factor p for a crop.
func (r *Resolver) DepletionFactor(cropType string) float64 {
	crop, ok := r.Tables.Crop(cropType)
	if !ok {
		return DefaultCropProfile.DepletionFactor
	}
	return crop.DepletionFactor
}

// RootDepth returns the typical root depth for a crop, in cm.
func (r *Resolver) RootDepth(cropType string) float64 {
	crop, ok := r.Tables.Crop(cropType)
	if !ok {
		return DefaultCropProfile.RootDepth
	}
	return crop.RootDepth
}

// StageRootDepth returns the root depth in meters for a crop at a growth
// stage: initial and development share the establishment depth.
func (r *Resolver) StageRootDepth(cropType string, stage domain.GrowthStage) float64 {
	crop, ok := r.Tables.Crop(cropType)
	if !ok {
		crop = DefaultCropProfile
	}
	switch stage {
	case domain.StageInitial, domain.StageDevelopment:
		return crop.StageRootDepth[0]
	case domain.StageMidSeason:
		return crop.StageRootDepth[1]
	default:
		return crop.StageRootDepth[2]
	}
}
