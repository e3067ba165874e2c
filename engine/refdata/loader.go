package refdata

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agrosense/agrocore/engine/domain"
)

// cropSpec and soilSpec are the YAML override shapes.
type cropSpec struct {
	Name            string          `yaml:"name"`
	Kc              domain.KcStages `yaml:"kc"`
	DepletionFactor float64         `yaml:"depletion_factor"`
	RootDepth       float64         `yaml:"root_depth"`
	StageRootDepth  []float64       `yaml:"stage_root_depth"`
}

type soilSpec struct {
	FieldCapacity    float64 `yaml:"field_capacity"`
	WiltingPoint     float64 `yaml:"wilting_point"`
	InfiltrationRate float64 `yaml:"infiltration_rate"`
}

type tablesFile struct {
	Crops map[string]cropSpec `yaml:"crops"`
	Soils map[string]soilSpec `yaml:"soils"`
}

// Load reads YAML reference-table overrides and merges them over the
// built-ins. Entries in the file replace or extend built-in entries;
// internally inconsistent ones are rejected with a typed validation error —
// an explicit bad profile is a caller mistake, not missing data.
func Load(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference tables %s: %w", path, err)
	}

	var file tablesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse reference tables %s: %w", path, err)
	}

	tables := Builtin()

	for name, spec := range file.Crops {
		key := strings.ToLower(strings.TrimSpace(name))
		crop, err := spec.toProfile(key)
		if err != nil {
			return nil, err
		}
		tables.Crops[key] = crop
	}

	for name, spec := range file.Soils {
		texture := domain.SoilTexture(strings.ToLower(strings.TrimSpace(name)))
		if err := domain.ValidateSoilBounds(spec.FieldCapacity, spec.WiltingPoint); err != nil {
			return nil, fmt.Errorf("soil %q: %w", name, err)
		}
		tables.Soils[texture] = domain.SoilProfile{
			Texture:          texture,
			FieldCapacity:    spec.FieldCapacity,
			WiltingPoint:     spec.WiltingPoint,
			InfiltrationRate: spec.InfiltrationRate,
		}
	}

	return tables, nil
}

func (s cropSpec) toProfile(key string) (domain.CropProfile, error) {
	var zero domain.CropProfile
	for stage, kc := range map[string]float64{
		"initial": s.Kc.Initial, "development": s.Kc.Development,
		"midSeason": s.Kc.MidSeason, "lateSeason": s.Kc.LateSeason,
	} {
		if kc <= 0 {
			return zero, fmt.Errorf("crop %q: %w", key,
				domain.NewValidationError("kc."+stage, fmt.Sprintf("%.2f", kc), domain.ErrKcOutOfRange))
		}
	}
	if s.DepletionFactor <= 0 || s.DepletionFactor >= 1 {
		return zero, fmt.Errorf("crop %q: %w", key,
			domain.NewValidationError("depletion_factor", fmt.Sprintf("%.2f", s.DepletionFactor), domain.ErrDepletionOutOfRange))
	}
	if s.RootDepth <= 0 {
		return zero, fmt.Errorf("crop %q: %w", key,
			domain.NewValidationError("root_depth", fmt.Sprintf("%.1f", s.RootDepth), domain.ErrRootDepthOutOfRange))
	}

	crop := domain.CropProfile{
		Name:            s.Name,
		Kc:              s.Kc,
		DepletionFactor: s.DepletionFactor,
		RootDepth:       s.RootDepth,
	}
	if crop.Name == "" {
		crop.Name = strings.ToUpper(key[:1]) + key[1:]
	}
	switch len(s.StageRootDepth) {
	case 3:
		copy(crop.StageRootDepth[:], s.StageRootDepth)
	case 0:
		// Approximate stage depths from the typical depth (cm -> m).
		m := s.RootDepth / 100
		crop.StageRootDepth = [3]float64{m * 0.3, m, m * 1.2}
	default:
		return zero, fmt.Errorf("crop %q: stage_root_depth needs exactly 3 values, got %d", key, len(s.StageRootDepth))
	}
	return crop, nil
}
