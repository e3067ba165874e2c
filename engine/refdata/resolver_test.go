package refdata

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/agrosense/agrocore/engine/domain"
)

func quietResolver(t *Tables) *Resolver {
	return NewResolver(t, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestResolve_KnownPairs(t *testing.T) {
	r := quietResolver(nil)
	cases := []struct {
		crop, soil    string
		wantFC        float64
		wantWP        float64
		wantRoot      float64
		wantThreshold float64
	}{
		{"wheat", "loamy", 35, 15, 100, 24.0},  // 15 + 20*(1-0.55)
		{"rice", "clay", 45, 20, 50, 40.0},     // 20 + 25*(1-0.20)
		{"tomato", "sandy", 25, 10, 70, 19.0},  // 10 + 15*(1-0.40)
		{"cotton", "loamy", 35, 15, 120, 22.0}, // 15 + 20*(1-0.65)
	}
	for _, c := range cases {
		p := r.Resolve(c.crop, c.soil)
		if p.FieldCapacity != c.wantFC || p.WiltingPoint != c.wantWP {
			t.Errorf("%s/%s: got fc=%v wp=%v", c.crop, c.soil, p.FieldCapacity, p.WiltingPoint)
		}
		if p.RootDepth != c.wantRoot {
			t.Errorf("%s/%s: root depth %v, want %v", c.crop, c.soil, p.RootDepth, c.wantRoot)
		}
		if p.StressThreshold != c.wantThreshold {
			t.Errorf("%s/%s: threshold %v, want %v", c.crop, c.soil, p.StressThreshold, c.wantThreshold)
		}
		if err := domain.ValidateFieldParameters(p); err != nil {
			t.Errorf("%s/%s: resolver output must self-validate: %v", c.crop, c.soil, err)
		}
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	r := quietResolver(nil)
	a := r.Resolve("WhEaT", "LOAMY")
	b := r.Resolve("wheat", "loamy")
	if a != b {
		t.Errorf("case should not matter: %+v vs %+v", a, b)
	}
	if a.CropType != "wheat" {
		t.Errorf("crop type should be normalised, got %q", a.CropType)
	}
}

func TestResolve_UnknownCropUsesGenericDefault(t *testing.T) {
	r := quietResolver(nil)
	p := r.Resolve("dragonfruit", "loamy")
	if p.RootDepth != 80 {
		t.Errorf("generic root depth should be 80cm, got %v", p.RootDepth)
	}
	// p=0.5 on loamy: 15 + 20*0.5
	if p.StressThreshold != 25.0 {
		t.Errorf("generic threshold should be 25.0, got %v", p.StressThreshold)
	}
}

func TestResolve_UnknownSoilFallsBackToLoamy(t *testing.T) {
	r := quietResolver(nil)
	p := r.Resolve("wheat", "volcanic")
	if p.SoilType != domain.SoilLoamy || p.FieldCapacity != 35 || p.WiltingPoint != 15 {
		t.Errorf("expected loamy fallback, got %+v", p)
	}
}

func TestResolve_ThresholdAlwaysInBand(t *testing.T) {
	r := quietResolver(nil)
	for _, crop := range append(r.Tables.CropNames(), "unknown-crop") {
		for soil := range r.Tables.Soils {
			p := r.Resolve(crop, string(soil))
			if p.StressThreshold < p.WiltingPoint || p.StressThreshold > p.FieldCapacity {
				t.Errorf("%s/%s: threshold %v outside [%v,%v]",
					crop, soil, p.StressThreshold, p.WiltingPoint, p.FieldCapacity)
			}
		}
	}
}

func TestKcAccessors(t *testing.T) {
	r := quietResolver(nil)
	if kc := r.Kc("wheat", domain.StageMidSeason); kc != 1.15 {
		t.Errorf("wheat mid-season Kc = %v, want 1.15", kc)
	}
	if kc := r.Kc("dragonfruit", domain.StageInitial); kc != 1.0 {
		t.Errorf("unknown crop Kc should default to 1.0, got %v", kc)
	}
	if p := r.DepletionFactor("rice"); p != 0.20 {
		t.Errorf("rice depletion factor = %v, want 0.20", p)
	}
	if d := r.RootDepth("sugarcane"); d != 120 {
		t.Errorf("sugarcane root depth = %v, want 120", d)
	}
	if d := r.StageRootDepth("maize", domain.StageMidSeason); d != 1.20 {
		t.Errorf("maize mid-season root depth = %v m, want 1.20", d)
	}
	if d := r.StageRootDepth("maize", domain.StageDevelopment); d != 0.30 {
		t.Errorf("maize development root depth = %v m, want 0.30", d)
	}
}

func TestAvailableWaterCapacity(t *testing.T) {
	// (35-15)/100 * 100cm * 10 = 200mm
	if awc := AvailableWaterCapacity(35, 15, 100); awc != 200 {
		t.Errorf("AWC = %v, want 200", awc)
	}
}

func TestLoad_MergesOverBuiltins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	content := `
crops:
  quinoa:
    kc: {initial: 0.5, development: 0.8, midSeason: 1.05, lateSeason: 0.7}
    depletion_factor: 0.45
    root_depth: 90
soils:
  loamy:
    field_capacity: 38
    wilting_point: 16
    infiltration_rate: 12
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	crop, ok := tables.Crop("quinoa")
	if !ok || crop.Kc.MidSeason != 1.05 || crop.RootDepth != 90 {
		t.Errorf("quinoa not loaded correctly: %+v ok=%v", crop, ok)
	}
	// Derived stage depths from the 90cm typical depth.
	if crop.StageRootDepth[1] != 0.9 {
		t.Errorf("derived mid-season depth = %v, want 0.9", crop.StageRootDepth[1])
	}

	soil, _ := tables.Soil("loamy")
	if soil.FieldCapacity != 38 || soil.WiltingPoint != 16 {
		t.Errorf("loamy override not applied: %+v", soil)
	}

	// Untouched built-ins survive the merge.
	if _, ok := tables.Crop("wheat"); !ok {
		t.Errorf("built-in crops should survive a merge")
	}
	if sandy, _ := tables.Soil("sandy"); sandy.FieldCapacity != 25 {
		t.Errorf("built-in soils should survive a merge")
	}
}

func TestLoad_RejectsInconsistentEntries(t *testing.T) {
	dir := t.TempDir()

	badSoil := filepath.Join(dir, "soil.yaml")
	os.WriteFile(badSoil, []byte("soils:\n  loamy: {field_capacity: 20, wilting_point: 25}\n"), 0o644)
	if _, err := Load(badSoil); !errors.Is(err, domain.ErrCapacityBelowWilting) {
		t.Errorf("expected ErrCapacityBelowWilting, got %v", err)
	}

	badCrop := filepath.Join(dir, "crop.yaml")
	os.WriteFile(badCrop, []byte(`
crops:
  quinoa:
    kc: {initial: 0.5, development: 0.8, midSeason: 1.05, lateSeason: 0.7}
    depletion_factor: 1.4
    root_depth: 90
`), 0o644)
	if _, err := Load(badCrop); !errors.Is(err, domain.ErrDepletionOutOfRange) {
		t.Errorf("expected ErrDepletionOutOfRange, got %v", err)
	}

	zeroKc := filepath.Join(dir, "kc.yaml")
	os.WriteFile(zeroKc, []byte(`
crops:
  quinoa:
    kc: {initial: 0, development: 0.8, midSeason: 1.05, lateSeason: 0.7}
    depletion_factor: 0.45
    root_depth: 90
`), 0o644)
	if _, err := Load(zeroKc); !errors.Is(err, domain.ErrKcOutOfRange) {
		t.Errorf("expected ErrKcOutOfRange, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/tables.yaml"); err == nil {
		t.Errorf("expected error for missing file")
	}
}
