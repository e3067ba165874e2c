// Package pipeline wires parameter resolution, forecast validation, the
// water balance simulation, stress analysis, and irrigation scheduling into
// a single staged run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrosense/agrocore/engine/balance"
	"github.com/agrosense/agrocore/engine/domain"
	"github.com/agrosense/agrocore/engine/irrigation"
	"github.com/agrosense/agrocore/engine/refdata"
	"github.com/agrosense/agrocore/engine/stress"
	"github.com/agrosense/agrocore/pkg/fn"
	"github.com/agrosense/agrocore/pkg/metrics"
	"github.com/google/uuid"
)

// DefaultBatchWorkers bounds concurrency for batch runs.
const DefaultBatchWorkers = 4

// Deps holds the external dependencies for a Runner.
type Deps struct {
	Tables  *refdata.Tables
	Logger  *slog.Logger
	Metrics *metrics.Registry
}

// Request describes one field to simulate.
type Request struct {
	CropType         string                   `json:"crop_type"`
	SoilType         string                   `json:"soil_type"`
	GrowthStage      domain.GrowthStage       `json:"growth_stage,omitempty"`
	Season           irrigation.Season        `json:"season,omitempty"`
	CurrentMoisture  float64                  `json:"current_moisture"`
	FieldArea        float64                  `json:"field_area,omitempty"`
	Forecast         []domain.WeatherDay      `json:"forecast"`
	IrrigationEvents []domain.IrrigationEvent `json:"irrigation_events,omitempty"`
}

// Report is the full outcome of one run.
type Report struct {
	RunID          string                          `json:"run_id"`
	Field          domain.FieldParameters          `json:"field"`
	Simulation     domain.SimulationResult         `json:"simulation"`
	Stress         *domain.StressIndexResult       `json:"stress,omitempty"`
	Recommendation domain.IrrigationRecommendation `json:"recommendation"`
	Comparison     *irrigation.ScheduleComparison  `json:"comparison,omitempty"`
	Strategy       irrigation.Strategy             `json:"strategy"`
	ElapsedMS      int64                           `json:"elapsed_ms"`
}

// resolved is the intermediate state threaded between stages.
type resolved struct {
	req    Request
	field  domain.FieldParameters
	kc     float64
	report Report
}

// Runner executes simulation requests.
type Runner struct {
	resolver *refdata.Resolver
	log      *slog.Logger
	reg      *metrics.Registry

	runs      *metrics.Counter
	failures  *metrics.Counter
	durations *metrics.Histogram
}

// NewRunner builds a Runner. Zero-value Deps fall back to built-in tables,
// the default logger, and a private registry.
func NewRunner(deps Deps) *Runner {
	if deps.Tables == nil {
		deps.Tables = refdata.Builtin()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	return &Runner{
		resolver:  refdata.NewResolver(deps.Tables, deps.Logger),
		log:       deps.Logger,
		reg:       deps.Metrics,
		runs:      deps.Metrics.Counter("agrocore_runs_total", "Completed simulation runs"),
		failures:  deps.Metrics.Counter("agrocore_run_failures_total", "Failed simulation runs"),
		durations: deps.Metrics.Histogram("agrocore_run_duration_seconds", "Run latency", nil),
	}
}

// Metrics exposes the runner's registry for rendering.
func (r *Runner) Metrics() *metrics.Registry { return r.reg }

// Run executes the staged pipeline for one request.
func (r *Runner) Run(ctx context.Context, req Request) (Report, error) {
	runID := uuid.NewString()
	start := time.Now()
	log := r.log.With("run_id", runID, "crop", req.CropType, "soil", req.SoilType)
	log.Info("run.start", "forecast_days", len(req.Forecast))

	stage := fn.Then(
		fn.TracedStage("pipeline.resolve", r.resolveStage()),
		fn.Then(
			fn.TracedStage("pipeline.validate", validateStage),
			fn.Then(
				fn.TracedStage("pipeline.simulate", simulateStage),
				fn.Then(
					fn.TracedStage("pipeline.analyze", analyzeStage),
					fn.TracedStage("pipeline.recommend", recommendStage),
				),
			),
		),
	)

	result := stage(ctx, req)
	r.durations.Since(start)

	if result.IsErr() {
		_, err := result.Unwrap()
		r.failures.Inc()
		log.Error("run.failed", "error", err)
		return Report{}, err
	}

	state, _ := result.Unwrap()
	report := state.report
	report.RunID = runID
	report.ElapsedMS = time.Since(start).Milliseconds()

	r.runs.Inc()
	r.reg.Counter(metrics.WithLabels("agrocore_runs_by_crop_total", "crop", state.field.CropType), "").Inc()
	log.Info("run.done",
		"irrigation_needed", report.Recommendation.IsNeeded,
		"urgency", report.Recommendation.Urgency,
		"min_moisture", report.Simulation.Summary.MinMoisture,
	)
	return report, nil
}

// RunBatch executes requests concurrently, preserving order. The first
// failed request fails the batch.
func (r *Runner) RunBatch(ctx context.Context, reqs []Request) ([]Report, error) {
	results := fn.ParMapResult(reqs, DefaultBatchWorkers, func(req Request) fn.Result[Report] {
		return fn.FromPair(r.Run(ctx, req))
	})
	return fn.Collect(results).Unwrap()
}

// --- Pipeline Stages ---

func (r *Runner) resolveStage() fn.Stage[Request, resolved] {
	return func(_ context.Context, req Request) fn.Result[resolved] {
		field := r.resolver.Resolve(req.CropType, req.SoilType)
		stage := req.GrowthStage
		if stage == "" {
			stage = domain.StageMidSeason
		}
		return fn.Ok(resolved{
			req:   req,
			field: field,
			kc:    r.resolver.Kc(req.CropType, stage),
		})
	}
}

var validateStage fn.Stage[resolved, resolved] = func(_ context.Context, s resolved) fn.Result[resolved] {
	if err := domain.ValidateFieldParameters(s.field); err != nil {
		return fn.Err[resolved](err)
	}
	if s.req.CurrentMoisture < 0 || s.req.CurrentMoisture > 100 {
		return fn.Err[resolved](domain.NewValidationError("current_moisture",
			fmt.Sprintf("%.1f", s.req.CurrentMoisture), domain.ErrMoistureOutOfRange))
	}
	if err := domain.ValidateForecast(s.req.Forecast); err != nil {
		return fn.Err[resolved](err)
	}
	if err := domain.ValidateIrrigationEvents(s.req.IrrigationEvents); err != nil {
		return fn.Err[resolved](err)
	}
	return fn.Ok(s)
}

var simulateStage fn.Stage[resolved, resolved] = func(_ context.Context, s resolved) fn.Result[resolved] {
	sim, err := balance.Simulate(balance.Input{
		CurrentMoisture:  s.req.CurrentMoisture,
		FieldCapacity:    s.field.FieldCapacity,
		WiltingPoint:     s.field.WiltingPoint,
		RootDepth:        s.field.RootDepth,
		Forecast:         s.req.Forecast,
		CropKc:           s.kc,
		SoilType:         s.field.SoilType,
		IrrigationEvents: s.req.IrrigationEvents,
	})
	if err != nil {
		return fn.Err[resolved](err)
	}
	s.report.Field = s.field
	s.report.Simulation = sim
	return fn.Ok(s)
}

var analyzeStage fn.Stage[resolved, resolved] = func(_ context.Context, s resolved) fn.Result[resolved] {
	preds := s.report.Simulation.Predictions
	if len(preds) == 0 {
		return fn.Ok(s)
	}
	trend, err := stress.AnalyzeTrend(preds, s.field.FieldCapacity, s.field.WiltingPoint)
	if err != nil {
		return fn.Err[resolved](err)
	}
	s.report.Stress = &trend
	return fn.Ok(s)
}

var recommendStage fn.Stage[resolved, resolved] = func(_ context.Context, s resolved) fn.Result[resolved] {
	rec, err := irrigation.Schedule(irrigation.Params{
		Simulation:      s.report.Simulation,
		StressThreshold: s.field.StressThreshold,
		FieldCapacity:   s.field.FieldCapacity,
		WiltingPoint:    s.field.WiltingPoint,
		RootDepth:       s.field.RootDepth,
		FieldArea:       s.req.FieldArea,
	})
	if err != nil {
		return fn.Err[resolved](err)
	}
	s.report.Recommendation = rec

	if preds := s.report.Simulation.Predictions; len(preds) > 0 {
		cmp, err := irrigation.EvaluateScheduleOptions(preds, s.field.StressThreshold, s.field.FieldCapacity)
		if err != nil {
			return fn.Err[resolved](err)
		}
		s.report.Comparison = &cmp
	}

	season := s.req.Season
	if season == "" {
		season = irrigation.SeasonSummer
	}
	stage := s.req.GrowthStage
	if stage == "" {
		stage = domain.StageMidSeason
	}
	s.report.Strategy = irrigation.SuggestStrategy(s.field.CropType, stage, season)
	return fn.Ok(s)
}
