// Package main implements the agrosim command line interface around the
// simulation pipeline: single and batch runs, reference table inspection,
// and a standalone reference evapotranspiration calculator.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/agrosense/agrocore/engine/domain"
	"github.com/agrosense/agrocore/engine/et"
	"github.com/agrosense/agrocore/engine/irrigation"
	"github.com/agrosense/agrocore/engine/pipeline"
	"github.com/agrosense/agrocore/engine/refdata"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config holds all environment-based configuration.
type Config struct {
	TablesPath string
	LogLevel   string
}

func loadConfig() Config {
	return Config{
		TablesPath: envOr("AGROCORE_TABLES", ""),
		LogLevel:   envOr("AGROCORE_LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "agrosim",
		Short: "Soil water balance simulation and irrigation scheduling",
		Long: "agrosim simulates the root-zone water balance from a weather forecast\n" +
			"and recommends when and how much to irrigate.",
	}
	rootCmd.PersistentFlags().String("tables", cfg.TablesPath, "YAML file with crop/soil table overrides")

	rootCmd.AddCommand(newRunCmd(logger), newCropsCmd(), newSoilsCmd(), newET0Cmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadTables resolves the --tables flag into reference tables.
func loadTables(cmd *cobra.Command) (*refdata.Tables, error) {
	path, _ := cmd.Flags().GetString("tables")
	if path == "" {
		return refdata.Builtin(), nil
	}
	return refdata.Load(path)
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation for one field or a batch file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := loadTables(cmd)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(pipeline.Deps{Tables: tables, Logger: logger})

			output, _ := cmd.Flags().GetString("output")
			showMetrics, _ := cmd.Flags().GetBool("metrics")
			ctx := context.Background()

			if batchPath, _ := cmd.Flags().GetString("batch"); batchPath != "" {
				var reqs []pipeline.Request
				if err := readJSON(batchPath, &reqs); err != nil {
					return err
				}
				reports, err := runner.RunBatch(ctx, reqs)
				if err != nil {
					return err
				}
				if err := printReports(cmd, reports, output); err != nil {
					return err
				}
				if showMetrics {
					cmd.Print(runner.Metrics().Render())
				}
				return nil
			}

			req, err := requestFromFlags(cmd)
			if err != nil {
				return err
			}
			report, err := runner.Run(ctx, req)
			if err != nil {
				return err
			}
			if err := printReports(cmd, []pipeline.Report{report}, output); err != nil {
				return err
			}
			if showMetrics {
				cmd.Print(runner.Metrics().Render())
			}
			return nil
		},
	}

	cmd.Flags().String("forecast", "", "JSON file with the weather forecast (array of days)")
	cmd.Flags().String("events", "", "JSON file with pre-planned irrigation events")
	cmd.Flags().String("batch", "", "JSON file with an array of full requests; overrides the other input flags")
	cmd.Flags().String("crop", "wheat", "crop type")
	cmd.Flags().String("soil", "loamy", "soil texture (sandy, loamy, clay)")
	cmd.Flags().Float64("moisture", 0, "current soil moisture, % volumetric")
	cmd.Flags().String("stage", string(domain.StageMidSeason), "growth stage")
	cmd.Flags().String("season", string(irrigation.SeasonSummer), "season (summer, monsoon, winter)")
	cmd.Flags().Float64("area", 0, "field area in hectares, for volume output")
	cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	cmd.Flags().Bool("metrics", false, "print run metrics after the report")
	return cmd
}

func requestFromFlags(cmd *cobra.Command) (pipeline.Request, error) {
	forecastPath, _ := cmd.Flags().GetString("forecast")
	if forecastPath == "" {
		return pipeline.Request{}, fmt.Errorf("--forecast or --batch is required")
	}

	var forecast []domain.WeatherDay
	if err := readJSON(forecastPath, &forecast); err != nil {
		return pipeline.Request{}, err
	}

	var events []domain.IrrigationEvent
	if eventsPath, _ := cmd.Flags().GetString("events"); eventsPath != "" {
		if err := readJSON(eventsPath, &events); err != nil {
			return pipeline.Request{}, err
		}
	}

	crop, _ := cmd.Flags().GetString("crop")
	soil, _ := cmd.Flags().GetString("soil")
	moisture, _ := cmd.Flags().GetFloat64("moisture")
	stage, _ := cmd.Flags().GetString("stage")
	season, _ := cmd.Flags().GetString("season")
	area, _ := cmd.Flags().GetFloat64("area")

	return pipeline.Request{
		CropType:         crop,
		SoilType:         soil,
		GrowthStage:      domain.GrowthStage(stage),
		Season:           irrigation.Season(season),
		CurrentMoisture:  moisture,
		FieldArea:        area,
		Forecast:         forecast,
		IrrigationEvents: events,
	}, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func printReports(cmd *cobra.Command, reports []pipeline.Report, output string) error {
	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if len(reports) == 1 {
			return enc.Encode(reports[0])
		}
		return enc.Encode(reports)
	}
	for i, r := range reports {
		if i > 0 {
			cmd.Println()
		}
		printReportText(cmd, r)
	}
	return nil
}

func printReportText(cmd *cobra.Command, r pipeline.Report) {
	f := r.Field
	cmd.Printf("Field: %s on %s soil (fc %.0f%%, wp %.0f%%, threshold %.1f%%, roots %.0fcm)\n",
		f.CropType, f.SoilType, f.FieldCapacity, f.WiltingPoint, f.StressThreshold, f.RootDepth)
	cmd.Println(strings.Repeat("-", 72))

	for _, p := range r.Simulation.Predictions {
		cmd.Printf("%s  moisture %5.1f%%  et %5.2fmm  rain %6.2fmm  drain %5.2fmm\n",
			p.Date, p.Moisture, p.ET, p.Rainfall, p.Drainage)
	}

	s := r.Simulation.Summary
	cmd.Printf("Summary: avg %.1f%%  min %.1f%%  max %.1f%%  et %.2fmm  rain %.2fmm\n",
		s.AvgMoisture, s.MinMoisture, s.MaxMoisture, s.TotalET, s.TotalRainfall)
	if r.Simulation.CriticalDate != "" {
		cmd.Printf("Critical date: %s\n", r.Simulation.CriticalDate)
	}
	if r.Stress != nil {
		cmd.Printf("Stress: index %.2f (%s) - %s\n", r.Stress.CurrentIndex, r.Stress.Status, r.Stress.Description)
	}

	rec := r.Recommendation
	if rec.IsNeeded {
		cmd.Printf("Irrigation: %s, %.0fmm", rec.ScheduledDate, rec.Amount)
		if rec.AmountLiters > 0 {
			cmd.Printf(" (%.0f liters)", rec.AmountLiters)
		}
		cmd.Printf(", urgency %s, confidence %.2f\n", rec.Urgency, rec.Confidence)
		cmd.Printf("  %s\n", rec.Reason)
	} else {
		cmd.Printf("Irrigation: not needed. %s\n", rec.Reason)
	}
	cmd.Printf("Strategy: %s, %s via %s\n", r.Strategy.Frequency, r.Strategy.Depth, r.Strategy.Method)
}

func newCropsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crops",
		Short: "List the crop reference table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := loadTables(cmd)
			if err != nil {
				return err
			}
			cmd.Printf("%-12s %6s %6s %6s %6s %5s %6s\n",
				"CROP", "KcINI", "KcDEV", "KcMID", "KcLATE", "p", "ROOTcm")
			for _, name := range tables.CropNames() {
				c, _ := tables.Crop(name)
				cmd.Printf("%-12s %6.2f %6.2f %6.2f %6.2f %5.2f %6.0f\n",
					name, c.Kc.Initial, c.Kc.Development, c.Kc.MidSeason, c.Kc.LateSeason,
					c.DepletionFactor, c.RootDepth)
			}
			return nil
		},
	}
}

func newSoilsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "soils",
		Short: "List the soil reference table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := loadTables(cmd)
			if err != nil {
				return err
			}
			cmd.Printf("%-8s %6s %6s %10s\n", "SOIL", "FC%", "WP%", "INFILmm/h")
			for _, texture := range []domain.SoilTexture{domain.SoilSandy, domain.SoilLoamy, domain.SoilClay} {
				s, ok := tables.Soil(string(texture))
				if !ok {
					continue
				}
				cmd.Printf("%-8s %6.0f %6.0f %10.0f\n",
					s.Texture, s.FieldCapacity, s.WiltingPoint, s.InfiltrationRate)
			}
			return nil
		},
	}
}

func newET0Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "et0",
		Short: "Compute reference evapotranspiration for one day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmin, _ := cmd.Flags().GetFloat64("tmin")
			tmax, _ := cmd.Flags().GetFloat64("tmax")
			humidity, _ := cmd.Flags().GetFloat64("humidity")
			wind, _ := cmd.Flags().GetFloat64("wind")
			date, _ := cmd.Flags().GetString("date")
			climate, _ := cmd.Flags().GetString("climate")

			in := et.Input{
				TempMin:   tmin,
				TempMax:   tmax,
				Humidity:  humidity,
				WindSpeed: wind,
				Date:      date,
			}
			if cmd.Flags().Changed("lat") {
				lat, _ := cmd.Flags().GetFloat64("lat")
				in.Latitude = &lat
			}

			et0, tier := et.Estimate(in)
			cmd.Printf("ET0: %.2f mm/day (%s)\n", et0, tier)

			if ok, warning := et.Check(et0, et.Climate(climate)); !ok {
				cmd.Printf("Warning: %s\n", warning)
			}
			return nil
		},
	}
	cmd.Flags().Float64("tmin", 0, "minimum temperature, °C")
	cmd.Flags().Float64("tmax", 0, "maximum temperature, °C")
	cmd.Flags().Float64("humidity", 50, "relative humidity, %")
	cmd.Flags().Float64("wind", 0, "wind speed at 2m, m/s")
	cmd.Flags().Float64("lat", 0, "latitude in degrees; enables the radiation-based estimate")
	cmd.Flags().String("date", "", "calendar date (YYYY-MM-DD), used with --lat")
	cmd.Flags().String("climate", "semi-arid", "climate for the plausibility check")
	return cmd
}
