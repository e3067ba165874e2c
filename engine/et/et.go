// Package et implements reference evapotranspiration (ET0) estimators.
//
// Two precision tiers are provided and selected explicitly, never via error
// fallback: a radiation-based Hargreaves-Samani method for callers that know
// latitude and date, and a temperature-only Hargreaves method for short
// per-day records. The water balance simulator always uses the temperature
// tier; both are validated independently.
package et

import (
	"math"
	"time"

	"github.com/agrosense/agrocore/engine/domain"
	"github.com/agrosense/agrocore/pkg/fn"
)

// Empirical constants from the Hargreaves family of equations and FAO-56.
const (
	hargreavesCoeff  = 0.0023
	hargreavesOffset = 17.8   // °C
	solarConstant    = 0.0820 // Gsc, MJ/m2/min
)

// Tier names the estimation method used.
type Tier string

const (
	TierRadiation   Tier = "radiation"
	TierTemperature Tier = "temperature"
)

// Input carries everything an estimate may use. Latitude is a pointer because
// 0 is a valid latitude; Date is an ISO calendar day and may be empty.
type Input struct {
	TempMin   float64
	TempMax   float64
	Humidity  float64 // % relative; <= 0 means unknown
	WindSpeed float64 // m/s at 2m
	Latitude  *float64
	Date      string
}

// Estimate computes ET0 in mm/day, picking the radiation tier when latitude
// and a parseable date are available and the temperature tier otherwise. The
// chosen tier is returned so callers can audit precision.
func Estimate(in Input) (float64, Tier) {
	if in.Latitude != nil {
		if day, err := domain.ParseDate(in.Date); err == nil {
			return HargreavesSamani(in.TempMin, in.TempMax, in.Humidity, in.WindSpeed, *in.Latitude, day), TierRadiation
		}
	}
	if in.Humidity > 0 {
		return HargreavesHumidity(in.TempMin, in.TempMax, in.Humidity), TierTemperature
	}
	return Hargreaves(in.TempMin, in.TempMax), TierTemperature
}

// ExtraterrestrialRadiation computes Ra in MJ/m2/day from latitude (degrees)
// and day-of-year, per FAO-56 eq. 21-25.
func ExtraterrestrialRadiation(latitudeDeg float64, dayOfYear int) float64 {
	lat := latitudeDeg * math.Pi / 180
	j := float64(dayOfYear)

	// Solar declination and inverse relative Earth-Sun distance.
	decl := 0.409 * math.Sin(2*math.Pi*j/365-1.39)
	dr := 1 + 0.033*math.Cos(2*math.Pi*j/365)

	// Sunset hour angle. The acos argument leaves [-1,1] only during polar
	// day/night; clamp instead of producing NaN.
	x := -math.Tan(lat) * math.Tan(decl)
	x = math.Max(-1, math.Min(1, x))
	ws := math.Acos(x)

	return (24 * 60 / math.Pi) * solarConstant * dr *
		(ws*math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Sin(ws))
}

// HargreavesSamani is the radiation-based tier: ET0 from extraterrestrial
// radiation with empirical humidity and wind corrections. Result is clamped
// to >= 0.
func HargreavesSamani(tempMin, tempMax, humidity, windSpeed, latitudeDeg float64, date time.Time) float64 {
	ra := ExtraterrestrialRadiation(latitudeDeg, date.YearDay())
	tempMean := (tempMin + tempMax) / 2
	tempRange := math.Max(0, tempMax-tempMin)

	raw := hargreavesCoeff * ra * (tempMean + hargreavesOffset) * math.Sqrt(tempRange)

	humidityFactor := 1 - (humidity-50)/200
	windFactor := 1 + windSpeed/10

	return math.Max(0, raw*humidityFactor*windFactor)
}

// Hargreaves is the temperature-only tier:
// ET0 = 0.0023 * (Tmean + 17.8) * sqrt(Tmax - Tmin). A negative temperature
// range is treated as zero rather than propagating NaN.
func Hargreaves(tempMin, tempMax float64) float64 {
	tempMean := (tempMin + tempMax) / 2
	tempRange := math.Max(0, tempMax-tempMin)
	return math.Max(0, hargreavesCoeff*(tempMean+hargreavesOffset)*math.Sqrt(tempRange))
}

// HargreavesHumidity scales the temperature-only estimate by an empirical
// humidity factor clamped to [0.8, 1.2].
func HargreavesHumidity(tempMin, tempMax, humidity float64) float64 {
	factor := 1 - (humidity-50)*0.001
	factor = math.Max(0.8, math.Min(1.2, factor))
	return Hargreaves(tempMin, tempMax) * factor
}

// CropET converts reference ET to crop ET: ETc = ET0 * Kc. Pure
// multiplication, no special cases.
func CropET(et0, kc float64) float64 { return et0 * kc }

// DailyCropET is the form the water balance simulator uses: temperature-tier
// ET0 with humidity adjustment, scaled by Kc, rounded to 2 decimals.
func DailyCropET(tempMin, tempMax, humidity, kc float64) float64 {
	return round2(CropET(HargreavesHumidity(tempMin, tempMax, humidity), kc))
}

// Series computes DailyCropET for each forecast day.
func Series(days []domain.WeatherDay, kc float64) []float64 {
	return fn.Map(days, func(d domain.WeatherDay) float64 {
		return DailyCropET(d.TempMin, d.TempMax, d.Humidity, kc)
	})
}

// BlaneyCriddle is an alternative temperature estimator:
// ET0 = p * (0.46*Tmean + 8), p being the mean daily fraction of annual
// daytime hours. A non-positive p defaults to 0.27 (tropics).
func BlaneyCriddle(tempMean, daytimeFraction float64) float64 {
	if daytimeFraction <= 0 {
		daytimeFraction = 0.27
	}
	return math.Max(0, daytimeFraction*(0.46*tempMean+8))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
