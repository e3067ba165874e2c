package et

import "fmt"

// Climate buckets for plausibility checks on computed ET values.
type Climate string

const (
	ClimateArid     Climate = "arid"
	ClimateSemiArid Climate = "semi-arid"
	ClimateHumid    Climate = "humid"
	ClimateTropical Climate = "tropical"
)

// Range is the typical daily ET band for a climate, mm/day.
type Range struct {
	Min, Max, Typical float64
}

var typicalRanges = map[Climate]Range{
	ClimateArid:     {Min: 5, Max: 10, Typical: 7},
	ClimateSemiArid: {Min: 4, Max: 8, Typical: 6},
	ClimateHumid:    {Min: 2, Max: 6, Typical: 4},
	ClimateTropical: {Min: 3, Max: 7, Typical: 5},
}

// TypicalRange returns the plausibility band for a climate. Unknown climates
// get the semi-arid band.
func TypicalRange(c Climate) Range {
	if r, ok := typicalRanges[c]; ok {
		return r
	}
	return typicalRanges[ClimateSemiArid]
}

// Check reports whether an ET value is plausible for a climate. Implausible
// but non-negative values are still usable; the warning is advisory.
func Check(etValue float64, c Climate) (ok bool, warning string) {
	if etValue < 0 {
		return false, "ET cannot be negative"
	}
	r := TypicalRange(c)
	switch {
	case etValue > r.Max*2:
		return true, fmt.Sprintf("ET %.2f mm/day is unusually high for a %s climate", etValue, c)
	case etValue < r.Min/2:
		return true, fmt.Sprintf("ET %.2f mm/day is unusually low for a %s climate", etValue, c)
	}
	return true, ""
}
