package chart

import (
	"fmt"
	"math"
)

// FormatAmount renders an axis value: billions with one decimal at or above
// $1B, whole millions below.
func FormatAmount(x float64) string {
	if x >= 1e9 {
		return fmt.Sprintf("$%.1fB", x/1e9)
	}
	return fmt.Sprintf("$%.0fM", x/1e6)
}

// LogAxis maps positive values onto [0, 1] on a base-10 log scale.
type LogAxis struct {
	Lo, Hi float64
}

// Default domain when there is nothing positive to plot.
const (
	defaultLo = 1e6
	defaultHi = 1e9
)

// NewLogAxis spans whole decades around the positive values. A single decade
// is widened so the axis always has two ticks.
func NewLogAxis(values []float64) LogAxis {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return LogAxis{Lo: defaultLo, Hi: defaultHi}
	}

	loExp := math.Floor(exponent(lo))
	hiExp := math.Ceil(exponent(hi))
	if hiExp <= loExp {
		hiExp = loExp + 1
	}
	return LogAxis{Lo: math.Pow(10, loExp), Hi: math.Pow(10, hiExp)}
}

// Frac returns where v falls on the axis, clamped to [0, 1].
func (a LogAxis) Frac(v float64) float64 {
	if v <= a.Lo {
		return 0
	}
	if v >= a.Hi {
		return 1
	}
	return (math.Log10(v) - math.Log10(a.Lo)) / (math.Log10(a.Hi) - math.Log10(a.Lo))
}

// exponent is log10(v) snapped to an integer when v is a power of ten up to
// floating point error.
func exponent(v float64) float64 {
	e := math.Log10(v)
	if r := math.Round(e); math.Abs(e-r) < 1e-9 {
		return r
	}
	return e
}

// Decades returns every power of ten from Lo to Hi inclusive.
func (a LogAxis) Decades() []float64 {
	loExp := int(math.Round(math.Log10(a.Lo)))
	hiExp := int(math.Round(math.Log10(a.Hi)))
	out := make([]float64, 0, hiExp-loExp+1)
	for e := loExp; e <= hiExp; e++ {
		out = append(out, math.Pow(10, float64(e)))
	}
	return out
}
