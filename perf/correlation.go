package perf

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Strength labels a correlation coefficient.
type Strength string

const (
	StrengthStrong   Strength = "STRONG"
	StrengthModerate Strength = "MODERATE"
	StrengthWeak     Strength = "WEAK"
)

// minCorrelationSamples is the smallest sample count for which r is computed.
const minCorrelationSamples = 3

// Correlation is the Pearson coefficient between an operation's elapsed time and the load metric.
type Correlation struct {
	Operation string   `json:"operation"`
	Samples   int      `json:"samples"`
	R         float64  `json:"r"`
	Strength  Strength `json:"strength"`
}

// LoadCorrelation correlates elapsed time with load over the operation's load-attributed
// records. R is 0 below three samples or when either series is constant.
// A positive R above 0.5 is STRONG, above 0.3 MODERATE.
func LoadCorrelation(ds *Dataset, operation string) Correlation {
	c := Correlation{Operation: operation, Strength: StrengthWeak}
	var elapsed, load []float64
	for _, r := range ds.Ordered() {
		if r.Operation != operation || !r.LoadAttributed() {
			continue
		}
		elapsed = append(elapsed, r.elapsed())
		load = append(load, float64(*r.LoadMetric))
	}
	c.Samples = len(elapsed)
	if c.Samples < minCorrelationSamples {
		return c
	}
	r := stat.Correlation(elapsed, load, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return c
	}
	c.R = r
	switch {
	case r > 0.5:
		c.Strength = StrengthStrong
	case r > 0.3:
		c.Strength = StrengthModerate
	}
	return c
}
