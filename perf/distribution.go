package perf

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// AggregateStats summarizes elapsed time (ms) and memory (MB) for one
// (operation, bucket) or (operation, dataset) scope.
type AggregateStats struct {
	Operation string `json:"operation,omitempty"` // empty for an all-operations rollup
	Bucket    string `json:"bucket,omitempty"`    // empty for whole-dataset scope

	Count  int     `json:"count"`
	Mean   float64 `json:"mean_ms"`
	Max    float64 `json:"max_ms"`
	Min    float64 `json:"min_ms"`
	StdDev float64 `json:"std_ms"` // sample standard deviation; 0 below two samples
	P50    float64 `json:"p50_ms"`
	P95    float64 `json:"p95_ms"`

	MemoryCount int     `json:"memory_count"`
	MemoryMean  float64 `json:"memory_mean_mb"`
	MemoryMax   float64 `json:"memory_max_mb"`
}

// Summarize computes AggregateStats from raw elapsed and memory samples.
// Returns zero-value statistics for empty input.
func Summarize(elapsed, memory []float64) AggregateStats {
	var s AggregateStats
	if len(elapsed) > 0 {
		sorted := slices.Sorted(slices.Values(elapsed))
		s.Count = len(sorted)
		s.Min = sorted[0]
		s.Max = sorted[len(sorted)-1]
		s.P50 = interpolatedPercentile(sorted, 50)
		s.P95 = interpolatedPercentile(sorted, 95)
		if len(elapsed) > 1 {
			s.Mean, s.StdDev = stat.MeanStdDev(elapsed, nil)
		} else {
			s.Mean = elapsed[0]
		}
	}
	if len(memory) > 0 {
		s.MemoryCount = len(memory)
		s.MemoryMean = stat.Mean(memory, nil)
		s.MemoryMax = memory[0]
		for _, m := range memory[1:] {
			s.MemoryMax = math.Max(s.MemoryMax, m)
		}
	}
	return s
}

// mean returns the arithmetic mean, 0 for empty input.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// interpolatedPercentile returns the p-th percentile (0-100) of ascending values,
// interpolating linearly between the two closest ranks. 0 for empty input.
func interpolatedPercentile(ascending []float64, p float64) float64 {
	n := len(ascending)
	if n == 0 {
		return 0
	}
	pos := p / 100 * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return ascending[n-1]
	}
	return ascending[i] + (pos-float64(i))*(ascending[i+1]-ascending[i])
}

// pctChange returns (current - previous) / previous * 100.
// ok is false when previous is zero and the ratio is undefined.
func pctChange(previous, current float64) (pct float64, ok bool) {
	if previous == 0 {
		return 0, false
	}
	return (current - previous) / previous * 100, true
}

// improvementPct returns (baseline - other) / baseline * 100; positive means other is lower.
// A zero baseline yields 0: no improvement or regression is claimed.
func improvementPct(baseline, other float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (baseline - other) / baseline * 100
}
