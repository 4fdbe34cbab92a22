package perf

import "fmt"

// RecommendationCode identifies a recommendation category.
type RecommendationCode string

const (
	RecommendSearch   RecommendationCode = "SEARCH"
	RecommendCreation RecommendationCode = "CREATION"
	RecommendMemory   RecommendationCode = "MEMORY"
	RecommendScaling  RecommendationCode = "SCALING"
	RecommendGood     RecommendationCode = "GOOD"
)

// Recommendation is an actionable finding derived from a report.
type Recommendation struct {
	Code    RecommendationCode `json:"code"`
	Message string             `json:"message"`
}

// Recommendation thresholds.
const (
	searchMeanLimitMs   = 1500.0
	creationMeanLimitMs = 400.0
	peakMemoryLimitMB   = 60.0
)

// Operation flag thresholds.
const (
	slowMeanMs    = 1000.0
	criticalMaxMs = 2000.0
	flagSlow      = "SLOW"
	flagCritical  = "CRITICAL"
)

// OperationFlags returns SLOW when mean > 1000ms and CRITICAL when max > 2000ms.
func OperationFlags(s AggregateStats) []string {
	var flags []string
	if s.Mean > slowMeanMs {
		flags = append(flags, flagSlow)
	}
	if s.Max > criticalMaxMs {
		flags = append(flags, flagCritical)
	}
	return flags
}

// Recommend derives recommendations from a report. It always returns at least one entry.
func Recommend(r *Report) []Recommendation {
	var recs []Recommendation
	if r.Grade.Inputs.LatencyA > searchMeanLimitMs {
		recs = append(recs, Recommendation{RecommendSearch,
			fmt.Sprintf("search-like operation averages %.0fms (> %.0fms)", r.Grade.Inputs.LatencyA, searchMeanLimitMs)})
	}
	if r.Grade.Inputs.LatencyB > creationMeanLimitMs {
		recs = append(recs, Recommendation{RecommendCreation,
			fmt.Sprintf("creation-like operation averages %.0fms (> %.0fms)", r.Grade.Inputs.LatencyB, creationMeanLimitMs)})
	}
	if r.Summary.Memory.MaxMB > peakMemoryLimitMB {
		recs = append(recs, Recommendation{RecommendMemory,
			fmt.Sprintf("peak memory %.1fMB (> %.0fMB)", r.Summary.Memory.MaxMB, peakMemoryLimitMB)})
	}
	if r.Correlation.Strength == StrengthStrong {
		recs = append(recs, Recommendation{RecommendScaling,
			fmt.Sprintf("%s latency rises with load (r=%.3f)", r.Correlation.Operation, r.Correlation.R)})
	}
	if len(recs) == 0 {
		recs = append(recs, Recommendation{RecommendGood, "no critical issues detected"})
	}
	return recs
}
