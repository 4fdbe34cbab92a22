package perf

import "time"

// CompareConfig controls Compare.
type CompareConfig struct {
	// CanonicalOperations is the fixed operation set summed into the total row.
	// Empty means every operation.
	CanonicalOperations []string
}

// Verdict labels an improvement percentage: any gain is IMPROVED, a loss beyond 5% is
// REGRESSED, and losses up to 5% are SIMILAR.
type Verdict string

const (
	VerdictImproved  Verdict = "IMPROVED"
	VerdictSimilar   Verdict = "SIMILAR"
	VerdictRegressed Verdict = "REGRESSED"
)

// regressionTolerancePct is how much slower a version may be before it counts as regressed.
const regressionTolerancePct = 5.0

func verdictOf(improvement float64) Verdict {
	switch {
	case improvement > 0:
		return VerdictImproved
	case improvement < -regressionTolerancePct:
		return VerdictRegressed
	default:
		return VerdictSimilar
	}
}

// Consistency labels how much an operation's mean varies across versions.
type Consistency string

const (
	ConsistencyHigh     Consistency = "HIGH_VARIATION"
	ConsistencyModerate Consistency = "MODERATE_VARIATION"
	ConsistencyStable   Consistency = "CONSISTENT"
)

// VersionDelta is one compared dataset's statistics and its improvement over the baseline.
type VersionDelta struct {
	Version        string         `json:"version"`
	Stats          AggregateStats `json:"stats"`
	ImprovementPct float64        `json:"improvement_pct"` // positive: faster than baseline
	Verdict        Verdict        `json:"verdict"`
}

// OperationComparison aligns one operation across the baseline and the versions that share it.
type OperationComparison struct {
	Operation    string         `json:"operation"`
	Baseline     AggregateStats `json:"baseline"`
	Versions     []VersionDelta `json:"versions"`
	VariationPct float64        `json:"variation_pct"`
	Consistency  Consistency    `json:"consistency"`
}

// TotalDelta is one version's summed mean over the total row's operations.
type TotalDelta struct {
	Version        string  `json:"version"`
	TotalMs        float64 `json:"total_ms"`
	ImprovementPct float64 `json:"improvement_pct"`
	Verdict        Verdict `json:"verdict"`
}

// TotalComparison sums per-operation means (not a weighted average) over the canonical
// operations present in the baseline and in every compared version.
type TotalComparison struct {
	Operations []string     `json:"operations"`
	BaselineMs float64      `json:"baseline_ms"`
	Versions   []TotalDelta `json:"versions"`
}

// MemoryGrowth is max(memory) - min(memory) over a dataset's memory samples.
type MemoryGrowth struct {
	Version  string  `json:"version"`
	Samples  int     `json:"samples"`
	MinMB    float64 `json:"min_mb"`
	MaxMB    float64 `json:"max_mb"`
	GrowthMB float64 `json:"growth_mb"`
}

// MemoryDelta compares a version's memory growth to the baseline's.
type MemoryDelta struct {
	MemoryGrowth
	ImprovementPct float64 `json:"improvement_pct"` // 0 when the baseline grew by exactly 0
}

// MemoryComparison holds the baseline growth and each version's delta.
type MemoryComparison struct {
	Baseline MemoryGrowth  `json:"baseline"`
	Versions []MemoryDelta `json:"versions"`
}

// SessionSummary describes one dataset's session length and throughput.
type SessionSummary struct {
	Version          string        `json:"version"`
	Records          int           `json:"records"`
	Duration         time.Duration `json:"duration"`
	RecordsPerMinute float64       `json:"records_per_minute"`
}

// ComparisonResult is the output of Compare.
type ComparisonResult struct {
	Baseline   string                `json:"baseline"`
	Versions   []string              `json:"versions"`
	Operations []OperationComparison `json:"operations"`
	Total      TotalComparison       `json:"total"`
	Memory     MemoryComparison      `json:"memory"`
	Sessions   []SessionSummary      `json:"sessions"` // baseline first
}

// Compare aligns each dataset in others with the baseline on shared operations.
//
// For every operation present in both the baseline and a given version,
// improvement = (baseline_mean - version_mean) / baseline_mean * 100, so positive means
// the version is faster. Operations missing on either side are skipped for that pair.
// A zero baseline mean yields 0%.
func Compare(baseline *Dataset, others []*Dataset, config *CompareConfig) *ComparisonResult {
	if config == nil {
		config = &CompareConfig{}
	}

	baseStats := indexByOperation(Aggregate(baseline).Stats)
	otherStats := make([]map[string]AggregateStats, len(others))
	res := &ComparisonResult{Baseline: baseline.Version()}
	for i, o := range others {
		otherStats[i] = indexByOperation(Aggregate(o).Stats)
		res.Versions = append(res.Versions, o.Version())
	}

	for _, op := range baseline.Operations() {
		cmp := OperationComparison{Operation: op, Baseline: baseStats[op]}
		means := []float64{cmp.Baseline.Mean}
		for i, o := range others {
			s, ok := otherStats[i][op]
			if !ok {
				continue
			}
			imp := improvementPct(cmp.Baseline.Mean, s.Mean)
			cmp.Versions = append(cmp.Versions, VersionDelta{
				Version:        o.Version(),
				Stats:          s,
				ImprovementPct: imp,
				Verdict:        verdictOf(imp),
			})
			means = append(means, s.Mean)
		}
		if len(cmp.Versions) == 0 {
			continue
		}
		cmp.VariationPct, cmp.Consistency = Variation(means)
		res.Operations = append(res.Operations, cmp)
	}

	res.Total = compareTotals(baseline, others, baseStats, otherStats, config.CanonicalOperations)
	res.Memory = compareMemory(baseline, others)

	res.Sessions = append(res.Sessions, Session(baseline))
	for _, o := range others {
		res.Sessions = append(res.Sessions, Session(o))
	}
	return res
}

// Variation returns (max - min) / max * 100 over values and its consistency label:
// above 100 high, above 50 moderate, otherwise consistent. A zero maximum yields 0.
func Variation(values []float64) (float64, Consistency) {
	if len(values) == 0 {
		return 0, ConsistencyStable
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi <= 0 {
		return 0, ConsistencyStable
	}
	pct := (hi - lo) / hi * 100
	switch {
	case pct > 100:
		return pct, ConsistencyHigh
	case pct > 50:
		return pct, ConsistencyModerate
	default:
		return pct, ConsistencyStable
	}
}

// Growth computes a dataset's memory growth.
func Growth(ds *Dataset) MemoryGrowth {
	g := MemoryGrowth{Version: ds.Version()}
	samples := ds.memorySamples()
	if len(samples) == 0 {
		return g
	}
	g.Samples = len(samples)
	g.MinMB, g.MaxMB = samples[0], samples[0]
	for _, m := range samples[1:] {
		g.MinMB = min(g.MinMB, m)
		g.MaxMB = max(g.MaxMB, m)
	}
	g.GrowthMB = g.MaxMB - g.MinMB
	return g
}

// Session summarizes a dataset's duration and record throughput.
// Throughput is 0 when the dataset spans no time.
func Session(ds *Dataset) SessionSummary {
	s := SessionSummary{Version: ds.Version(), Records: ds.Len(), Duration: ds.Span()}
	if minutes := s.Duration.Minutes(); minutes > 0 {
		s.RecordsPerMinute = float64(s.Records) / minutes
	}
	return s
}

func compareTotals(baseline *Dataset, others []*Dataset, baseStats map[string]AggregateStats,
	otherStats []map[string]AggregateStats, canonical []string) TotalComparison {
	if len(canonical) == 0 {
		canonical = baseline.Operations()
	}

	var total TotalComparison
	for _, op := range canonical {
		if _, ok := baseStats[op]; !ok {
			continue
		}
		inAll := true
		for _, stats := range otherStats {
			if _, ok := stats[op]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			total.Operations = append(total.Operations, op)
			total.BaselineMs += baseStats[op].Mean
		}
	}

	for i, o := range others {
		sum := 0.0
		for _, op := range total.Operations {
			sum += otherStats[i][op].Mean
		}
		imp := improvementPct(total.BaselineMs, sum)
		total.Versions = append(total.Versions, TotalDelta{
			Version:        o.Version(),
			TotalMs:        sum,
			ImprovementPct: imp,
			Verdict:        verdictOf(imp),
		})
	}
	return total
}

func compareMemory(baseline *Dataset, others []*Dataset) MemoryComparison {
	mc := MemoryComparison{Baseline: Growth(baseline)}
	for _, o := range others {
		g := Growth(o)
		mc.Versions = append(mc.Versions, MemoryDelta{
			MemoryGrowth:   g,
			ImprovementPct: improvementPct(mc.Baseline.GrowthMB, g.GrowthMB),
		})
	}
	return mc
}

func indexByOperation(stats []AggregateStats) map[string]AggregateStats {
	idx := make(map[string]AggregateStats, len(stats))
	for _, s := range stats {
		idx[s.Operation] = s
	}
	return idx
}
