package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// opsDataset builds a dataset with one timed record per (operation, elapsed) pair, one second apart.
func opsDataset(version string, pairs ...any) *Dataset {
	var records []Record
	for i := 0; i+1 < len(pairs); i += 2 {
		records = append(records, completeAt(i/2, pairs[i].(string), pairs[i+1].(float64)))
	}
	return NewDataset(version, records)
}

func TestCompare_SelfComparison_ZeroEverywhere(t *testing.T) {
	// GIVEN a dataset with memory growth
	ds := NewDataset("v1", []Record{
		withMemory(completeAt(0, "Search", 400), 40),
		withMemory(completeAt(1, "Create", 200), 55),
	})

	// WHEN it is compared with itself
	res := Compare(ds, []*Dataset{ds}, nil)

	// THEN every improvement is 0% and SIMILAR
	require.Len(t, res.Operations, 2)
	for _, op := range res.Operations {
		require.Len(t, op.Versions, 1)
		assert.Equal(t, 0.0, op.Versions[0].ImprovementPct, op.Operation)
		assert.Equal(t, VerdictSimilar, op.Versions[0].Verdict)
	}
	require.Len(t, res.Total.Versions, 1)
	assert.Equal(t, 0.0, res.Total.Versions[0].ImprovementPct)
	require.Len(t, res.Memory.Versions, 1)
	assert.Equal(t, 0.0, res.Memory.Versions[0].ImprovementPct)
}

func TestCompare_HalvedLatency_FiftyPercentImprovement(t *testing.T) {
	base := opsDataset("base", "Search", 1000.0, "Search", 1000.0)
	fast := opsDataset("fast", "Search", 500.0, "Search", 500.0)

	res := Compare(base, []*Dataset{fast}, nil)

	require.Len(t, res.Operations, 1)
	d := res.Operations[0].Versions[0]
	assert.Equal(t, "fast", d.Version)
	assert.Equal(t, 50.0, d.ImprovementPct)
	assert.Equal(t, VerdictImproved, d.Verdict)
	assert.Equal(t, 1000.0, res.Total.BaselineMs)
	assert.Equal(t, 500.0, res.Total.Versions[0].TotalMs)
}

func TestCompare_Regression(t *testing.T) {
	base := opsDataset("base", "Search", 100.0)
	slow := opsDataset("slow", "Search", 150.0)

	d := Compare(base, []*Dataset{slow}, nil).Operations[0].Versions[0]

	assert.Equal(t, -50.0, d.ImprovementPct)
	assert.Equal(t, VerdictRegressed, d.Verdict)
}

func TestCompare_OperationsMissingOnOneSide_Skipped(t *testing.T) {
	// GIVEN a baseline with A, B, C; v1 has A, B; v2 has A, C, D
	base := opsDataset("base", "A", 100.0, "B", 200.0, "C", 300.0)
	v1 := opsDataset("v1", "A", 50.0, "B", 100.0)
	v2 := opsDataset("v2", "A", 100.0, "C", 150.0, "D", 10.0)

	// WHEN compared
	res := Compare(base, []*Dataset{v1, v2}, nil)

	// THEN each operation row only carries the versions that have it, and D is absent
	require.Len(t, res.Operations, 3)
	assert.Equal(t, "A", res.Operations[0].Operation)
	assert.Len(t, res.Operations[0].Versions, 2)
	assert.Equal(t, "B", res.Operations[1].Operation)
	require.Len(t, res.Operations[1].Versions, 1)
	assert.Equal(t, "v1", res.Operations[1].Versions[0].Version)
	assert.Equal(t, "C", res.Operations[2].Operation)
	require.Len(t, res.Operations[2].Versions, 1)
	assert.Equal(t, "v2", res.Operations[2].Versions[0].Version)

	// AND the total row only sums operations present everywhere
	assert.Equal(t, []string{"A"}, res.Total.Operations)
	assert.Equal(t, 100.0, res.Total.BaselineMs)
	assert.Equal(t, 50.0, res.Total.Versions[0].TotalMs)
	assert.Equal(t, 50.0, res.Total.Versions[0].ImprovementPct)
	assert.Equal(t, 0.0, res.Total.Versions[1].ImprovementPct)
}

func TestCompare_CanonicalOperations_OrderAndFilter(t *testing.T) {
	base := opsDataset("base", "A", 100.0, "B", 300.0, "C", 1000.0)
	other := opsDataset("v", "A", 100.0, "B", 100.0, "C", 1.0)

	res := Compare(base, []*Dataset{other}, &CompareConfig{CanonicalOperations: []string{"B", "A", "Z"}})

	assert.Equal(t, []string{"B", "A"}, res.Total.Operations)
	assert.Equal(t, 400.0, res.Total.BaselineMs)
	assert.Equal(t, 200.0, res.Total.Versions[0].TotalMs)
	assert.Equal(t, 50.0, res.Total.Versions[0].ImprovementPct)
}

func TestCompare_ZeroBaselineMean_ZeroImprovement(t *testing.T) {
	base := opsDataset("base", "A", 0.0)
	other := opsDataset("v", "A", 25.0)

	d := Compare(base, []*Dataset{other}, nil).Operations[0].Versions[0]

	assert.Equal(t, 0.0, d.ImprovementPct)
	assert.Equal(t, VerdictSimilar, d.Verdict)
}

func TestCompare_MemoryGrowth(t *testing.T) {
	tests := []struct {
		name      string
		baseline  []float64
		other     []float64
		wantGrow  float64
		wantImpct float64
	}{
		{"baseline flat reports zero", []float64{50, 50}, []float64{50, 60}, 10, 0},
		{"half the growth", []float64{40, 50, 45}, []float64{40, 45}, 5, 50},
		{"double the growth", []float64{40, 45}, []float64{30, 40}, 10, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memDataset := func(version string, mem []float64) *Dataset {
				records := make([]Record, len(mem))
				for i, m := range mem {
					records[i] = withMemory(completeAt(i, "Op", 1), m)
				}
				return NewDataset(version, records)
			}

			res := Compare(memDataset("base", tt.baseline), []*Dataset{memDataset("v", tt.other)}, nil)

			require.Len(t, res.Memory.Versions, 1)
			assert.Equal(t, tt.wantGrow, res.Memory.Versions[0].GrowthMB)
			assert.Equal(t, tt.wantImpct, res.Memory.Versions[0].ImprovementPct)
		})
	}
}

func TestCompare_Sessions_BaselineFirst(t *testing.T) {
	// GIVEN a baseline spanning two minutes with four records
	base := NewDataset("base", []Record{
		completeAt(0, "A", 1), completeAt(30, "A", 1), completeAt(60, "A", 1), completeAt(120, "A", 1),
	})
	other := opsDataset("v", "A", 1.0)

	res := Compare(base, []*Dataset{other}, nil)

	require.Len(t, res.Sessions, 2)
	assert.Equal(t, "base", res.Sessions[0].Version)
	assert.Equal(t, 2*time.Minute, res.Sessions[0].Duration)
	assert.Equal(t, 2.0, res.Sessions[0].RecordsPerMinute)
	// a single record spans no time
	assert.Equal(t, 0.0, res.Sessions[1].RecordsPerMinute)
}

func TestVariation(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		pct    float64
		want   Consistency
	}{
		{"empty", nil, 0, ConsistencyStable},
		{"all zero", []float64{0, 0}, 0, ConsistencyStable},
		{"close means", []float64{100, 90}, 10, ConsistencyStable},
		{"moderate spread", []float64{100, 40, 80}, 60, ConsistencyModerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, c := Variation(tt.values)
			assert.InDelta(t, tt.pct, pct, 1e-9)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestCompare_RecordsVariationPerOperation(t *testing.T) {
	base := opsDataset("base", "A", 100.0)
	v1 := opsDataset("v1", "A", 40.0)

	res := Compare(base, []*Dataset{v1}, nil)

	assert.InDelta(t, 60.0, res.Operations[0].VariationPct, 1e-9)
	assert.Equal(t, ConsistencyModerate, res.Operations[0].Consistency)
}

func TestVerdictOf_AnyGainImprovesSmallLossIsSimilar(t *testing.T) {
	tests := []struct {
		improvement float64
		want        Verdict
	}{
		{50, VerdictImproved},
		{0.5, VerdictImproved},
		{0, VerdictSimilar},
		{-3, VerdictSimilar},
		{-5, VerdictSimilar},
		{-5.5, VerdictRegressed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, verdictOf(tt.improvement), "improvement=%v", tt.improvement)
	}
}

func TestCompare_SlightGainIsImproved(t *testing.T) {
	base := opsDataset("base", "A", 100.0)
	other := opsDataset("v", "A", 98.0)

	d := Compare(base, []*Dataset{other}, nil).Operations[0].Versions[0]

	assert.InDelta(t, 2.0, d.ImprovementPct, 1e-9)
	assert.Equal(t, VerdictImproved, d.Verdict)
}
