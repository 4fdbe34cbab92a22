package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// loadSeries builds "op" records whose elapsed time is given per load value.
func loadSeries(op string, loads []int, elapsed []float64) *Dataset {
	records := make([]Record, len(loads))
	for i := range loads {
		records[i] = loaded(completeAt(i, op, elapsed[i]), loads[i])
	}
	return NewDataset("v", records)
}

func TestLoadCorrelation_LinearGrowth_Strong(t *testing.T) {
	ds := loadSeries("Search", []int{1, 2, 3, 4, 5}, []float64{10, 20, 30, 40, 50})

	c := LoadCorrelation(ds, "Search")

	assert.Equal(t, 5, c.Samples)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.Equal(t, StrengthStrong, c.Strength)
}

func TestLoadCorrelation_Inverse_Weak(t *testing.T) {
	ds := loadSeries("Search", []int{1, 2, 3}, []float64{30, 20, 10})

	c := LoadCorrelation(ds, "Search")

	assert.InDelta(t, -1.0, c.R, 1e-9)
	assert.Equal(t, StrengthWeak, c.Strength)
}

func TestLoadCorrelation_DegenerateInputs_ZeroR(t *testing.T) {
	tests := []struct {
		name string
		ds   *Dataset
	}{
		{"too few samples", loadSeries("Search", []int{1, 2}, []float64{10, 20})},
		{"constant latency", loadSeries("Search", []int{1, 2, 3}, []float64{10, 10, 10})},
		{"constant load", loadSeries("Search", []int{4, 4, 4}, []float64{10, 20, 30})},
		{"other operation only", loadSeries("Create", []int{1, 2, 3}, []float64{10, 20, 30})},
		{"unattributed records", samplesDataset("v", "Search", 10, 20, 30, 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := LoadCorrelation(tt.ds, "Search")
			assert.Equal(t, 0.0, c.R)
			assert.Equal(t, StrengthWeak, c.Strength)
		})
	}
}
