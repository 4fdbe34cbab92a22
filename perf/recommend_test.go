package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(recs []Recommendation) []RecommendationCode {
	out := make([]RecommendationCode, len(recs))
	for i, r := range recs {
		out[i] = r.Code
	}
	return out
}

func TestRecommend_AllIssues(t *testing.T) {
	// GIVEN a report breaching every threshold
	r := &Report{
		Grade:       DatasetGrade{Inputs: GradeInputs{LatencyA: 1600, LatencyB: 450}},
		Summary:     Summary{Memory: MemoryGrowth{MaxMB: 75}},
		Correlation: Correlation{Operation: "Variable_Check", R: 0.9, Strength: StrengthStrong},
	}

	// WHEN recommendations are derived
	recs := Recommend(r)

	// THEN each issue yields its own entry, in a fixed order
	assert.Equal(t, []RecommendationCode{RecommendSearch, RecommendCreation, RecommendMemory, RecommendScaling}, codes(recs))
	assert.Contains(t, recs[3].Message, "Variable_Check")
}

func TestRecommend_HealthyReport_SingleGoodEntry(t *testing.T) {
	r := &Report{
		Grade:       DatasetGrade{Inputs: GradeInputs{LatencyA: 1500, LatencyB: 400}},
		Summary:     Summary{Memory: MemoryGrowth{MaxMB: 60}},
		Correlation: Correlation{Strength: StrengthModerate},
	}

	recs := Recommend(r)

	require.Len(t, recs, 1)
	assert.Equal(t, RecommendGood, recs[0].Code)
}

func TestOperationFlags(t *testing.T) {
	tests := []struct {
		name string
		s    AggregateStats
		want []string
	}{
		{"fast", AggregateStats{Mean: 200, Max: 900}, nil},
		{"slow on average", AggregateStats{Mean: 1001, Max: 1500}, []string{"SLOW"}},
		{"critical outlier", AggregateStats{Mean: 300, Max: 2500}, []string{"CRITICAL"}},
		{"both", AggregateStats{Mean: 1500, Max: 3000}, []string{"SLOW", "CRITICAL"}},
		{"boundaries exclusive", AggregateStats{Mean: 1000, Max: 2000}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OperationFlags(tt.s))
		})
	}
}
