// Package testutil provides shared test infrastructure for the perf engine.
// It holds the golden dataset types and assertion helpers; it does not import perf
// so that perf's own tests can use it.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one named scenario: an input log and the results expected from it.
type GoldenTestCase struct {
	Name    string         `json:"name"`
	Version string         `json:"version"`
	Records []GoldenRecord `json:"records"`
	Buckets []GoldenBucket `json:"buckets"`
	Expect  GoldenExpect   `json:"expect"`
}

// GoldenRecord mirrors one log row. Absent optional values are null.
type GoldenRecord struct {
	Timestamp string   `json:"timestamp,omitempty"` // RFC 3339
	Operation string   `json:"operation"`
	Phase     string   `json:"phase"`
	ElapsedMs *float64 `json:"elapsed_ms"`
	MemoryMB  *float64 `json:"memory_mb"`
	Load      *int     `json:"load"`
}

// GoldenBucket is a load range.
type GoldenBucket struct {
	Label string `json:"label"`
	Low   int    `json:"low"`
	High  int    `json:"high"`
}

// GoldenExpect holds the expected results of a scenario.
type GoldenExpect struct {
	// Operation name → expected whole-dataset mean (ms) and count.
	OperationMeans  map[string]float64 `json:"operation_means"`
	OperationCounts map[string]int     `json:"operation_counts"`

	// Bucket label → expected all-operation count, in bucket order.
	BucketCounts []int `json:"bucket_counts"`

	// Expected trend directions, in ascending bucket order.
	TrendDirections []string `json:"trend_directions"`

	// Operation name → expected drift classification ("" for insufficient data).
	Drift map[string]string `json:"drift"`

	Malformed  int `json:"malformed"`
	GradeScore int `json:"grade_score"`
}

// LoadGoldenDataset reads testdata/goldendataset.json at the repository root,
// located relative to this source file so tests work from any package directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()
	_, here, _, ok := runtime.Caller(0)
	require.True(t, ok, "locating testutil source")

	data, err := os.ReadFile(filepath.Join(filepath.Dir(here), "..", "..", "..", "testdata", "goldendataset.json"))
	require.NoError(t, err, "reading golden dataset")

	var dataset GoldenDataset
	require.NoError(t, json.Unmarshal(data, &dataset), "parsing golden dataset")
	require.NotEmpty(t, dataset.Tests, "golden dataset has no scenarios")
	return &dataset
}

// AssertFloat64Equal checks got against want within a relative tolerance.
// Exact equality (including both zero) always passes.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == got {
		return
	}
	assert.InEpsilonf(t, want, got, relTol, "%s", name)
}
