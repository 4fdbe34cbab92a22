package perf

// Letter is the discrete bucket of a composite score.
type Letter string

const (
	LetterExcellent Letter = "Excellent"
	LetterGood      Letter = "Good"
	LetterFair      Letter = "Fair"
	LetterPoor      Letter = "Poor"
	LetterCritical  Letter = "Critical"
)

// tier is one rung of a penalty ladder: exceeding Above costs Points.
type tier struct {
	Above  float64
	Points int
}

// Ladders are ordered from the highest threshold down; only the first exceeded tier applies.
var (
	latencyALadder = []tier{{1000, 30}, {600, 20}, {300, 10}}
	latencyBLadder = []tier{{500, 20}, {300, 15}, {200, 10}}
	memoryLadder   = []tier{{10, 30}, {7, 20}, {3, 10}}
)

// Penalty records a deduction applied by Grade.
type Penalty struct {
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Points    int     `json:"points"`
}

// GradeResult is a composite score in [0,100] and its letter.
type GradeResult struct {
	Score     int       `json:"score"`
	Letter    Letter    `json:"letter"`
	Penalties []Penalty `json:"penalties,omitempty"`
}

// Metric names used in Penalty.
const (
	MetricLatencyA     = "latency_a"
	MetricLatencyB     = "latency_b"
	MetricMemoryGrowth = "memory_growth_rate"
)

// Grade scores three metrics against fixed ladders, starting from 100:
//   - latencyA (search-like, ms): -10 above 300, -20 above 600, -30 above 1000
//   - latencyB (creation-like, ms): -10 above 200, -15 above 300, -20 above 500
//   - memoryGrowthRate (MB per 100 operations): -10 above 3, -20 above 7, -30 above 10
//
// Each metric is penalized once, at its highest exceeded tier. The score floors at 0.
func Grade(latencyA, latencyB, memoryGrowthRate float64) GradeResult {
	res := GradeResult{Score: 100}
	for _, m := range []struct {
		name   string
		value  float64
		ladder []tier
	}{
		{MetricLatencyA, latencyA, latencyALadder},
		{MetricLatencyB, latencyB, latencyBLadder},
		{MetricMemoryGrowth, memoryGrowthRate, memoryLadder},
	} {
		for _, t := range m.ladder {
			if m.value > t.Above {
				res.Score -= t.Points
				res.Penalties = append(res.Penalties, Penalty{Metric: m.name, Value: m.value, Threshold: t.Above, Points: t.Points})
				break
			}
		}
	}
	res.Score = max(res.Score, 0)
	res.Letter = LetterFor(res.Score)
	return res
}

// LetterFor maps a score to its letter: >=90 Excellent, >=80 Good, >=70 Fair, >=60 Poor, else Critical.
func LetterFor(score int) Letter {
	switch {
	case score >= 90:
		return LetterExcellent
	case score >= 80:
		return LetterGood
	case score >= 70:
		return LetterFair
	case score >= 60:
		return LetterPoor
	default:
		return LetterCritical
	}
}

// GradeConfig names the operations whose mean latencies feed Grade.
type GradeConfig struct {
	SearchOperation   string // latency A
	CreationOperation string // latency B
}

// DefaultGradeConfig returns the operation names used by the instrumented application.
func DefaultGradeConfig() *GradeConfig {
	return &GradeConfig{
		SearchOperation:   "Variable_Check",
		CreationOperation: "Create_New_Tab",
	}
}

// GradeInputs are the three scalars derived from a dataset.
type GradeInputs struct {
	LatencyA         float64 `json:"latency_a_ms"`
	LatencyB         float64 `json:"latency_b_ms"`
	MemoryGrowthRate float64 `json:"memory_growth_rate"`
}

// DatasetGrade is a grade together with the inputs it was computed from.
type DatasetGrade struct {
	Inputs GradeInputs `json:"inputs"`
	GradeResult
}

// GradeDataset derives the grade inputs from a dataset and grades them.
// A missing or unnamed operation contributes a latency of 0.
func GradeDataset(ds *Dataset, config *GradeConfig) DatasetGrade {
	if config == nil {
		config = DefaultGradeConfig()
	}
	in := GradeInputs{
		LatencyA:         operationMean(ds, config.SearchOperation),
		LatencyB:         operationMean(ds, config.CreationOperation),
		MemoryGrowthRate: MemoryGrowthRate(ds),
	}
	return DatasetGrade{Inputs: in, GradeResult: Grade(in.LatencyA, in.LatencyB, in.MemoryGrowthRate)}
}

// MemoryGrowthRate returns memory growth in MB per 100 records:
// (last memory sample - first memory sample) / record count * 100.
// 0 when the dataset carries no memory samples.
func MemoryGrowthRate(ds *Dataset) float64 {
	samples := ds.memorySamples()
	if len(samples) == 0 || ds.Len() == 0 {
		return 0
	}
	return (samples[len(samples)-1] - samples[0]) / float64(ds.Len()) * 100
}

func operationMean(ds *Dataset, operation string) float64 {
	if operation == "" {
		return 0
	}
	return mean(ds.timedSamples(operation))
}
