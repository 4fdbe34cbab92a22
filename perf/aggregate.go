package perf

import "github.com/sirupsen/logrus"

// Aggregation is the output of Aggregate: statistics rows plus the exclusion counts
// observed while computing them.
type Aggregation struct {
	Version string           `json:"version"`
	Stats   []AggregateStats `json:"stats"`
	Quality DataQuality      `json:"quality"`
}

// Aggregate computes descriptive statistics over the dataset's timed records.
//
// Without buckets it returns one row per operation over the whole dataset, sorted by
// operation name. With buckets it returns, for each bucket in the given order, an
// all-operations rollup row (Operation == "") followed by one row per operation present
// in the bucket. Empty buckets still produce a rollup row with Count 0.
//
// Results are recomputed on every call.
func Aggregate(ds *Dataset, buckets ...Bucket) *Aggregation {
	agg := &Aggregation{
		Version: ds.Version(),
		Quality: AssessQuality(ds),
	}
	agg.Quality.log(agg.Version)

	if len(buckets) == 0 {
		agg.Stats = statsByOperation(ds.Ordered(), "")
		return agg
	}

	for _, m := range ds.Bucket(buckets) {
		rollup := summarizeRecords(m.Records)
		rollup.Bucket = m.Bucket.Label
		agg.Stats = append(agg.Stats, rollup)
		if rollup.Count == 0 {
			logrus.Debugf("dataset %q: bucket %q [%d,%d] is empty", agg.Version, m.Bucket.Label, m.Bucket.Low, m.Bucket.High)
			continue
		}
		agg.Stats = append(agg.Stats, statsByOperation(m.Records, m.Bucket.Label)...)
	}
	return agg
}

// AggregateOperation returns whole-dataset statistics for one operation.
func AggregateOperation(ds *Dataset, operation string) AggregateStats {
	var selected []Record
	for _, r := range ds.Ordered() {
		if r.Operation == operation {
			selected = append(selected, r)
		}
	}
	s := summarizeRecords(selected)
	s.Operation = operation
	return s
}

// Find returns the row for (operation, bucket), if present.
func (a *Aggregation) Find(operation, bucket string) (AggregateStats, bool) {
	for _, s := range a.Stats {
		if s.Operation == operation && s.Bucket == bucket {
			return s, true
		}
	}
	return AggregateStats{}, false
}

// statsByOperation groups timed records by operation and summarizes each group.
func statsByOperation(records []Record, bucket string) []AggregateStats {
	groups := make(map[string][]Record)
	for _, r := range records {
		if r.Timed() {
			groups[r.Operation] = append(groups[r.Operation], r)
		}
	}
	names := make(map[string]bool, len(groups))
	for name := range groups {
		names[name] = true
	}

	stats := make([]AggregateStats, 0, len(groups))
	for _, name := range sortedKeys(names) {
		s := summarizeRecords(groups[name])
		s.Operation = name
		s.Bucket = bucket
		stats = append(stats, s)
	}
	return stats
}

// summarizeRecords applies the timed filter, then summarizes elapsed time and the
// memory samples carried by those same records.
func summarizeRecords(records []Record) AggregateStats {
	var elapsed, memory []float64
	for _, r := range records {
		if !r.Timed() {
			continue
		}
		elapsed = append(elapsed, r.elapsed())
		if r.MemoryMB != nil {
			memory = append(memory, *r.MemoryMB)
		}
	}
	return Summarize(elapsed, memory)
}
