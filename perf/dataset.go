package perf

import (
	"sort"
	"time"
)

// Dataset is an immutable, ordered sequence of records plus a version label.
// The label is free-form and only used for display and comparison keys.
type Dataset struct {
	version string
	records []Record // arrival order
	ordered []Record // timestamp order, ties broken by arrival order
}

// NewDataset builds a Dataset from records in arrival order.
// Records are deep-copied, including their optional measurements, and each record's Seq
// is set to its arrival position, so later changes to records do not affect the dataset.
func NewDataset(version string, records []Record) *Dataset {
	ds := &Dataset{
		version: version,
		records: cloneRecords(records),
	}
	for i := range ds.records {
		ds.records[i].Seq = i
	}

	ds.ordered = make([]Record, len(ds.records))
	copy(ds.ordered, ds.records)
	sort.SliceStable(ds.ordered, func(i, j int) bool {
		return ds.ordered[i].Timestamp.Before(ds.ordered[j].Timestamp)
	})
	return ds
}

// Version returns the dataset's version label.
func (d *Dataset) Version() string {
	if d == nil {
		return ""
	}
	return d.version
}

// Len returns the number of records, including untimed ones.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a deep copy of the records in arrival order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return cloneRecords(d.records)
}

// Ordered returns a deep copy of the records sorted by timestamp, falling back to arrival order.
func (d *Dataset) Ordered() []Record {
	if d == nil {
		return nil
	}
	return cloneRecords(d.ordered)
}

func cloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	return out
}

// Operations returns the sorted distinct operation names of timed records.
func (d *Dataset) Operations() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, r := range d.records {
		if r.Timed() {
			seen[r.Operation] = true
		}
	}
	return sortedKeys(seen)
}

// Filter returns a new dataset holding only records of the named operations.
// With no names it returns an unfiltered copy.
func (d *Dataset) Filter(operations ...string) *Dataset {
	if d == nil {
		return NewDataset("", nil)
	}
	if len(operations) == 0 {
		return NewDataset(d.version, d.records)
	}
	keep := make(map[string]bool, len(operations))
	for _, op := range operations {
		keep[op] = true
	}
	var filtered []Record
	for _, r := range d.records {
		if keep[r.Operation] {
			filtered = append(filtered, r)
		}
	}
	return NewDataset(d.version, filtered)
}

// timedSamples returns the elapsed values of the operation's timed records in timestamp order.
// An empty operation name selects every operation.
func (d *Dataset) timedSamples(operation string) []float64 {
	if d == nil {
		return nil
	}
	var samples []float64
	for _, r := range d.ordered {
		if !r.Timed() {
			continue
		}
		if operation != "" && r.Operation != operation {
			continue
		}
		samples = append(samples, r.elapsed())
	}
	return samples
}

// memorySamples returns every memory sample in timestamp order, regardless of phase.
func (d *Dataset) memorySamples() []float64 {
	if d == nil {
		return nil
	}
	var samples []float64
	for _, r := range d.ordered {
		if r.MemoryMB != nil {
			samples = append(samples, *r.MemoryMB)
		}
	}
	return samples
}

// Span returns the time between the earliest and latest timestamped record.
// Zero when fewer than two records carry a timestamp.
func (d *Dataset) Span() time.Duration {
	if d == nil {
		return 0
	}
	var first, last time.Time
	for _, r := range d.ordered {
		if r.Timestamp.IsZero() {
			continue
		}
		if first.IsZero() {
			first = r.Timestamp
		}
		last = r.Timestamp
	}
	if first.IsZero() {
		return 0
	}
	return last.Sub(first)
}

// sortedKeys returns the keys of a set in ascending order.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
