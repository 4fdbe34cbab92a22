package perf

import "sort"

// Bucket is a closed range [Low, High] over the load metric.
// Buckets may overlap or leave gaps; neither is validated.
type Bucket struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	Low   int    `yaml:"low" json:"low" validate:"gte=0"`
	High  int    `yaml:"high" json:"high" validate:"gtefield=Low"`
}

// Contains reports whether load lies within the bucket, bounds inclusive.
func (b Bucket) Contains(load int) bool {
	return b.Low <= load && load <= b.High
}

// BucketMatch pairs a bucket with the records that fell into it.
type BucketMatch struct {
	Bucket  Bucket
	Records []Record
}

// DefaultLoadBuckets returns the standard open-tab ranges.
func DefaultLoadBuckets() []Bucket {
	return []Bucket{
		{Label: "1-10", Low: 1, High: 10},
		{Label: "11-20", Low: 11, High: 20},
		{Label: "21-30", Low: 21, High: 30},
		{Label: "31-40", Low: 31, High: 40},
		{Label: "41-50", Low: 41, High: 50},
		{Label: "51+", Low: 51, High: 100},
	}
}

// BucketRecords assigns load-attributed records to every bucket whose range contains
// their load metric. The result has one entry per bucket in the given order; empty
// buckets are kept, and a record may land in several overlapping buckets.
func BucketRecords(records []Record, buckets []Bucket) []BucketMatch {
	matches := make([]BucketMatch, len(buckets))
	for i, b := range buckets {
		matches[i].Bucket = b
	}
	for _, r := range records {
		if !r.LoadAttributed() {
			continue
		}
		for i := range matches {
			if matches[i].Bucket.Contains(*r.LoadMetric) {
				matches[i].Records = append(matches[i].Records, r)
			}
		}
	}
	return matches
}

// Bucket partitions the dataset's records (in timestamp order) into the given buckets.
func (d *Dataset) Bucket(buckets []Bucket) []BucketMatch {
	if d == nil {
		return BucketRecords(nil, buckets)
	}
	return BucketRecords(d.ordered, buckets)
}

// sortBuckets returns a copy of buckets ordered by (Low, High), keeping caller order for ties.
func sortBuckets(buckets []Bucket) []Bucket {
	sorted := make([]Bucket, len(buckets))
	copy(sorted, buckets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Low != sorted[j].Low {
			return sorted[i].Low < sorted[j].Low
		}
		return sorted[i].High < sorted[j].High
	})
	return sorted
}
