package perf

import (
	"sort"
	"strconv"
)

// TrendPoint is one step along an ordered load axis.
type TrendPoint struct {
	Label string         `json:"label"`
	Low   int            `json:"low"`
	High  int            `json:"high"`
	Stats AggregateStats `json:"stats"`

	// Change from the previous point. HasChange is false for the first point and
	// whenever either point has no samples.
	HasChange      bool           `json:"has_change"`
	PctChange      float64        `json:"pct_change"`
	RatioUndefined bool           `json:"ratio_undefined,omitempty"` // previous mean was 0 and current is not
	Direction      Direction      `json:"direction"`
	Classification Classification `json:"classification,omitempty"`

	// Change from the first non-empty point (the low-load baseline).
	PctFromFirst float64  `json:"pct_from_first"`
	Severity     Severity `json:"severity"`
}

// TrendResult is an ordered list of trend points.
type TrendResult struct {
	Version string       `json:"version"`
	Points  []TrendPoint `json:"points"`
}

// DetectTrend compares all-operation mean latency across buckets ordered by range.
//
// For each bucket after the first, pct = (mean_i - mean_{i-1}) / mean_{i-1} * 100,
// labelled RISING above +20%, FALLING below -20%, FLAT otherwise. A zero previous mean
// reports 0% FLAT when the current mean is also 0, and RISING with RatioUndefined
// otherwise. Empty buckets stay on the axis with Direction NONE.
func DetectTrend(ds *Dataset, buckets []Bucket) *TrendResult {
	ordered := sortBuckets(buckets)
	result := &TrendResult{Version: ds.Version()}
	for _, m := range ds.Bucket(ordered) {
		s := summarizeRecords(m.Records)
		s.Bucket = m.Bucket.Label
		result.Points = append(result.Points, TrendPoint{
			Label: m.Bucket.Label,
			Low:   m.Bucket.Low,
			High:  m.Bucket.High,
			Stats: s,
		})
	}
	annotateTrend(result.Points)
	return result
}

// ProgressionByLoad builds a trend with one point per distinct load value.
func ProgressionByLoad(ds *Dataset) *TrendResult {
	loads := make(map[int]bool)
	for _, r := range ds.Ordered() {
		if r.LoadAttributed() {
			loads[*r.LoadMetric] = true
		}
	}
	values := make([]int, 0, len(loads))
	for l := range loads {
		values = append(values, l)
	}
	sort.Ints(values)

	buckets := make([]Bucket, len(values))
	for i, l := range values {
		buckets[i] = Bucket{Label: strconv.Itoa(l), Low: l, High: l}
	}
	return DetectTrend(ds, buckets)
}

// annotateTrend fills the change fields in place.
func annotateTrend(points []TrendPoint) {
	first := -1
	for i := range points {
		p := &points[i]
		p.Direction = DirectionNone
		p.Severity = SeverityOK
		if p.Stats.Count == 0 {
			continue
		}
		if first < 0 {
			first = i
		} else if pct, ok := pctChange(points[first].Stats.Mean, p.Stats.Mean); ok {
			p.PctFromFirst = pct
			p.Severity = severityOf(pct)
		}

		if i == 0 || points[i-1].Stats.Count == 0 {
			continue
		}
		prev, cur := points[i-1].Stats.Mean, p.Stats.Mean
		p.HasChange = true
		pct, ok := pctChange(prev, cur)
		switch {
		case ok:
			p.PctChange = pct
			p.Direction = directionOf(pct)
			p.Classification = ClassifyChange(pct)
		case cur == 0:
			p.Direction = DirectionFlat
			p.Classification = Stable
		default:
			p.RatioUndefined = true
			p.Direction = DirectionRising
			p.Classification = Degrading
		}
	}
}
