package perf

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ReportConfig controls BuildReport.
type ReportConfig struct {
	// Buckets for the load trend. Nil uses DefaultLoadBuckets.
	Buckets []Bucket
	// Operations restricts the load trend and progression to these operations. Empty means all.
	Operations []string
	// Grade names the operations feeding the grade. Nil uses DefaultGradeConfig.
	Grade *GradeConfig
	// Parallelism bounds concurrent BuildReports work. 0 means unbounded.
	Parallelism int
	// Host is resource metadata sampled on the measuring host. Nil skips the host assessment.
	Host map[string]float64
}

// Summary is the whole-dataset overview of a report.
type Summary struct {
	Records          int           `json:"records"`
	Operations       int           `json:"operations"`
	Duration         time.Duration `json:"duration"`
	RecordsPerMinute float64       `json:"records_per_minute"`
	Memory           MemoryGrowth  `json:"memory"`
	LoadMin          int           `json:"load_min"`
	LoadMax          int           `json:"load_max"`
}

// OperationReport is one operation's statistics with its latency flags.
type OperationReport struct {
	AggregateStats
	Flags []string `json:"flags,omitempty"`
}

// Report is the complete single-dataset analysis.
type Report struct {
	Version         string            `json:"version"`
	Summary         Summary           `json:"summary"`
	Operations      []OperationReport `json:"operations"`
	Trend           *TrendResult      `json:"trend"`
	Progression     *TrendResult      `json:"progression"`
	Drift           []DriftResult     `json:"drift"`
	Correlation     Correlation       `json:"correlation"`
	Grade           DatasetGrade      `json:"grade"`
	Recommendations []Recommendation  `json:"recommendations"`
	Quality         DataQuality       `json:"quality"`
	Host            *HostAssessment   `json:"host,omitempty"`
}

// BuildReport runs every single-dataset analysis over ds.
func BuildReport(ds *Dataset, config *ReportConfig) *Report {
	if config == nil {
		config = &ReportConfig{}
	}
	buckets := config.Buckets
	if buckets == nil {
		buckets = DefaultLoadBuckets()
	}
	gradeCfg := config.Grade
	if gradeCfg == nil {
		gradeCfg = DefaultGradeConfig()
	}

	agg := Aggregate(ds)
	session := Session(ds)
	r := &Report{
		Version: ds.Version(),
		Summary: Summary{
			Records:          ds.Len(),
			Operations:       len(agg.Stats),
			Duration:         session.Duration,
			RecordsPerMinute: session.RecordsPerMinute,
			Memory:           Growth(ds),
		},
		Quality: agg.Quality,
	}
	r.Summary.LoadMin, r.Summary.LoadMax = loadRange(ds)
	for _, s := range agg.Stats {
		r.Operations = append(r.Operations, OperationReport{AggregateStats: s, Flags: OperationFlags(s)})
	}

	scoped := ds.Filter(config.Operations...)
	r.Trend = DetectTrend(scoped, buckets)
	r.Progression = ProgressionByLoad(scoped)
	r.Drift = DetectDriftAll(ds)
	r.Correlation = LoadCorrelation(ds, gradeCfg.SearchOperation)
	r.Grade = GradeDataset(ds, gradeCfg)
	r.Recommendations = Recommend(r)
	if config.Host != nil {
		h := AssessHost(config.Host)
		r.Host = &h
	}

	logrus.Debugf("dataset %q: %d records, %d operations, grade %d (%s)",
		r.Version, r.Summary.Records, r.Summary.Operations, r.Grade.Score, r.Grade.Letter)
	return r
}

// BuildReports builds one report per dataset concurrently, preserving input order.
// Datasets not yet started when ctx is cancelled are skipped and ctx's error is returned.
func BuildReports(ctx context.Context, datasets []*Dataset, config *ReportConfig) ([]*Report, error) {
	reports := make([]*Report, len(datasets))
	g, ctx := errgroup.WithContext(ctx)
	if config != nil && config.Parallelism > 0 {
		g.SetLimit(config.Parallelism)
	}
	for i, ds := range datasets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = BuildReport(ds, config)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// loadRange returns the smallest and largest load metric of load-attributed records.
func loadRange(ds *Dataset) (lo, hi int) {
	seen := false
	for _, r := range ds.Ordered() {
		if !r.LoadAttributed() {
			continue
		}
		l := *r.LoadMetric
		if !seen {
			lo, hi, seen = l, l, true
			continue
		}
		lo = min(lo, l)
		hi = max(hi, l)
	}
	return lo, hi
}
