package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/inference-sim/perftrend/perf"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printReport writes a single-dataset report in text form.
func printReport(w io.Writer, r *perf.Report) {
	s := r.Summary
	fmt.Fprintf(w, "=== Performance Report: %s ===\n", r.Version)
	fmt.Fprintf(w, "Records              : %d (%d timed)\n", s.Records, r.Quality.Timed)
	fmt.Fprintf(w, "Operations           : %d\n", s.Operations)
	fmt.Fprintf(w, "Session Duration     : %s\n", s.Duration)
	fmt.Fprintf(w, "Throughput           : %.1f records/min\n", s.RecordsPerMinute)
	if s.Memory.Samples > 0 {
		fmt.Fprintf(w, "Memory               : %.1f - %.1f MB (growth %.1f MB)\n", s.Memory.MinMB, s.Memory.MaxMB, s.Memory.GrowthMB)
	}
	if s.LoadMax > 0 {
		fmt.Fprintf(w, "Load Range           : %d - %d\n", s.LoadMin, s.LoadMax)
	}
	printQuality(w, r.Quality)

	fmt.Fprintln(w, "\n--- Operations ---")
	fmt.Fprintf(w, "%-28s %6s %10s %10s %10s %10s %10s  %s\n", "Operation", "Count", "Mean", "P50", "P95", "Max", "StdDev", "Flags")
	for _, op := range r.Operations {
		fmt.Fprintf(w, "%-28s %6d %10.1f %10.1f %10.1f %10.1f %10.1f  %s\n",
			op.Operation, op.Count, op.Mean, op.P50, op.P95, op.Max, op.StdDev, strings.Join(op.Flags, ","))
	}

	fmt.Fprintln(w, "\n--- Load Trend ---")
	printTrend(w, r.Trend)

	fmt.Fprintln(w, "\n--- Drift ---")
	printDrift(w, r.Drift)

	c := r.Correlation
	fmt.Fprintln(w, "\n--- Load Correlation ---")
	fmt.Fprintf(w, "%s: r=%.3f (%s, %d samples)\n", c.Operation, c.R, c.Strength, c.Samples)

	if r.Host != nil {
		fmt.Fprintln(w, "\n--- Host ---")
		fmt.Fprintf(w, "Healthy              : %t\n", r.Host.Healthy)
		for _, f := range r.Host.Findings {
			fmt.Fprintf(w, "  ! %s\n", f.Message)
		}
	}

	fmt.Fprintln(w, "\n--- Grade ---")
	printGrade(w, r.Grade.Inputs, r.Grade.GradeResult)

	fmt.Fprintln(w, "\n--- Recommendations ---")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(w, "[%s] %s\n", rec.Code, rec.Message)
	}
}

func printQuality(w io.Writer, q perf.DataQuality) {
	if q.Malformed > 0 {
		fmt.Fprintf(w, "Malformed            : %d COMPLETE row(s) without a duration\n", q.Malformed)
	}
	if q.Unattributed > 0 {
		fmt.Fprintf(w, "Unattributed         : %d timed row(s) without a load metric\n", q.Unattributed)
	}
}

// printTrend writes one line per trend point.
func printTrend(w io.Writer, t *perf.TrendResult) {
	fmt.Fprintf(w, "%-10s %6s %10s %10s %8s  %-14s %s\n", "Bucket", "Count", "Mean", "Change", "Dir", "Class", "Severity")
	for _, p := range t.Points {
		change := "-"
		switch {
		case p.RatioUndefined:
			change = "n/a"
		case p.HasChange:
			change = fmt.Sprintf("%+.1f%%", p.PctChange)
		}
		fmt.Fprintf(w, "%-10s %6d %10.1f %10s %8s  %-14s %s\n",
			p.Label, p.Stats.Count, p.Stats.Mean, change, p.Direction, p.Classification, p.Severity)
	}
}

func printDrift(w io.Writer, results []perf.DriftResult) {
	for _, d := range results {
		switch {
		case !d.Sufficient:
			fmt.Fprintf(w, "%-28s insufficient samples (%d < %d)\n", d.Operation, d.Samples, perf.DriftWindow)
		case d.RatioUndefined:
			fmt.Fprintf(w, "%-28s %8.1f -> %8.1f ms  (n/a) %s\n", d.Operation, d.FirstMean, d.LastMean, d.Classification)
		default:
			fmt.Fprintf(w, "%-28s %8.1f -> %8.1f ms  %+.1f%% %s\n", d.Operation, d.FirstMean, d.LastMean, d.DegradationPct, d.Classification)
		}
	}
}

func printGrade(w io.Writer, in perf.GradeInputs, g perf.GradeResult) {
	fmt.Fprintf(w, "Latency A            : %.1f ms\n", in.LatencyA)
	fmt.Fprintf(w, "Latency B            : %.1f ms\n", in.LatencyB)
	fmt.Fprintf(w, "Memory Growth Rate   : %.2f MB/100 ops\n", in.MemoryGrowthRate)
	for _, p := range g.Penalties {
		fmt.Fprintf(w, "  -%d %s (%.1f > %.0f)\n", p.Points, p.Metric, p.Value, p.Threshold)
	}
	fmt.Fprintf(w, "Score                : %d/100 (%s)\n", g.Score, g.Letter)
}

// printComparison writes a baseline-vs-versions comparison in text form.
func printComparison(w io.Writer, c *perf.ComparisonResult) {
	fmt.Fprintf(w, "=== Comparison: %s vs %s ===\n", c.Baseline, strings.Join(c.Versions, ", "))
	for _, op := range c.Operations {
		fmt.Fprintf(w, "%-28s %s %.1f ms\n", op.Operation, c.Baseline, op.Baseline.Mean)
		for _, d := range op.Versions {
			fmt.Fprintf(w, "  %-26s %.1f ms  %+.1f%% %s\n", d.Version, d.Stats.Mean, d.ImprovementPct, d.Verdict)
		}
		fmt.Fprintf(w, "  variation %.1f%% (%s)\n", op.VariationPct, op.Consistency)
	}

	fmt.Fprintf(w, "\n--- Total (%s) ---\n", strings.Join(c.Total.Operations, ", "))
	fmt.Fprintf(w, "%-28s %.1f ms\n", c.Baseline, c.Total.BaselineMs)
	for _, d := range c.Total.Versions {
		fmt.Fprintf(w, "%-28s %.1f ms  %+.1f%% %s\n", d.Version, d.TotalMs, d.ImprovementPct, d.Verdict)
	}

	fmt.Fprintln(w, "\n--- Memory Growth ---")
	fmt.Fprintf(w, "%-28s %.1f MB\n", c.Memory.Baseline.Version, c.Memory.Baseline.GrowthMB)
	for _, m := range c.Memory.Versions {
		fmt.Fprintf(w, "%-28s %.1f MB  %+.1f%%\n", m.Version, m.GrowthMB, m.ImprovementPct)
	}

	fmt.Fprintln(w, "\n--- Sessions ---")
	for _, s := range c.Sessions {
		fmt.Fprintf(w, "%-28s %d records in %s (%.1f/min)\n", s.Version, s.Records, s.Duration, s.RecordsPerMinute)
	}
}
