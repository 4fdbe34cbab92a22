package cmd

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/perftrend/perf"
)

var (
	hostMeta        map[string]string // Host resource metadata (cpu_percent, memory_percent, process_count)
	scopeOperations []string          // Operations the load trend is restricted to
	byLoad          bool              // Trend per distinct load value instead of per bucket
	driftOperation  string            // Operation for drift; empty means all
)

// --- perftrend analyze ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze <log.csv>...",
	Short: "Full performance report for one or more logs",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		datasets := readLogs(args)
		rc := cfg.ReportConfig()
		rc.Operations = scopeOperations
		host, err := parseHostMeta(hostMeta)
		if err != nil {
			logrus.Fatalf("Invalid --host: %v", err)
		}
		rc.Host = host

		reports, err := perf.BuildReports(cmd.Context(), datasets, rc)
		if err != nil {
			logrus.Fatalf("Analysis failed: %v", err)
		}
		logrus.Infof("Analyzed %d log(s).", len(reports))

		out := cmd.OutOrStdout()
		if wantJSON() {
			if err := writeJSON(out, reports); err != nil {
				logrus.Fatalf("Failed to write output: %v", err)
			}
			return
		}
		for i, r := range reports {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printReport(out, r)
		}
	},
}

// --- perftrend trend ---

var trendCmd = &cobra.Command{
	Use:   "trend <log.csv>",
	Short: "Mean latency across load buckets",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ds := readLogs(args)[0].Filter(scopeOperations...)
		var t *perf.TrendResult
		if byLoad {
			t = perf.ProgressionByLoad(ds)
		} else {
			t = perf.DetectTrend(ds, cfg.Buckets)
		}

		out := cmd.OutOrStdout()
		if wantJSON() {
			if err := writeJSON(out, t); err != nil {
				logrus.Fatalf("Failed to write output: %v", err)
			}
			return
		}
		fmt.Fprintf(out, "=== Load Trend: %s ===\n", t.Version)
		printTrend(out, t)
	},
}

// --- perftrend drift ---

var driftCmd = &cobra.Command{
	Use:   "drift <log.csv>",
	Short: "First-vs-last latency drift per operation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ds := readLogs(args)[0]
		var results []perf.DriftResult
		if driftOperation != "" {
			results = []perf.DriftResult{perf.DetectDrift(ds, driftOperation)}
		} else {
			results = perf.DetectDriftAll(ds)
		}

		out := cmd.OutOrStdout()
		if wantJSON() {
			if err := writeJSON(out, results); err != nil {
				logrus.Fatalf("Failed to write output: %v", err)
			}
			return
		}
		fmt.Fprintf(out, "=== Drift: %s ===\n", ds.Version())
		printDrift(out, results)
	},
}

// readLogs loads every path, labelling datasets from --version-label when given.
func readLogs(paths []string) []*perf.Dataset {
	datasets := make([]*perf.Dataset, len(paths))
	for i, p := range paths {
		ds, err := ReadLog(p, labelFor(i))
		if err != nil {
			logrus.Fatalf("Failed to read log: %v", err)
		}
		datasets[i] = ds
	}
	return datasets
}

// parseHostMeta converts --host key=value pairs into resource metadata.
// Nil input yields nil, which skips the host assessment.
func parseHostMeta(raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	meta := make(map[string]float64, len(raw))
	for k, v := range raw {
		switch k {
		case perf.HostCPUPercent, perf.HostMemoryPercent, perf.HostProcessCount:
		default:
			return nil, fmt.Errorf("unknown host metric %q", k)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("host metric %s: %w", k, err)
		}
		meta[k] = f
	}
	return meta, nil
}

func init() {
	analyzeCmd.Flags().StringToStringVar(&hostMeta, "host", nil, "Host resource metadata, e.g. cpu_percent=35,memory_percent=60,process_count=120")
	analyzeCmd.Flags().StringSliceVar(&scopeOperations, "operation", nil, "Restrict the load trend to these operations")

	trendCmd.Flags().StringSliceVar(&scopeOperations, "operation", nil, "Restrict the trend to these operations")
	trendCmd.Flags().BoolVar(&byLoad, "by-load", false, "One trend point per distinct load value instead of per bucket")

	driftCmd.Flags().StringVar(&driftOperation, "operation", "", "Operation to check (default: all operations)")
}
