package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/perftrend/perf"
)

var (
	latencyA   float64 // Search-like mean latency (ms)
	latencyB   float64 // Creation-like mean latency (ms)
	memoryRate float64 // Memory growth (MB per 100 operations)
)

// --- perftrend grade ---

var gradeCmd = &cobra.Command{
	Use:   "grade [log.csv]",
	Short: "Composite 0-100 score from latency and memory growth",
	Long:  "Grade either explicit metric values (--latency-a, --latency-b, --memory-rate) or, when a log is given, the values derived from it using the configured search and creation operations.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var g perf.DatasetGrade
		if len(args) == 1 {
			g = perf.GradeDataset(readLogs(args)[0], cfg.GradeConfig())
		} else {
			g = perf.DatasetGrade{
				Inputs:      perf.GradeInputs{LatencyA: latencyA, LatencyB: latencyB, MemoryGrowthRate: memoryRate},
				GradeResult: perf.Grade(latencyA, latencyB, memoryRate),
			}
		}

		out := cmd.OutOrStdout()
		if wantJSON() {
			if err := writeJSON(out, g); err != nil {
				logrus.Fatalf("Failed to write output: %v", err)
			}
			return
		}
		fmt.Fprintln(out, "=== Grade ===")
		printGrade(out, g.Inputs, g.GradeResult)
	},
}

func init() {
	gradeCmd.Flags().Float64Var(&latencyA, "latency-a", 0, "Search-like operation mean latency (ms)")
	gradeCmd.Flags().Float64Var(&latencyB, "latency-b", 0, "Creation-like operation mean latency (ms)")
	gradeCmd.Flags().Float64Var(&memoryRate, "memory-rate", 0, "Memory growth rate (MB per 100 operations)")
}
