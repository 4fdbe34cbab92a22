package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/perftrend/perf"
)

// --- perftrend compare ---

var compareCmd = &cobra.Command{
	Use:   "compare <baseline.csv> <other.csv>...",
	Short: "Compare one or more versions against a baseline log",
	Long:  "Compare per-operation mean latency, the summed total over the configured canonical operations, memory growth and session throughput of each log against the first (baseline) log.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		datasets := readLogs(args)
		res := perf.Compare(datasets[0], datasets[1:], cfg.CompareConfig())

		out := cmd.OutOrStdout()
		if wantJSON() {
			if err := writeJSON(out, res); err != nil {
				logrus.Fatalf("Failed to write output: %v", err)
			}
			return
		}
		printComparison(out, res)
	},
}
