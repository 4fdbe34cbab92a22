package perf

// DriftWindow is the number of samples averaged at each end of an operation's history.
// It is also the minimum sample count for a drift classification.
const DriftWindow = 10

// DriftResult describes how an operation's latency moved between the start and the
// end of its sample sequence, independent of load.
type DriftResult struct {
	Operation string `json:"operation"`
	Samples   int    `json:"samples"`

	// Sufficient is false when fewer than DriftWindow samples exist; the remaining
	// fields are then zero and no classification is made.
	Sufficient     bool           `json:"sufficient"`
	FirstMean      float64        `json:"first_mean_ms"`
	LastMean       float64        `json:"last_mean_ms"`
	DegradationPct float64        `json:"degradation_pct"`
	RatioUndefined bool           `json:"ratio_undefined,omitempty"`
	Classification Classification `json:"classification,omitempty"`
}

// DetectDrift compares the mean of the operation's first DriftWindow timed samples with
// the mean of its last DriftWindow (the windows overlap when there are fewer than
// 2*DriftWindow samples). Samples follow timestamp order.
//
// A zero first-window mean is classified STABLE if the last-window mean is also zero,
// and DEGRADING (with RatioUndefined set) otherwise.
func DetectDrift(ds *Dataset, operation string) DriftResult {
	samples := ds.timedSamples(operation)
	res := DriftResult{Operation: operation, Samples: len(samples)}
	if len(samples) < DriftWindow {
		return res
	}
	res.Sufficient = true
	res.FirstMean = mean(samples[:DriftWindow])
	res.LastMean = mean(samples[len(samples)-DriftWindow:])

	pct, ok := pctChange(res.FirstMean, res.LastMean)
	switch {
	case ok:
		res.DegradationPct = pct
		res.Classification = ClassifyChange(pct)
	case res.LastMean == 0:
		res.Classification = Stable
	default:
		res.RatioUndefined = true
		res.Classification = Degrading
	}
	return res
}

// DetectDriftAll runs DetectDrift for every operation in the dataset, sorted by name.
func DetectDriftAll(ds *Dataset) []DriftResult {
	ops := ds.Operations()
	results := make([]DriftResult, 0, len(ops))
	for _, op := range ops {
		results = append(results, DetectDrift(ds, op))
	}
	return results
}
