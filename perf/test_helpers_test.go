package perf

import (
	"time"
)

var testEpoch = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// completeAt builds a timed record at epoch + sec seconds.
func completeAt(sec int, op string, elapsed float64) Record {
	return Record{
		Timestamp: testEpoch.Add(time.Duration(sec) * time.Second),
		Operation: op,
		Phase:     PhaseComplete,
		ElapsedMs: Ptr(elapsed),
	}
}

// loaded returns a copy of r carrying the load metric.
func loaded(r Record, load int) Record {
	r.LoadMetric = Ptr(load)
	return r
}

// withMemory returns a copy of r carrying a memory sample.
func withMemory(r Record, mb float64) Record {
	r.MemoryMB = Ptr(mb)
	return r
}

// samplesDataset builds a dataset with one timed record per value, one second apart.
func samplesDataset(version, op string, values ...float64) *Dataset {
	records := make([]Record, len(values))
	for i, v := range values {
		records[i] = completeAt(i, op, v)
	}
	return NewDataset(version, records)
}
