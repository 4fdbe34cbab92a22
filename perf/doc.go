// Package perf provides the analytics engine for performance-instrumentation logs.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - record.go, dataset.go: the Record model and the immutable Dataset
//   - aggregate.go: per-operation and per-bucket statistics (every other component builds on it)
//   - trend.go, drift.go: cross-bucket trends and first/last window drift
//   - compare.go: baseline-vs-version comparison
//   - grade.go: composite health score and letter grade
//
// # Architecture
//
// Every exported analysis is a pure function over an immutable Dataset and returns a
// freshly allocated result. Nothing is cached, so analyses of different datasets may run
// concurrently without coordination (see BuildReports).
//
// Only records that are "timed" (COMPLETE phase with an elapsed duration) contribute to
// latency statistics. Records that also carry a load metric are "load-attributed" and are
// the only ones considered for bucketed analysis. Records that fail these filters are
// counted in DataQuality, never treated as errors.
//
// Percent changes against a zero baseline never divide by zero: each analysis documents the
// value it reports instead.
package perf
