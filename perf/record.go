package perf

import (
	"fmt"
	"strings"
	"time"
)

// Phase is the lifecycle event a record was emitted for.
type Phase string

const (
	PhaseStart    Phase = "START"
	PhaseComplete Phase = "COMPLETE"
	PhaseError    Phase = "ERROR"
)

// validPhases maps accepted phase strings.
var validPhases = map[Phase]bool{
	PhaseStart:    true,
	PhaseComplete: true,
	PhaseError:    true,
}

// IsValidPhase returns true if the given string names a recognized phase.
func IsValidPhase(phase string) bool {
	return validPhases[Phase(phase)]
}

// ParsePhase converts a phase string (case-insensitive, surrounding spaces ignored) to a Phase.
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToUpper(strings.TrimSpace(s)))
	if !validPhases[p] {
		return "", fmt.Errorf("unknown event phase %q", s)
	}
	return p, nil
}

// Record is one instrumentation sample.
// Optional measurements are nil when the emitter did not provide them.
type Record struct {
	Seq        int       // arrival position within the dataset; always set by NewDataset
	Timestamp  time.Time // zero when unknown
	Operation  string
	Phase      Phase
	ElapsedMs  *float64 // defined only for COMPLETE records
	MemoryMB   *float64
	LoadMetric *int // e.g. open tab count
	Details    string
}

// clone returns a copy of r that shares no memory with it.
func (r Record) clone() Record {
	if r.ElapsedMs != nil {
		r.ElapsedMs = Ptr(*r.ElapsedMs)
	}
	if r.MemoryMB != nil {
		r.MemoryMB = Ptr(*r.MemoryMB)
	}
	if r.LoadMetric != nil {
		r.LoadMetric = Ptr(*r.LoadMetric)
	}
	return r
}

// Ptr returns a pointer to v. Convenient for filling optional Record fields.
func Ptr[T any](v T) *T {
	return &v
}

// Timed reports whether the record is complete and carries a duration.
// Only timed records participate in latency statistics.
func (r Record) Timed() bool {
	return r.Phase == PhaseComplete && r.ElapsedMs != nil
}

// LoadAttributed reports whether the record is timed and carries a load metric.
func (r Record) LoadAttributed() bool {
	return r.Timed() && r.LoadMetric != nil
}

// Malformed reports a COMPLETE record without a duration.
func (r Record) Malformed() bool {
	return r.Phase == PhaseComplete && r.ElapsedMs == nil
}

// elapsed returns the duration of a timed record; callers must check Timed first.
func (r Record) elapsed() float64 {
	return *r.ElapsedMs
}
