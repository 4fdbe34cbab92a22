package perf

import "fmt"

// Resource metadata keys understood by AssessHost.
const (
	HostCPUPercent    = "cpu_percent"
	HostMemoryPercent = "memory_percent"
	HostProcessCount  = "process_count"
)

// HostFinding is one observation about the host that produced a dataset.
type HostFinding struct {
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

// HostAssessment says whether host load could explain slow measurements.
type HostAssessment struct {
	Healthy  bool          `json:"healthy"`
	Findings []HostFinding `json:"findings,omitempty"`
}

// AssessHost evaluates a resource metadata map sampled on the measuring host.
// Missing keys read as 0. The host is healthy when CPU < 50%, memory < 70% and
// fewer than 150 processes run; findings flag CPU > 80%, memory > 85% and more
// than 200 processes.
func AssessHost(meta map[string]float64) HostAssessment {
	cpu, mem, procs := meta[HostCPUPercent], meta[HostMemoryPercent], meta[HostProcessCount]

	var a HostAssessment
	if cpu > 80 {
		a.Findings = append(a.Findings, HostFinding{HostCPUPercent, cpu, fmt.Sprintf("high CPU usage (%.1f%%)", cpu)})
	}
	if mem > 85 {
		a.Findings = append(a.Findings, HostFinding{HostMemoryPercent, mem, fmt.Sprintf("high memory usage (%.1f%%), host may be swapping", mem)})
	}
	if procs > 200 {
		a.Findings = append(a.Findings, HostFinding{HostProcessCount, procs, fmt.Sprintf("high process count (%.0f)", procs)})
	}
	a.Healthy = cpu < 50 && mem < 70 && procs < 150
	return a
}
