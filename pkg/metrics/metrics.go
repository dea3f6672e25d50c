// Package metrics defines the SystemMetrics record emitted by the native
// collector and the tolerant line decoder that turns collector stdout into
// typed samples.
package metrics

// CPUCore is one entry of a sample's per-core usage sequence. Order is
// stable across samples and length equals the host core count.
type CPUCore struct {
	CoreID       int     `json:"core_id"`
	UsagePercent float64 `json:"usage_percent"`
}

// SystemMetrics is the single sample emitted once per collection tick by
// the native collector. Records are immutable once parsed; the pipeline
// never mutates a sample.
type SystemMetrics struct {
	Timestamp int64 `json:"timestamp"`

	CPUUsagePercent float64   `json:"cpu_usage_percent"`
	CPUCores        []CPUCore `json:"cpu_cores"`

	MemoryTotalMB     float64 `json:"memory_total_mb"`
	MemoryUsedMB      float64 `json:"memory_used_mb"`
	MemoryFreeMB      float64 `json:"memory_free_mb"`
	MemoryAvailableMB float64 `json:"memory_available_mb"`
	MemoryUsagePercent float64 `json:"memory_usage_percent"`

	SwapTotalMB float64 `json:"swap_total_mb"`
	SwapUsedMB  float64 `json:"swap_used_mb"`

	CPUSpikeDetected    bool `json:"cpu_spike_detected"`
	MemoryLeakSuspected bool `json:"memory_leak_suspected"`
}

// Sample wraps a decoded SystemMetrics with a parser-assigned sequence
// number. Seq is not part of the wire contract; it exists purely so
// consumers and tests have an unambiguous "later sample" ordering even
// when two records share a Timestamp (see SPEC_FULL.md §3).
type Sample struct {
	SystemMetrics
	Seq uint64
}

// HasSwap reports whether the sample carries a configured swap device.
// SwapTotalMB == 0 means no swap configured (spec §3); all swap displays
// must be suppressed in that case.
func (s SystemMetrics) HasSwap() bool {
	return s.SwapTotalMB > 0
}

// HasCores reports whether per-core usage was reported for this sample.
// An empty CPUCores sequence means per-core renderings must be suppressed,
// never treated as an error.
func (s SystemMetrics) HasCores() bool {
	return len(s.CPUCores) > 0
}
