// Package proc provides lightweight, zero-dependency whole-host resource
// readers on Linux: aggregate and per-core CPU jiffy counters from
// /proc/stat, and memory/swap totals from /proc/meminfo. It backs the
// reference native collector (cmd/collector) that emits Heartbeat's
// SystemMetrics wire format.
//
// All reads are counters or instantaneous gauges; callers wanting a
// utilization percentage take deltas between two calls to ReadSystemCPU
// or ReadPerCoreCPU and divide active-delta by total-delta.
//
// Package import path: github.com/ja7ad/heartbeat/pkg/system/proc
package proc
