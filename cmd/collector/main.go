//go:build linux

// Command collector is a native /proc-based sampler that emits Heartbeat's
// SystemMetrics wire format as line-delimited JSON on stdout, one line per
// tick. It is the reference implementation of the "native collector
// subprocess" the core treats as an external, language-agnostic ground
// truth — heartbeat spawns it (or any other program honoring the same
// contract) and never inspects how the numbers were produced.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ja7ad/heartbeat/pkg/system/proc"
	"github.com/ja7ad/heartbeat/pkg/system/util"
	"github.com/ja7ad/heartbeat/pkg/types"
)

// systemMetrics mirrors heartbeat's wire contract exactly; duplicated here
// (rather than imported) because the collector is, by design, a standalone
// process with no compile-time dependency on the core it feeds.
type systemMetrics struct {
	Timestamp int64 `json:"timestamp"`

	CPUUsagePercent float64   `json:"cpu_usage_percent"`
	CPUCores        []cpuCore `json:"cpu_cores"`

	MemoryTotalMB      float64 `json:"memory_total_mb"`
	MemoryUsedMB       float64 `json:"memory_used_mb"`
	MemoryFreeMB       float64 `json:"memory_free_mb"`
	MemoryAvailableMB  float64 `json:"memory_available_mb"`
	MemoryUsagePercent float64 `json:"memory_usage_percent"`

	SwapTotalMB float64 `json:"swap_total_mb"`
	SwapUsedMB  float64 `json:"swap_used_mb"`

	CPUSpikeDetected    bool `json:"cpu_spike_detected"`
	MemoryLeakSuspected bool `json:"memory_leak_suspected"`
}

type cpuCore struct {
	CoreID       int     `json:"core_id"`
	UsagePercent float64 `json:"usage_percent"`
}

const (
	// cpuSpikeThreshold flags a tick where overall utilization jumps well
	// past ordinary load rather than merely crossing the UI's warn band.
	cpuSpikeThreshold = 90.0
	// memLeakWindow is how many consecutive rising ticks are required
	// before memory growth is called a suspected leak rather than noise.
	memLeakWindow = 5
)

func main() {
	interval := flag.Duration("interval", time.Second, "sampling interval")
	ema := flag.Float64("ema", 0.3, "EMA weight of the newest CPU reading, 1 disables smoothing")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	smoother := util.NewEMA(*ema)
	enc := json.NewEncoder(os.Stdout)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	prevActive, prevTotal, err := proc.ReadSystemCPU()
	if err != nil {
		log.Error("collector: initial /proc/stat read failed", "err", err)
		os.Exit(1)
	}
	prevCores, _ := proc.ReadPerCoreCPU()

	risingMem := 0
	var prevMemUsedMB float64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		sample, newActive, newTotal, newCores, err := sampleOnce(prevActive, prevTotal, prevCores, smoother)
		if err != nil {
			log.Warn("collector: sample failed, skipping tick", "err", err)
			continue
		}
		prevActive, prevTotal, prevCores = newActive, newTotal, newCores

		sample.CPUSpikeDetected = sample.CPUUsagePercent >= cpuSpikeThreshold

		if sample.MemoryUsedMB > prevMemUsedMB {
			risingMem++
		} else {
			risingMem = 0
		}
		sample.MemoryLeakSuspected = risingMem >= memLeakWindow
		prevMemUsedMB = sample.MemoryUsedMB

		if err := enc.Encode(sample); err != nil {
			log.Error("collector: stdout encode failed", "err", err)
			os.Exit(1)
		}
	}
}

func sampleOnce(prevActive, prevTotal uint64, prevCores []proc.CoreCPU, smoother *util.EMA) (systemMetrics, uint64, uint64, []proc.CoreCPU, error) {
	active, total, err := proc.ReadSystemCPU()
	if err != nil {
		return systemMetrics{}, 0, 0, nil, fmt.Errorf("read system cpu: %w", err)
	}
	cpuPct := util.Clamp01(util.SafeDiv(
		float64(util.DeltaU64(active, prevActive)),
		float64(util.DeltaU64(total, prevTotal)),
	)) * 100
	cpuPct = smoother.Next(cpuPct)

	cores, err := proc.ReadPerCoreCPU()
	if err != nil {
		return systemMetrics{}, 0, 0, nil, fmt.Errorf("read per-core cpu: %w", err)
	}
	byID := make(map[int]proc.CoreCPU, len(prevCores))
	for _, c := range prevCores {
		byID[c.CoreID] = c
	}
	cpuCores := make([]cpuCore, 0, len(cores))
	for _, c := range cores {
		prev := byID[c.CoreID]
		pct := util.Clamp01(util.SafeDiv(
			float64(util.DeltaU64(c.Active, prev.Active)),
			float64(util.DeltaU64(c.Total, prev.Total)),
		)) * 100
		cpuCores = append(cpuCores, cpuCore{CoreID: c.CoreID, UsagePercent: pct})
	}

	mi, err := proc.ReadMemInfo()
	if err != nil {
		return systemMetrics{}, 0, 0, nil, fmt.Errorf("read meminfo: %w", err)
	}
	totalMB := types.Bytes(mi.TotalKB * 1024).MB()
	freeMB := types.Bytes(mi.FreeKB * 1024).MB()
	availMB := types.Bytes(mi.AvailableKB * 1024).MB()
	usedMB := totalMB - availMB
	if usedMB < 0 {
		usedMB = 0
	}
	swapTotalMB := types.Bytes(mi.SwapTotalKB * 1024).MB()
	swapFreeMB := types.Bytes(mi.SwapFreeKB * 1024).MB()
	swapUsedMB := swapTotalMB - swapFreeMB
	if swapUsedMB < 0 {
		swapUsedMB = 0
	}

	sample := systemMetrics{
		Timestamp:          time.Now().Unix(),
		CPUUsagePercent:    cpuPct,
		CPUCores:           cpuCores,
		MemoryTotalMB:      totalMB,
		MemoryUsedMB:       usedMB,
		MemoryFreeMB:       freeMB,
		MemoryAvailableMB:  availMB,
		MemoryUsagePercent: util.SafeDiv(usedMB, totalMB) * 100,
		SwapTotalMB:        swapTotalMB,
		SwapUsedMB:         swapUsedMB,
	}
	return sample, active, total, cores, nil
}
