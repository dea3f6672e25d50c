//go:build linux

package proc

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// CoreCPU is one per-core jiffy counter pair read from /proc/stat.
type CoreCPU struct {
	CoreID        int
	Active, Total uint64
}

// ReadPerCoreCPU parses the "cpuN" lines of /proc/stat, in the order the
// kernel reports them. It is the per-core counterpart of ReadSystemCPU and
// uses the same active/total jiffy decomposition.
func ReadPerCoreCPU() ([]CoreCPU, error) {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cores []CoreCPU
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fs := strings.Fields(sc.Text())
		if len(fs) < 8 || !strings.HasPrefix(fs[0], "cpu") || fs[0] == "cpu" {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(fs[0], "cpu"))
		if err != nil {
			continue
		}
		var vals []uint64
		for _, s := range fs[1:] {
			v, _ := strconv.ParseUint(s, 10, 64)
			vals = append(vals, v)
		}
		active := vals[0] + vals[1] + vals[2] + vals[5] + vals[6] + vals[7]
		total := active + vals[3] + vals[4]
		cores = append(cores, CoreCPU{CoreID: id, Active: active, Total: total})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cores, nil
}

// MemInfo is the subset of /proc/meminfo the whole-host collector needs,
// in kilobytes as the kernel reports them.
type MemInfo struct {
	TotalKB     uint64
	FreeKB      uint64
	AvailableKB uint64
	SwapTotalKB uint64
	SwapFreeKB  uint64
}

// ReadMemInfo parses /proc/meminfo. Missing keys are left at zero rather
// than treated as an error — some kernels omit MemAvailable on very old
// releases.
func ReadMemInfo() (MemInfo, error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return MemInfo{}, err
	}
	defer f.Close()

	var mi MemInfo
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fs := strings.Fields(sc.Text())
		if len(fs) < 2 {
			continue
		}
		key := strings.TrimSuffix(fs[0], ":")
		v, err := strconv.ParseUint(fs[1], 10, 64)
		if err != nil {
			continue
		}
		switch key {
		case "MemTotal":
			mi.TotalKB = v
		case "MemFree":
			mi.FreeKB = v
		case "MemAvailable":
			mi.AvailableKB = v
		case "SwapTotal":
			mi.SwapTotalKB = v
		case "SwapFree":
			mi.SwapFreeKB = v
		}
	}
	if err := sc.Err(); err != nil {
		return MemInfo{}, err
	}
	if mi.AvailableKB == 0 {
		mi.AvailableKB = mi.FreeKB
	}
	return mi, nil
}
