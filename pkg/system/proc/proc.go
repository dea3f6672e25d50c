//go:build linux

package proc

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// ReadSystemCPU parses /proc/stat for the aggregate CPU line and returns:
// - active: user + nice + system + irq + softirq + steal
// - total:  active + idle + iowait
//
// These are jiffy counters (monotonic increasing). You need to take
// deltas between samples to compute utilization.
func ReadSystemCPU() (active, total uint64, err error) {
	f, e := os.Open("/proc/stat")
	if e != nil {
		return 0, 0, e
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fs := strings.Fields(sc.Text())
		if len(fs) == 0 || fs[0] != "cpu" {
			continue
		}
		if len(fs) < 8 {
			return 0, 0, ErrNoCPU
		}
		var vals []uint64
		for _, s := range fs[1:] {
			v, _ := strconv.ParseUint(s, 10, 64)
			vals = append(vals, v)
		}
		active = vals[0] + vals[1] + vals[2] + vals[5] + vals[6] + vals[7]
		total = active + vals[3] + vals[4]
		return active, total, nil
	}
	return 0, 0, ErrNoCPU
}
