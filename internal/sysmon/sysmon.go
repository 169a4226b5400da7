// Package sysmon samples host and process resource usage for the
// statistics panel.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one resource usage snapshot.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	Goroutines int     // goroutines of this process
	HeapAlloc  uint64  // live heap bytes of this process
}

// Sample collects a snapshot. CPU uses interval=0, i.e. the usage since the
// previous call; the first call may report 0. Host values that cannot be read
// are left at zero.
func Sample() Stats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Stats{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
	}
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = clampPercent(vmem.UsedPercent)
	}
	return s
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
