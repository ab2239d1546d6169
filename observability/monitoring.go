// Package observability exposes runtime health figures for the relay.
package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthStats is the payload served by the health probe.
type HealthStats struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	RequestCount  uint64  `json:"request_count"`
	RssMb         float64 `json:"rss_mb"`
	CPUPercent    float64 `json:"cpu_percent"`
	NumGoroutine  int     `json:"num_goroutine"`
	NumGC         uint32  `json:"num_gc"`
}

// MonitoringManager tracks request counts and samples process-level
// metrics on demand. All fields are safe for concurrent use.
type MonitoringManager struct {
	log      *slog.Logger
	started  time.Time
	proc     *process.Process
	requests atomic.Uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	m := &MonitoringManager{log: log, started: time.Now().UTC()}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		// Health still answers without process metrics.
		log.Warn("Process metrics unavailable", "error", err)
		return m
	}
	m.proc = proc
	return m
}

func (m *MonitoringManager) RecordRequest() {
	m.requests.Add(1)
}

// Snapshot assembles the current health figures under the given status line.
func (m *MonitoringManager) Snapshot(status string) HealthStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := HealthStats{
		Status:        status,
		UptimeSeconds: time.Since(m.started).Seconds(),
		RequestCount:  m.requests.Load(),
		NumGoroutine:  runtime.NumGoroutine(),
		NumGC:         memStats.NumGC,
	}

	if m.proc != nil {
		if mem, err := m.proc.MemoryInfo(); err == nil {
			stats.RssMb = float64(mem.RSS) / (1024 * 1024)
		}
		if cpu, err := m.proc.CPUPercent(); err == nil {
			stats.CPUPercent = cpu
		}
	}
	return stats
}
