package services

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// ResourceStats is a point-in-time snapshot of process and host resources.
type ResourceStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  uint64  `json:"memory_used_mb"`
	Goroutines    int     `json:"goroutines"`
	HeapAllocMB   uint64  `json:"heap_alloc_mb"`
	UptimeSeconds int64   `json:"uptime_seconds"`
}

// ResourceMonitor samples host and process resource usage for the admin
// endpoint and the periodic log line.
type ResourceMonitor struct {
	startedAt time.Time
	interval  time.Duration
	logger    *logrus.Logger
}

func NewResourceMonitor(interval time.Duration, logger *logrus.Logger) *ResourceMonitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ResourceMonitor{
		startedAt: time.Now(),
		interval:  interval,
		logger:    logger,
	}
}

// Snapshot samples the current resource usage. Sampling errors leave the
// corresponding field at zero rather than failing the whole snapshot.
func (m *ResourceMonitor) Snapshot(ctx context.Context) ResourceStats {
	stats := ResourceStats{
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: int64(time.Since(m.startedAt).Seconds()),
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	stats.HeapAllocMB = ms.HeapAlloc / 1024 / 1024

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsedMB = vm.Used / 1024 / 1024
	}

	return stats
}

// Run logs a resource snapshot on every tick until the context is cancelled.
func (m *ResourceMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := m.Snapshot(ctx)
			if m.logger != nil {
				m.logger.WithFields(logrus.Fields{
					"cpu_percent":    stats.CPUPercent,
					"memory_percent": stats.MemoryPercent,
					"goroutines":     stats.Goroutines,
					"heap_alloc_mb":  stats.HeapAllocMB,
				}).Info("resource snapshot")
			}
		}
	}
}
