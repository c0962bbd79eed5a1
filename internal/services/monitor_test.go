package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResourceMonitorSnapshot(t *testing.T) {
	monitor := NewResourceMonitor(time.Minute, nil)

	stats := monitor.Snapshot(context.Background())

	assert.Greater(t, stats.Goroutines, 0)
	assert.GreaterOrEqual(t, stats.UptimeSeconds, int64(0))
}

func TestResourceMonitorRunStopsOnCancel(t *testing.T) {
	monitor := NewResourceMonitor(10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		monitor.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after context cancel")
	}
}
