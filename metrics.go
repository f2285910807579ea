package memlock

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAllocate is called after each allocate operation.
	// size is the requested byte count, duration is the total time taken,
	// err is nil if successful.
	RecordAllocate(size int, duration time.Duration, err error)

	// RecordDeallocate is called after each deallocate operation.
	RecordDeallocate(size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocate(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordDeallocate(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocateCount        atomic.Int64
	AllocateErrors       atomic.Int64
	AllocateTotalNanos   atomic.Int64
	BytesAllocated       atomic.Int64
	DeallocateCount      atomic.Int64
	DeallocateErrors     atomic.Int64
	DeallocateTotalNanos atomic.Int64
	BytesReleased        atomic.Int64
}

// RecordAllocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocate(size int, duration time.Duration, err error) {
	b.AllocateCount.Add(1)
	b.AllocateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AllocateErrors.Add(1)
		return
	}
	b.BytesAllocated.Add(int64(size))
}

// RecordDeallocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDeallocate(size int, duration time.Duration, err error) {
	b.DeallocateCount.Add(1)
	b.DeallocateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DeallocateErrors.Add(1)
		return
	}
	b.BytesReleased.Add(int64(size))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AllocateCount:    b.AllocateCount.Load(),
		AllocateErrors:   b.AllocateErrors.Load(),
		AllocateAvgNanos: avgNanos(b.AllocateTotalNanos.Load(), b.AllocateCount.Load()),
		BytesAllocated:   b.BytesAllocated.Load(),
		DeallocateCount:  b.DeallocateCount.Load(),
		DeallocateErrors: b.DeallocateErrors.Load(),
		BytesReleased:    b.BytesReleased.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocateCount    int64
	AllocateErrors   int64
	AllocateAvgNanos int64
	BytesAllocated   int64
	DeallocateCount  int64
	DeallocateErrors int64
	BytesReleased    int64
}
