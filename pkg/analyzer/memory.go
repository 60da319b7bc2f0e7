// File: pkg/analyzer/memory.go
package analyzer

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// memoryProbe reports the current resident heap usage in bytes.
type memoryProbe func() uint64

// heapAllocBytes is the production probe.
func heapAllocBytes() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

// memoryGuard enforces the configured heap ceiling during assembly. A
// breach is fatal for the whole analysis; the partially assembled context
// is discarded.
type memoryGuard struct {
	limitMB uint64
	probe   memoryProbe
	logger  *zap.Logger
}

func (g *memoryGuard) check() error {
	usedMB := g.probe() / (1024 * 1024)
	if usedMB > g.limitMB {
		g.logger.Error("Memory limit exceeded during context assembly",
			zap.Uint64("usedMB", usedMB),
			zap.Uint64("limitMB", g.limitMB))
		return fmt.Errorf("%w: %d MB used, limit %d MB", ErrMemoryLimit, usedMB, g.limitMB)
	}
	return nil
}
