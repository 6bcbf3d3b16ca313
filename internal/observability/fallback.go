package observability

import (
	"sync"

	"go.uber.org/zap"

	"termslens/internal/logging"
)

// FallbackObserver counts remote failures per pipeline step.
type FallbackObserver struct {
	logger *zap.Logger

	mu     sync.Mutex
	counts map[string]int64
}

func NewFallbackObserver(logger *zap.Logger) *FallbackObserver {
	return &FallbackObserver{
		logger: logging.OrNop(logger),
		counts: make(map[string]int64),
	}
}

func (o *FallbackObserver) RecordFallback(step string, provider string, err error) {
	if o == nil {
		return
	}
	o.mu.Lock()
	o.counts[step]++
	count := o.counts[step]
	o.mu.Unlock()

	o.logger.Warn("remote step failed, using local fallback",
		zap.String("step", step),
		zap.String("provider", provider),
		zap.Int64("count", count),
		zap.Error(err),
	)

	if count%10 == 0 {
		o.logger.Error("repeated remote fallbacks",
			zap.String("step", step),
			zap.String("provider", provider),
			zap.Int64("count", count),
		)
	}
}

// Counts returns a copy of the per-step fallback counters.
func (o *FallbackObserver) Counts() map[string]int64 {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[string]int64, len(o.counts))
	for k, v := range o.counts {
		out[k] = v
	}
	return out
}
