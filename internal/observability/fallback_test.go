package observability

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFallbackObserverCountsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	obs := NewFallbackObserver(zap.New(core))

	for i := 0; i < 10; i++ {
		obs.RecordFallback("summarize", "openai", errors.New("timeout"))
	}
	obs.RecordFallback("translate", "openai", errors.New("timeout"))

	counts := obs.Counts()
	if counts["summarize"] != 10 || counts["translate"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if got := logs.FilterMessage("repeated remote fallbacks").Len(); got != 1 {
		t.Fatalf("expected one repeated-fallback alert, got %d", got)
	}
	if got := logs.FilterField(zap.String("step", "translate")).Len(); got != 1 {
		t.Fatalf("expected one translate log entry, got %d", got)
	}
}

func TestNilObserverIsSafe(t *testing.T) {
	var obs *FallbackObserver
	obs.RecordFallback("summarize", "none", nil)
	if obs.Counts() != nil {
		t.Fatalf("expected nil counts")
	}
}
