package logging

import "testing"

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "INFO", " warn ", "error"} {
		logger, err := New(level, false)
		if err != nil {
			t.Fatalf("level %q: %v", level, err)
		}
		_ = logger.Sync()
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("expected nop logger")
	}
}
