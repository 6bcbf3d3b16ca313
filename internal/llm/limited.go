package llm

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

type RateLimitError struct {
	Provider          string
	RetryAfterSeconds int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s request budget exhausted, retry in %ds", e.Provider, e.RetryAfterSeconds)
}

// Limited caps the calls made through a provider with a token bucket of rpm
// requests per minute. A call over budget fails without reaching the
// provider.
type Limited struct {
	inner Provider
	now   func() time.Time

	mu           sync.Mutex
	tokens       float64
	capacity     float64
	refillPerSec float64
	lastRefill   time.Time
}

func NewLimited(inner Provider, rpm int) Provider {
	if rpm <= 0 {
		return inner
	}
	capacity := float64(rpm)
	l := &Limited{
		inner:        inner,
		now:          func() time.Time { return time.Now().UTC() },
		tokens:       capacity,
		capacity:     capacity,
		refillPerSec: capacity / 60.0,
	}
	l.lastRefill = l.now()
	return l
}

func (l *Limited) Name() string  { return l.inner.Name() }
func (l *Limited) Model() string { return l.inner.Model() }

func (l *Limited) Generate(ctx context.Context, prompt string) (string, error) {
	if err := l.take(); err != nil {
		return "", err
	}
	return l.inner.Generate(ctx, prompt)
}

func (l *Limited) Summarize(ctx context.Context, text string) (string, error) {
	if err := l.take(); err != nil {
		return "", err
	}
	return l.inner.Summarize(ctx, text)
}

func (l *Limited) Translate(ctx context.Context, text string, lang string) (string, error) {
	if err := l.take(); err != nil {
		return "", err
	}
	return l.inner.Translate(ctx, text, lang)
}

func (l *Limited) take() error {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := now.Sub(l.lastRefill).Seconds()
	if elapsed > 0 {
		l.tokens = math.Min(l.capacity, l.tokens+(elapsed*l.refillPerSec))
		l.lastRefill = now
	}
	if l.tokens >= 1 {
		l.tokens -= 1
		return nil
	}

	deficit := 1 - l.tokens
	retrySeconds := int(math.Ceil(deficit / l.refillPerSec))
	if retrySeconds < 1 {
		retrySeconds = 1
	}
	return &RateLimitError{Provider: l.inner.Name(), RetryAfterSeconds: retrySeconds}
}
