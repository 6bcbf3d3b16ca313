package selection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var ErrNoSelection = errors.New("no selection recorded")

// Store keeps only the most recent text selection. Save replaces it.
type Store interface {
	Save(ctx context.Context, text string) error
	Last(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Close() error
}

type Options struct {
	Backend     string
	RedisURL    string
	DatabaseDSN string
	BadgerPath  string
	Logger      *zap.Logger
}

func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		return OpenRedis(ctx, opts.RedisURL)
	case "postgres":
		return OpenPostgres(ctx, opts.DatabaseDSN)
	case "badger":
		return OpenBadger(opts.BadgerPath, opts.Logger)
	default:
		return nil, fmt.Errorf("unknown selection backend %q", opts.Backend)
	}
}

type Memory struct {
	mu   sync.RWMutex
	text string
	set  bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.set = true
	return nil
}

func (m *Memory) Last(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return "", ErrNoSelection
	}
	return m.text, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
