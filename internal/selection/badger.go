package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"termslens/internal/logging"
)

var badgerKey = []byte("selection:last")

type Badger struct {
	db *badger.DB
}

// OpenBadger opens an on-disk store at path. An empty path keeps the data in
// memory only.
func OpenBadger(path string, logger *zap.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{logging.OrNop(logger).Sugar()})
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

func (b *Badger) Save(_ context.Context, text string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey, []byte(text))
	})
}

func (b *Badger) Last(_ context.Context) (string, error) {
	var text string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			text = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNoSelection
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (b *Badger) Ping(context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger closed")
	}
	return nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}

type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.s.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }
