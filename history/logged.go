package history

import (
	"io"
	"time"

	"github.com/hupe1980/meshkit/core"
	"github.com/hupe1980/meshkit/logging"
)

// storeOpLogger is implemented by logging.MeshLogger.
type storeOpLogger interface {
	LogStoreOp(op, key string, dur time.Duration, err error)
}

// LoggedStore decorates a HistoryStore with per-operation logging. Results
// and errors pass through unchanged.
type LoggedStore struct {
	next   core.HistoryStore
	logger logging.Logger
}

// WithLogging wraps store so every operation is logged to logger. A nil
// logger yields a silent wrapper.
func WithLogging(store core.HistoryStore, logger logging.Logger) *LoggedStore {
	return &LoggedStore{next: store, logger: logging.OrNoOp(logger)}
}

// Unwrap returns the decorated store.
func (s *LoggedStore) Unwrap() core.HistoryStore { return s.next }

// Store implements core.HistoryStore.
func (s *LoggedStore) Store(key string, record core.Record) error {
	start := time.Now()
	err := s.next.Store(key, record)
	s.log("store", key, start, err)
	return err
}

// Retrieve implements core.HistoryStore.
func (s *LoggedStore) Retrieve(key string) (core.Record, error) {
	start := time.Now()
	rec, err := s.next.Retrieve(key)
	s.log("retrieve", key, start, err)
	return rec, err
}

// Delete implements core.HistoryStore.
func (s *LoggedStore) Delete(key string) error {
	start := time.Now()
	err := s.next.Delete(key)
	s.log("delete", key, start, err)
	return err
}

// Keys implements core.HistoryStore.
func (s *LoggedStore) Keys() ([]string, error) {
	start := time.Now()
	keys, err := s.next.Keys()
	s.log("keys", "", start, err)
	return keys, err
}

// Close closes the decorated store if it holds resources.
func (s *LoggedStore) Close() error {
	if c, ok := s.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *LoggedStore) log(op, key string, start time.Time, err error) {
	dur := time.Since(start)
	if l, ok := s.logger.(storeOpLogger); ok {
		l.LogStoreOp(op, key, dur, err)
		return
	}
	if err != nil {
		s.logger.Error("History operation failed", "operation", op, "key", key, "duration", dur, "error", err)
		return
	}
	s.logger.Debug("History operation completed", "operation", op, "key", key, "duration", dur)
}

// Close releases resources held by store, if any.
func Close(store core.HistoryStore) error {
	if c, ok := store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
