package store

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
)

// Flusher periodically persists the store to its snapshot file whenever the
// dirty flag is set. Serialization happens under the store lock; the file
// write happens outside it, so snapshots are always consistent states the
// engine actually held.
type Flusher struct {
	store    *Store
	path     string
	interval time.Duration
	logger   *zap.Logger

	// OnFlush, when set, observes every successful flush (bytes written,
	// serialization + write duration).
	OnFlush func(size int, elapsed time.Duration)
}

// NewFlusher builds a flusher writing to path every interval.
func NewFlusher(s *Store, path string, interval time.Duration, logger *zap.Logger) *Flusher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flusher{store: s, path: path, interval: interval, logger: logger}
}

// Run flushes on every tick until the context is cancelled, then performs a
// final flush so a clean shutdown never loses durable state.
func (f *Flusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.Flush()
			return
		case <-ticker.C:
			f.Flush()
		}
	}
}

// Flush writes a snapshot if the store is dirty. Failures are logged and
// the dirty flag restored so the next tick retries; durability problems are
// surfaced, never fatal.
func (f *Flusher) Flush() {
	start := time.Now()

	data, err := f.store.SnapshotIfDirty()
	if err != nil {
		f.logger.Error("snapshot serialization failed", zap.Error(err))
		return
	}
	if data == nil {
		return
	}

	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		f.logger.Error("snapshot write failed", zap.String("path", f.path), zap.Error(err))
		f.store.Lock()
		f.store.SetDirty()
		f.store.Unlock()
		return
	}

	elapsed := time.Since(start)
	f.logger.Info("store persisted", zap.Int("bytes", len(data)), zap.Duration("elapsed", elapsed))
	if f.OnFlush != nil {
		f.OnFlush(len(data), elapsed)
	}
}
