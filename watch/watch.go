// Package watch polls a source locale file and reports content changes.
package watch

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/minios-linux/localetrans/lockfile"
	"go.uber.org/zap"
)

// DefaultInterval is the polling period used when Watcher.Interval is zero.
const DefaultInterval = time.Second

// Watcher polls Path every Interval.
type Watcher struct {
	Path     string
	Interval time.Duration
	Log      *zap.Logger
}

// Run blocks until ctx is done, calling onChange with the new checksum
// whenever the file content hashes differently from last. A missing or
// unreadable file is skipped for that tick, so editors that replace the
// file on save do not stop the loop.
//
// Run returns ctx.Err() on cancellation, or the first error onChange
// returns.
func (w *Watcher) Run(ctx context.Context, last string, onChange func(ctx context.Context, hash string) error) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		hash, err := lockfile.HashFile(w.Path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Warn("reading watched file", zap.String("path", w.Path), zap.Error(err))
			}
			continue
		}
		if hash == last {
			continue
		}

		log.Debug("watched file changed",
			zap.String("path", w.Path),
			zap.String("old", last),
			zap.String("new", hash))
		last = hash
		if err := onChange(ctx, hash); err != nil {
			return err
		}
	}
}
