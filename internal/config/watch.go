package config

import (
	"context"
	"time"

	"github.com/dshills/linestorm/internal/config/watcher"
)

// ReloadFunc receives the options loaded after the config file changed, or
// the error that prevented loading them.
type ReloadFunc func(opts Options, err error)

// Watch reloads the source each time its file changes and passes the result
// to fn. Removing the file reloads the defaults and environment. The
// returned watcher must be closed by the caller. Long-running hosts that
// keep an Engine open use it with Engine.ApplyOptions; the batch command
// loads once.
func (s Source) Watch(ctx context.Context, fn ReloadFunc) (*watcher.Watcher, error) {
	if s.Path == "" {
		return nil, ErrNoPath
	}

	w, err := watcher.New(
		watcher.WithDebounce(50*time.Millisecond),
		watcher.WithErrorHandler(func(err error) { fn(Options{}, err) }),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(s.Path); err != nil {
		w.Close()
		return nil, err
	}
	w.OnChange(func(watcher.Event) {
		fn(s.Load())
	})
	if err := w.Start(ctx); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}
