package kvfile

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"
)

// Watch emits the keys whose files change on disk until ctx is
// cancelled. It reports writes performed by other processes as well as
// our own; consumers that only care about external changes should
// suppress events around their own writes.
func (b *Backend) Watch(ctx context.Context) (<-chan string, error) {
	events := make(chan string, 16)

	w := newWatchWorker(b, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = w.Stop(stopCtx)
		close(events)
		return nil
	})

	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	backend   *Backend
	events    chan<- string
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(backend *Backend, events chan<- string) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("kvfile-watcher"),
		backend:    backend,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(w.backend.Dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.backend.Dir, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.backend.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			var stack string
			if w.backend.config.Logger != nil && w.backend.config.Logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}

			if w.backend.config.Logger != nil {
				if stack != "" {
					w.backend.config.Logger.Error("watcher panic", "error", panicErr, "stack", stack)
				} else {
					w.backend.config.Logger.Error("watcher panic", "error", panicErr)
				}
			}
		}
	}()
	defer w.backend.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.eventLoop(ctx)

	// Stop accepting new events and wait for in-flight timers so nothing
	// fires into a channel the caller is about to close.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

func (w *watchWorker) eventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.backend.config.Logger != nil {
				w.backend.config.Logger.Error("fsnotify error", "error", wErr)
			}
			if w.backend.config.ErrorHandler != nil {
				w.backend.config.ErrorHandler(wErr)
			}
		}
	}
}

func (w *watchWorker) processEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	key, ok := keyFor(event.Name)
	if !ok {
		return
	}

	if w.backend.config.Logger != nil {
		w.backend.config.Logger.Debug("key changed on disk", "key", key, "op", event.Op.String())
	}

	w.debouncer.add(key, func(k string) {
		defer func() {
			// The events channel closes when the caller's context ends.
			_ = recover()
		}()
		select {
		case w.events <- k:
		case <-ctx.Done():
		}
	})
}
