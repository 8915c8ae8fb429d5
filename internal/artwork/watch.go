package artwork

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors an art folder and reports new art files once they
// finish copying in.
type Watcher struct {
	dir      string
	callback func(path string)
	settle   time.Duration
	poll     time.Duration
	stopChan chan struct{}

	mu      sync.Mutex
	pending map[string]time.Time
}

// WatchConfig configures the art folder watcher.
type WatchConfig struct {
	// Dir is the art folder to monitor.
	Dir string

	// Callback receives each settled art file path.
	Callback func(path string)

	// SettleDelay is how long a file must sit unchanged before it is
	// reported. Default: 2 seconds.
	SettleDelay time.Duration

	// PollInterval is the flush cadence, also a backup in case file
	// events are missed. Default: 500ms.
	PollInterval time.Duration
}

// NewWatcher creates a new art folder watcher.
func NewWatcher(config WatchConfig) *Watcher {
	if config.SettleDelay == 0 {
		config.SettleDelay = 2 * time.Second
	}
	if config.PollInterval == 0 {
		config.PollInterval = 500 * time.Millisecond
	}

	return &Watcher{
		dir:      config.Dir,
		callback: config.Callback,
		settle:   config.SettleDelay,
		poll:     config.PollInterval,
		stopChan: make(chan struct{}),
		pending:  make(map[string]time.Time),
	}
}

// Start begins monitoring the art folder. It blocks until the context is
// canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch art folder: %w", err)
	}

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopChan:
			return nil
		case event := <-watcher.Events:
			// Creations and writes both reset the settle clock, so a
			// file still being copied is never reported early.
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 && IsArtFile(event.Name) {
				w.mu.Lock()
				w.pending[event.Name] = time.Now()
				w.mu.Unlock()
			}
		case err := <-watcher.Errors:
			fmt.Printf("[WARN] File watcher error: %v\n", err)
		case <-ticker.C:
			w.flushSettled()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
}

// flushSettled reports pending files that have sat unchanged past the
// settle delay.
func (w *Watcher) flushSettled() {
	var ready []string

	w.mu.Lock()
	now := time.Now()
	for path, last := range w.pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		w.callback(path)
	}
}
