// Package watch reports changes to individual files on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches a set of files and reports their keys on Changes after
// writes settle for the debounce interval.
//
// Directories are watched rather than the files themselves, because editors
// commonly save by writing a new file and renaming it over the old one.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger

	mu    sync.Mutex
	files map[string]string // cleaned absolute path -> key
	dirs  map[string]bool

	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup
}

// New creates a watcher. Call Watch for each file, then Start.
func New(debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		fs:       fsw,
		debounce: debounce,
		log:      log,
		files:    make(map[string]string),
		dirs:     make(map[string]bool),
		changes:  make(chan string, 16),
		done:     make(chan struct{}),
	}, nil
}

// Watch reports changes of the file at path under key.
func (w *Watcher) Watch(key, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	abs = filepath.Clean(abs)
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = key
	return nil
}

// Changes returns the channel of changed file keys.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Start begins delivering events.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			key, tracked := w.lookup(event.Name)
			if !tracked {
				continue
			}
			w.log.Debug("file event", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			pending[key] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			for key := range pending {
				select {
				case w.changes <- key:
				case <-w.done:
					return
				}
				delete(pending, key)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) lookup(name string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	key, ok := w.files[filepath.Clean(name)]
	return key, ok
}
