package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/logger"
)

// Default flush rate: at most two batches per second, burst of one.
const (
	DefaultRate  = rate.Limit(2)
	DefaultBurst = 1
)

// ErrAlreadyWatching is returned by Watch while a watch is active.
var ErrAlreadyWatching = errors.New("watcher: already watching")

// ErrStopped is returned by Watch after Stop.
var ErrStopped = errors.New("watcher: stopped")

// Ensure Watcher implements the interface.
var _ driven.VaultWatcher = (*Watcher)(nil)

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter skips vault paths for which ignored returns true.
func WithFilter(ignored func(rel string) bool) Option {
	return func(w *Watcher) {
		w.ignored = ignored
	}
}

// WithRate sets how often coalesced changes are released.
func WithRate(limit rate.Limit, burst int) Option {
	return func(w *Watcher) {
		w.limiter = rate.NewLimiter(limit, burst)
	}
}

// Watcher watches a vault directory.
type Watcher struct {
	root    string
	ignored func(rel string) bool
	limiter *rate.Limiter

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	done    chan struct{}
	stopped bool
}

// New creates a watcher for root.
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{
		root:    root,
		limiter: rate.NewLimiter(DefaultRate, DefaultBurst),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts watching and returns a channel of coalesced changes.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.DocumentChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil, ErrStopped
	}
	if w.fsw != nil {
		return nil, ErrAlreadyWatching
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.addRecursive(fsw, w.root); err != nil {
		fsw.Close()
		return nil, err
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	out := make(chan domain.DocumentChange)
	go w.run(ctx, fsw, w.done, out)
	return out, nil
}

// Stop stops watching. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	if w.fsw == nil {
		return nil
	}
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, done <-chan struct{}, out chan<- domain.DocumentChange) {
	defer close(out)

	pending := make(map[string]domain.ChangeType)
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(fsw, event.Name); err != nil {
						logger.Warn("watcher: add %s: %v", event.Name, err)
					}
					continue
				}
			}
			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}
			pending[change.Path] = merge(pending, *change)
			if flush == nil {
				flush = time.After(w.limiter.Reserve().Delay())
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: %v", err)
		case <-flush:
			flush = nil
			if !w.emit(ctx, done, pending, out) {
				return
			}
			pending = make(map[string]domain.ChangeType)
		}
	}
}

// emit sends pending changes in path order.
func (w *Watcher) emit(ctx context.Context, done <-chan struct{}, pending map[string]domain.ChangeType, out chan<- domain.DocumentChange) bool {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		select {
		case out <- domain.DocumentChange{Type: pending[p], Path: p}:
		case <-ctx.Done():
			return false
		case <-done:
			return false
		}
	}
	return true
}

// merge folds a new change into the pending change for the same path.
func merge(pending map[string]domain.ChangeType, change domain.DocumentChange) domain.ChangeType {
	prev, ok := pending[change.Path]
	if !ok {
		return change.Type
	}
	switch {
	case prev == domain.ChangeCreated && change.Type == domain.ChangeUpdated:
		return domain.ChangeCreated
	case prev == domain.ChangeDeleted && change.Type == domain.ChangeCreated:
		return domain.ChangeUpdated
	default:
		return change.Type
	}
}

// handleFsEvent maps an fsnotify event to a document change, or nil when
// the event does not concern a visible markdown file.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *domain.DocumentChange {
	rel, ok := w.rel(event.Name)
	if !ok || w.skip(rel) || !strings.EqualFold(path.Ext(rel), ".md") {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
			return nil
		}
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changeType = domain.ChangeDeleted
	default:
		return nil
	}
	return &domain.DocumentChange{Type: changeType, Path: rel}
}

// addRecursive watches dir and every visible folder below it.
func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, ok := w.rel(p); ok && rel != "" && w.skip(rel) {
			return filepath.SkipDir
		}
		return fsw.Add(p)
	})
}

func (w *Watcher) rel(full string) (string, bool) {
	rel, err := filepath.Rel(w.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) skip(rel string) bool {
	if isHidden(rel) {
		return true
	}
	return w.ignored != nil && w.ignored(rel)
}

// isHidden reports whether any path segment starts with a dot.
func isHidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if len(seg) > 1 && seg[0] == '.' && seg != ".." {
			return true
		}
	}
	return false
}
