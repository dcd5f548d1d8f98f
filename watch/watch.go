// Package watch re-segments a lyrics file every time it changes.
//
// An editor typically saves a file several times in quick succession
// (truncate, write, rename). Changes are debounced and a revision is only
// delivered when the segmented lines differ from the previous revision.
//
// File events come from fsnotify on the file's directory, which survives
// editors that replace the file on save. When fsnotify is unavailable the
// watcher falls back to polling the file's size and modification time.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after a change before reloading.
const DefaultDebounce = 100 * time.Millisecond

// DefaultPollInterval is the polling period used without fsnotify.
const DefaultPollInterval = 500 * time.Millisecond

// Loader reads raw lyrics from a path.
type Loader interface {
	Load(path string) (string, error)
}

// Segmenter splits raw lyrics into lines.
type Segmenter interface {
	Segment(raw string, limit int) ([]string, error)
}

// Revision is one observed state of the watched file.
type Revision struct {
	// Seq numbers revisions from 1.
	Seq int

	// Raw is the loaded text.
	Raw string

	// Lines is the segmentation of Raw.
	Lines []string

	// Err is set when the file could not be loaded or segmented; Raw and
	// Lines are empty in that case.
	Err error
}

// Watcher delivers a Revision for the initial content of a file and for
// every change to its segmentation.
type Watcher struct {
	path         string
	limit        int
	loader       Loader
	segmenter    Segmenter
	debounce     time.Duration
	pollInterval time.Duration
	forcePolling bool

	seq  int
	last []string
	err  error
}

// New creates a watcher for path.
func New(path string, limit int, loader Loader, segmenter Segmenter) *Watcher {
	return &Watcher{
		path:         path,
		limit:        limit,
		loader:       loader,
		segmenter:    segmenter,
		debounce:     DefaultDebounce,
		pollInterval: DefaultPollInterval,
	}
}

// WithDebounce sets the quiet period after a change.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithPollInterval sets the polling period used without fsnotify.
func (w *Watcher) WithPollInterval(d time.Duration) *Watcher {
	if d > 0 {
		w.pollInterval = d
	}
	return w
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Watch starts watching and returns the revision channel. The first
// revision reflects the current content. The channel is closed when ctx is
// cancelled.
func (w *Watcher) Watch(ctx context.Context) <-chan Revision {
	ch := make(chan Revision, 1)

	go func() {
		defer close(ch)

		// Subscribe before the first load so no change is missed.
		watcher := w.subscribe()
		if watcher == nil {
			baseline := statFile(w.path)
			if w.refresh(ctx, ch) {
				w.watchPolling(ctx, ch, baseline)
			}
			return
		}
		defer watcher.Close()

		if w.refresh(ctx, ch) {
			w.watchEvents(ctx, ch, watcher)
		}
	}()

	return ch
}

// subscribe returns a watcher on the file's directory, or nil if polling
// must be used instead.
func (w *Watcher) subscribe() *fsnotify.Watcher {
	if w.forcePolling {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("file events unavailable, polling instead",
			slog.String("path", w.path),
			slog.Any("error", err))
		return nil
	}

	// Editors often save by renaming a temp file over the song, which drops
	// a watch on the file itself; the directory watch survives that.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		slog.Warn("cannot watch directory, polling instead",
			slog.String("path", w.path),
			slog.Any("error", err))
		return nil
	}
	return watcher
}

func (w *Watcher) watchEvents(ctx context.Context, ch chan<- Revision, watcher *fsnotify.Watcher) {
	base := filepath.Base(w.path)
	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base || event.Op&relevant == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			if !w.refresh(ctx, ch) {
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", slog.String("path", w.path), slog.Any("error", err))
		}
	}
}

// fileState identifies a version of a file for polling.
type fileState struct {
	exists  bool
	size    int64
	modTime time.Time
}

func (s fileState) same(o fileState) bool {
	return s.exists == o.exists && s.size == o.size && s.modTime.Equal(o.modTime)
}

func statFile(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{exists: true, size: info.Size(), modTime: info.ModTime()}
}

func (w *Watcher) watchPolling(ctx context.Context, ch chan<- Revision, last fileState) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			current := statFile(w.path)
			if current.same(last) {
				continue
			}
			last = current
			if !w.refresh(ctx, ch) {
				return
			}
		}
	}
}

// refresh reloads and segments the file and sends a revision if the result
// changed. It returns false once ctx is cancelled.
func (w *Watcher) refresh(ctx context.Context, ch chan<- Revision) bool {
	raw, lines, err := w.load()
	if err != nil {
		if w.err != nil && w.err.Error() == err.Error() {
			return true
		}
		w.err, w.last = err, nil
		return w.send(ctx, ch, Revision{Err: err})
	}

	if w.err == nil && w.seq > 0 && slices.Equal(lines, w.last) {
		return true
	}
	w.err, w.last = nil, lines
	return w.send(ctx, ch, Revision{Raw: raw, Lines: lines})
}

func (w *Watcher) load() (string, []string, error) {
	raw, err := w.loader.Load(w.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("lyrics file removed: %w", err)
		}
		return "", nil, err
	}
	lines, err := w.segmenter.Segment(raw, w.limit)
	if err != nil {
		return "", nil, fmt.Errorf("segment %s: %w", w.path, err)
	}
	return raw, lines, nil
}

func (w *Watcher) send(ctx context.Context, ch chan<- Revision, rev Revision) bool {
	w.seq++
	rev.Seq = w.seq
	select {
	case ch <- rev:
		return true
	case <-ctx.Done():
		return false
	}
}
