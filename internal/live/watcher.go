package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tidwall/gjson"

	"github.com/3-lines-studio/jamb/internal/core"
)

// FileSource is the local dataset the watcher keeps in sync with disk.
type FileSource interface {
	ReloadFile(path string) (json.RawMessage, error)
	RemoveFile(path string) (json.RawMessage, bool)
}

// Watcher turns changes in a local content directory into live edits.
// Draft documents become pending overrides, published ones are observed.
type Watcher struct {
	dir      string
	source   FileSource
	store    *Store
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
}

func NewWatcher(dir string, source FileSource, store *Store, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dir:      dir,
		source:   source,
		store:    store,
		logger:   logger,
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]time.Time),
	}
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := watchDirs(fw, w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching content", "dir", w.dir)

	tick := time.NewTicker(w.debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDir(info.Name()) {
					_ = watchDirs(fw, event.Name)
					continue
				}
			}
			if isWatchEvent(event.Op) && IsContentFile(event.Name) {
				w.mu.Lock()
				w.pending[event.Name] = time.Now()
				w.mu.Unlock()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content watcher error", "error", err)
		case <-tick.C:
			w.flush()
		}
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	now := time.Now()
	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		w.Sync(path)
	}
}

// Sync applies the current on-disk state of one content file.
func (w *Watcher) Sync(path string) {
	raw, err := w.source.ReloadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if removed, ok := w.source.RemoveFile(path); ok {
			w.removed(removed)
		}
		return
	}
	if err != nil {
		w.logger.Warn("reload content file", "path", path, "error", err)
		return
	}

	doc := gjson.ParseBytes(raw)
	id := doc.Get("_id").String()
	ref := core.DocumentRef{ID: core.PublishedID(id), Type: doc.Get("_type").String()}
	rev := doc.Get("_rev").String()
	if rev == "" {
		rev = core.HashContent(raw)
	}

	var blocks core.Blocks
	pb := doc.Get("pageBuilder")
	if pb.Exists() {
		blocks, err = core.DecodeBlocks([]byte(pb.Raw))
		if err != nil {
			w.logger.Warn("content file has invalid page builder", "path", path, "error", err)
			return
		}
	}

	if core.IsDraftID(id) {
		if !w.store.Edit(core.Edit{Document: ref, Rev: rev, Blocks: blocks, HasBlocks: pb.Exists()}) {
			w.store.Touch(ref)
		}
		return
	}
	w.store.Observe(ref, blocks, rev)
	w.store.Touch(ref)
}

func (w *Watcher) removed(raw json.RawMessage) {
	doc := gjson.ParseBytes(raw)
	id := doc.Get("_id").String()
	ref := core.DocumentRef{ID: core.PublishedID(id), Type: doc.Get("_type").String()}
	if core.IsDraftID(id) && w.store.Revert(ref) {
		return
	}
	w.store.Touch(ref)
}

func IsContentFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func watchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
