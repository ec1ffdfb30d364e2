package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/3-lines-studio/jamb/internal/core"
)

var ErrMissingType = errors.New("dataset: document has no _type")

// Dataset is a directory of JSON and YAML documents, one per file, served
// the way the hosted query API would serve them. Files whose _id starts with
// "drafts." are only visible when previewing.
type Dataset struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	docs  map[string]json.RawMessage
	files map[string]string
}

func Open(dir string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dataset{
		dir:    dir,
		logger: logger,
		docs:   make(map[string]json.RawMessage),
		files:  make(map[string]string),
	}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != dir && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDocumentFile(path) {
			return nil
		}
		if _, err := d.ReloadFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset loaded", "dir", dir, "documents", d.Len())
	return d, nil
}

func (d *Dataset) Dir() string {
	return d.dir
}

func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.docs)
}

// ReloadFile re-reads one file and replaces whatever document it held
// before. A deleted file reports fs.ErrNotExist.
func (d *Dataset) ReloadFile(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	id := gjson.GetBytes(raw, "_id").String()
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if raw, err = sjson.SetBytes(raw, "_id", id); err != nil {
			return nil, err
		}
	}
	if gjson.GetBytes(raw, "_type").String() == "" {
		return nil, fmt.Errorf("%s: %w", id, ErrMissingType)
	}

	d.mu.Lock()
	if prev, ok := d.files[path]; ok && prev != id {
		delete(d.docs, prev)
	}
	d.files[path] = id
	d.docs[id] = raw
	d.mu.Unlock()
	return raw, nil
}

// RemoveFile forgets the document loaded from path.
func (d *Dataset) RemoveFile(path string) (json.RawMessage, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.files[path]
	if !ok {
		return nil, false
	}
	raw := d.docs[id]
	delete(d.files, path)
	delete(d.docs, id)
	return raw, true
}

func (d *Dataset) Fetch(_ context.Context, q core.Query) (json.RawMessage, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var published, draft json.RawMessage
	for id, raw := range d.docs {
		if !matches(q, id, raw) {
			continue
		}
		if core.IsDraftID(id) {
			draft = raw
		} else {
			published = raw
		}
	}

	if q.Perspective.Preview() && draft != nil {
		return draft, nil
	}
	if published != nil {
		return published, nil
	}
	return nil, fmt.Errorf("%s %q: %w", q.Type, q.Slug+q.ID, core.ErrNotFound)
}

func (d *Dataset) Slugs(_ context.Context, docType string, perspective core.Perspective) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := map[string]bool{}
	var slugs []string
	for id, raw := range d.docs {
		if core.IsDraftID(id) && !perspective.Preview() {
			continue
		}
		doc := gjson.ParseBytes(raw)
		if doc.Get("_type").String() != docType {
			continue
		}
		slug := doc.Get("slug.current").String()
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs, nil
}

func matches(q core.Query, id string, raw json.RawMessage) bool {
	if q.ID != "" {
		return core.PublishedID(id) == core.PublishedID(q.ID)
	}
	doc := gjson.ParseBytes(raw)
	if doc.Get("_type").String() != q.Type {
		return false
	}
	if q.Slug != "" {
		return doc.Get("slug.current").String() == strings.Trim(q.Slug, "/")
	}
	return true
}

func decode(path string, data []byte) (json.RawMessage, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		data = out
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse %s: invalid json", filepath.Base(path))
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("parse %s: document must be an object", filepath.Base(path))
	}
	return json.RawMessage(data), nil
}

func isDocumentFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
