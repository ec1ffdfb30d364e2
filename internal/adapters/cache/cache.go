package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/3-lines-studio/jamb/internal/core"
)

const DefaultTTL = 60 * time.Second

// Source is the content port being cached.
type Source interface {
	Fetch(ctx context.Context, q core.Query) (json.RawMessage, error)
	Slugs(ctx context.Context, docType string, perspective core.Perspective) ([]string, error)
}

type entry struct {
	raw       json.RawMessage
	slugs     []string
	err       error
	docID     string
	expiresAt time.Time
}

// Content caches fetched documents for a TTL and collapses concurrent
// fetches of the same query into one upstream request. Not-found results
// are cached too; other errors are not.
type Content struct {
	source Source
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

func New(source Source, ttl time.Duration, logger *slog.Logger) *Content {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Content{
		source:  source,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *Content) get(key string) (entry, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return entry{}, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return entry{}, false
	}
	return e, true
}

func (c *Content) set(key string, e entry) {
	e.expiresAt = c.now().Add(c.ttl)
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

func (c *Content) Fetch(ctx context.Context, q core.Query) (json.RawMessage, error) {
	key := hashKey("doc", q.CacheKey())
	if e, ok := c.get(key); ok {
		return e.raw, e.err
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		raw, err := c.source.Fetch(context.WithoutCancel(ctx), q)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		e := entry{raw: raw, err: err, docID: documentID(q, raw)}
		c.set(key, e)
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.DebugContext(ctx, "content fetch shared", "type", q.Type, "slug", q.Slug)
	}
	e := v.(entry)
	return e.raw, e.err
}

func (c *Content) Slugs(ctx context.Context, docType string, perspective core.Perspective) ([]string, error) {
	key := hashKey("slugs", string(perspective)+"|"+docType)
	if e, ok := c.get(key); ok {
		return e.slugs, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		slugs, err := c.source.Slugs(context.WithoutCancel(ctx), docType, perspective)
		if err != nil {
			return nil, err
		}
		c.set(key, entry{slugs: slugs})
		return slugs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Invalidate drops every cached entry for the document, and every slug
// listing since a new or renamed page changes them.
func (c *Content) Invalidate(ref core.DocumentRef) {
	id := ref.PublishedID()
	c.mu.Lock()
	for key, e := range c.entries {
		if e.slugs != nil || e.docID == "" || e.docID == id {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func (c *Content) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

func (c *Content) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func documentID(q core.Query, raw json.RawMessage) string {
	if len(raw) > 0 {
		var doc struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(raw, &doc); err == nil && doc.ID != "" {
			return core.PublishedID(doc.ID)
		}
	}
	return core.PublishedID(q.ID)
}

func hashKey(kind, key string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return fmt.Sprintf("%s:%x", kind, h.Sum64())
}

func isNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}
