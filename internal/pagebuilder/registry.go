package pagebuilder

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/3-lines-studio/jamb/internal/core"
)

var (
	ErrEmptyTag     = errors.New("pagebuilder: empty block tag")
	ErrNilRenderer  = errors.New("pagebuilder: nil renderer")
	ErrDuplicateTag = errors.New("pagebuilder: tag already registered")
)

type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

func (r *Registry) Register(tag string, renderer Renderer) error {
	if tag == "" {
		return ErrEmptyTag
	}
	if renderer == nil {
		return fmt.Errorf("%w for %q", ErrNilRenderer, tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[tag]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	r.renderers[tag] = renderer
	return nil
}

func (r *Registry) MustRegister(tag string, renderer Renderer) {
	if err := r.Register(tag, renderer); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(tag string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[tag]
	return renderer, ok
}

func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.renderers))
	for tag := range r.renderers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// DefaultRegistry registers the built-in sections.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(core.TagHero, RendererFunc(renderHero))
	r.MustRegister(core.TagSplitFeature, RendererFunc(renderSplitFeature))
	r.MustRegister(core.TagProductGrid, RendererFunc(renderProductGrid))
	r.MustRegister(core.TagCategoryLinks, RendererFunc(renderCategoryLinks))
	r.MustRegister(core.TagStoryCards, RendererFunc(renderStoryCards))
	return r
}
