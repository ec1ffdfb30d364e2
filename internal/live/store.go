package live

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/3-lines-studio/jamb/internal/core"
)

type StoreOption func(*Store)

func WithBroker(b *Broker) StoreOption {
	return func(s *Store) {
		s.broker = b
	}
}

// WithInvalidate registers a callback run after every state change, used
// to drop cached copies of the document.
func WithInvalidate(fn func(core.DocumentRef)) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.invalidate = append(s.invalidate, fn)
		}
	}
}

func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store holds the override state of every document seen by the live
// channel, keyed by published id. Readers never wait on each other.
type Store struct {
	mu         sync.RWMutex
	docs       map[string]entry
	broker     *Broker
	invalidate []func(core.DocumentRef)
	logger     *slog.Logger
}

type entry struct {
	ref   core.DocumentRef
	state core.DocumentState
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		docs:   make(map[string]entry),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func key(ref core.DocumentRef) string {
	return ref.PublishedID()
}

func (s *Store) update(ref core.DocumentRef, fn func(core.DocumentState) (core.DocumentState, bool)) bool {
	s.mu.Lock()
	e, ok := s.docs[key(ref)]
	if !ok {
		e = entry{ref: core.DocumentRef{ID: ref.PublishedID(), Type: ref.Type}}
	}
	if e.ref.Type == "" {
		e.ref.Type = ref.Type
	}
	next, changed := fn(e.state)
	if changed {
		e.state = next
		s.docs[key(ref)] = e
	}
	s.mu.Unlock()

	if changed {
		s.changed(e.ref, next)
	}
	return changed
}

func (s *Store) changed(ref core.DocumentRef, state core.DocumentState) {
	rev := state.BaseRev
	if state.State == core.StatePending {
		rev = state.PendingRev
	}
	s.logger.Debug("live document changed", "document", ref.ID, "type", ref.Type, "state", state.State.String(), "rev", rev)

	for _, fn := range s.invalidate {
		fn(ref)
	}
	if s.broker != nil {
		s.broker.Publish(Event{Document: ref, State: state.State.String(), Rev: rev})
	}
}

func (s *Store) Edit(e core.Edit) bool {
	return s.update(e.Document, func(st core.DocumentState) (core.DocumentState, bool) {
		return st.ApplyEdit(e)
	})
}

func (s *Store) Confirm(ref core.DocumentRef, rev string) bool {
	return s.update(ref, func(st core.DocumentState) (core.DocumentState, bool) {
		return st.Confirm(rev)
	})
}

func (s *Store) Revert(ref core.DocumentRef) bool {
	return s.update(ref, func(st core.DocumentState) (core.DocumentState, bool) {
		return st.Revert()
	})
}

// Observe records a freshly fetched copy. Only a confirmation of a pending
// edit counts as a change worth announcing.
func (s *Store) Observe(ref core.DocumentRef, fetched core.Blocks, rev string) {
	s.mu.Lock()
	e, ok := s.docs[key(ref)]
	if !ok {
		e = entry{ref: core.DocumentRef{ID: ref.PublishedID(), Type: ref.Type}}
	}
	wasPending := e.state.State == core.StatePending
	e.state, _ = e.state.Observe(fetched, rev)
	s.docs[key(ref)] = e
	confirmed := wasPending && e.state.State == core.StateConfirmed
	state := e.state
	s.mu.Unlock()

	if confirmed {
		s.changed(e.ref, state)
	}
}

func (s *Store) Resolve(ref core.DocumentRef, fetched core.Blocks) core.Blocks {
	s.mu.RLock()
	e, ok := s.docs[key(ref)]
	s.mu.RUnlock()
	if !ok {
		return fetched
	}
	return e.state.Resolve(fetched)
}

func (s *Store) State(ref core.DocumentRef) core.DocumentState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[key(ref)].state
}

// Current is the sequence a reader would see right now without a fresh
// fetch: the override while pending, else the last observed copy.
func (s *Store) Current(ref core.DocumentRef) (core.Blocks, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.docs[key(ref)]
	if !ok {
		return nil, false
	}
	return e.state.Resolve(e.state.Base), true
}

func (s *Store) Pending() []core.DocumentRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var refs []core.DocumentRef
	for _, e := range s.docs {
		if e.state.State == core.StatePending {
			refs = append(refs, e.ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}

// Touch announces a change without altering override state, for example
// after the published copy changed underneath.
func (s *Store) Touch(ref core.DocumentRef) {
	s.mu.RLock()
	state := s.docs[key(ref)].state
	s.mu.RUnlock()
	s.changed(core.DocumentRef{ID: ref.PublishedID(), Type: ref.Type}, state)
}
