package live

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/3-lines-studio/jamb/internal/core"
)

type Event struct {
	ID       string           `json:"id"`
	Document core.DocumentRef `json:"document"`
	State    string           `json:"state"`
	Rev      string           `json:"rev,omitempty"`
	At       time.Time        `json:"at"`
}

// Broker fans document change events out to subscribers. Slow subscribers
// miss events rather than block publishers; a missed event only delays a
// re-render until the next one.
type Broker struct {
	mu     sync.Mutex
	subs   map[string]chan Event
	closed bool
}

func NewBroker() *Broker {
	return &Broker{subs: map[string]chan Event{}}
}

func (b *Broker) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, 8)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return id, ch
	}
	b.subs[id] = ch
	return id, ch
}

func (b *Broker) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *Broker) Publish(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every subscription. Later subscribers get a closed channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
