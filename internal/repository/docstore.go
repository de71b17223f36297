package repository

import (
	"context"
	"encoding/json"
	"sync"
)

// Document is one stored record of a collection.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Store is the document store every content repository is built on.
// Implementations return domain.ErrNotFound for missing documents and
// domain.ErrStoreUnavailable when no backend is configured.
type Store interface {
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	// Set upserts a document. With merge, top-level keys of data overwrite
	// the stored ones and other stored keys are kept.
	Set(ctx context.Context, collection, id string, data json.RawMessage, merge bool) error
	// List returns every document of a collection in insertion order.
	List(ctx context.Context, collection string) ([]Document, error)
	// ReplaceCollection atomically deletes every document of a collection
	// and writes docs in their place.
	ReplaceCollection(ctx context.Context, collection string, docs []Document) error
	// Watch signals each change to the collection. The channel is closed
	// once ctx is done.
	Watch(ctx context.Context, collection string) (<-chan struct{}, error)
	Ping(ctx context.Context) error
	Close() error
}

// Broker fans change signals out to watchers of a collection.
type Broker struct {
	mu     sync.Mutex
	subs   map[string]map[chan struct{}]struct{}
	closed bool
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe registers a watcher for collection. The returned channel has a
// buffer of one, so bursts of changes coalesce into a single signal. It is
// removed and closed when ctx is done.
func (b *Broker) Subscribe(ctx context.Context, collection string) <-chan struct{} {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	if b.subs[collection] == nil {
		b.subs[collection] = make(map[chan struct{}]struct{})
	}
	b.subs[collection][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(collection, ch)
	}()
	return ch
}

func (b *Broker) remove(collection string, ch chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[collection][ch]; !ok {
		return
	}
	delete(b.subs[collection], ch)
	if len(b.subs[collection]) == 0 {
		delete(b.subs, collection)
	}
	close(ch)
}

// Publish signals every watcher of collection without blocking.
func (b *Broker) Publish(collection string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// PublishAll signals every watcher. Used after a change feed reconnects and
// individual notifications may have been lost.
func (b *Broker) PublishAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, set := range b.subs {
		for ch := range set {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

// Close closes every watcher channel. Later subscriptions get a closed channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for collection, set := range b.subs {
		for ch := range set {
			close(ch)
		}
		delete(b.subs, collection)
	}
}

// MergeJSON overlays the top-level keys of patch onto base. Both must be
// JSON objects; an empty base yields patch.
func MergeJSON(base, patch json.RawMessage) (json.RawMessage, error) {
	if len(base) == 0 {
		return patch, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return nil, err
	}
	if merged == nil {
		merged = make(map[string]json.RawMessage, len(overlay))
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return json.Marshal(merged)
}
