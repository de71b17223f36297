// Package memory is an in-process document store for local development and tests.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"
)

type collection struct {
	order []string
	docs  map[string]json.RawMessage
}

type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	broker      *repository.Broker
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		collections: make(map[string]*collection),
		broker:      repository.NewBroker(),
	}
}

func (s *Store) Get(_ context.Context, coll, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.collections[coll]
	if c == nil {
		return nil, domain.ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(data), nil
}

func (s *Store) Set(_ context.Context, coll, id string, data json.RawMessage, merge bool) error {
	s.mu.Lock()
	c := s.ensure(coll)
	existing, exists := c.docs[id]
	if merge && exists {
		merged, err := repository.MergeJSON(existing, data)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		data = merged
	}
	if !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = clone(data)
	s.mu.Unlock()

	s.broker.Publish(coll)
	return nil
}

func (s *Store) List(_ context.Context, coll string) ([]repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.collections[coll]
	if c == nil {
		return []repository.Document{}, nil
	}
	out := make([]repository.Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, repository.Document{ID: id, Data: clone(c.docs[id])})
	}
	return out, nil
}

func (s *Store) ReplaceCollection(_ context.Context, coll string, docs []repository.Document) error {
	next := &collection{docs: make(map[string]json.RawMessage, len(docs))}
	for _, d := range docs {
		if _, dup := next.docs[d.ID]; !dup {
			next.order = append(next.order, d.ID)
		}
		next.docs[d.ID] = clone(d.Data)
	}

	s.mu.Lock()
	s.collections[coll] = next
	s.mu.Unlock()

	s.broker.Publish(coll)
	return nil
}

func (s *Store) Watch(ctx context.Context, coll string) (<-chan struct{}, error) {
	return s.broker.Subscribe(ctx, coll), nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error {
	s.broker.Close()
	return nil
}

func (s *Store) ensure(coll string) *collection {
	c := s.collections[coll]
	if c == nil {
		c = &collection{docs: make(map[string]json.RawMessage)}
		s.collections[coll] = c
	}
	return c
}

func clone(b json.RawMessage) json.RawMessage {
	if b == nil {
		return nil
	}
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}
