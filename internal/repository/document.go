package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-portfolio-backend/internal/domain"
)

// Result is one value delivered to a subscriber. Found is false while the
// backing document (or every entry of a collection) is absent.
type Result[T any] struct {
	Value T
	Found bool
	Err   error
}

// Singleton stores one record of type T under a fixed document id.
type Singleton[T any] struct {
	store      Store
	collection string
	id         string
	merge      bool
}

func NewSingleton[T any](store Store, collection, id string, merge bool) *Singleton[T] {
	return &Singleton[T]{store: store, collection: collection, id: id, merge: merge}
}

// Load returns domain.ErrNotFound when the document was never written.
func (r *Singleton[T]) Load(ctx context.Context) (T, error) {
	var v T
	raw, err := r.store.Get(ctx, r.collection, r.id)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s/%s: %w", r.collection, r.id, err)
	}
	return v, nil
}

func (r *Singleton[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", r.collection, r.id, err)
	}
	return r.store.Set(ctx, r.collection, r.id, raw, r.merge)
}

// SaveRaw writes an already encoded document, merging when the singleton
// merges.
func (r *Singleton[T]) SaveRaw(ctx context.Context, raw json.RawMessage) error {
	return r.store.Set(ctx, r.collection, r.id, raw, r.merge)
}

// Subscribe emits the current value, then a fresh one after every change,
// until ctx is done.
func (r *Singleton[T]) Subscribe(ctx context.Context) (<-chan Result[T], error) {
	return subscribe(ctx, r.store, r.collection, func(ctx context.Context) Result[T] {
		v, err := r.Load(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			return Result[T]{}
		}
		return Result[T]{Value: v, Found: err == nil, Err: err}
	})
}

// Collection stores each record of type T as its own document keyed by
// its entry id.
type Collection[T domain.Entry] struct {
	store      Store
	collection string
}

func NewCollection[T domain.Entry](store Store, collection string) *Collection[T] {
	return &Collection[T]{store: store, collection: collection}
}

func (r *Collection[T]) Load(ctx context.Context) ([]T, error) {
	docs, err := r.store.List(ctx, r.collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := json.Unmarshal(doc.Data, &v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", r.collection, doc.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Replace rewrites the whole collection so that it holds exactly items.
func (r *Collection[T]) Replace(ctx context.Context, items []T) error {
	docs := make([]Document, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		id := item.EntryID()
		if id == "" {
			return fmt.Errorf("%s: entry without id", r.collection)
		}
		if seen[id] {
			return fmt.Errorf("%s: duplicate entry id %q", r.collection, id)
		}
		seen[id] = true

		raw, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", r.collection, id, err)
		}
		docs = append(docs, Document{ID: id, Data: raw})
	}
	return r.store.ReplaceCollection(ctx, r.collection, docs)
}

func (r *Collection[T]) Subscribe(ctx context.Context) (<-chan Result[[]T], error) {
	return subscribe(ctx, r.store, r.collection, func(ctx context.Context) Result[[]T] {
		items, err := r.Load(ctx)
		return Result[[]T]{Value: items, Found: len(items) > 0, Err: err}
	})
}

func subscribe[V any](ctx context.Context, store Store, collection string, load func(context.Context) Result[V]) (<-chan Result[V], error) {
	// Watch before the first read so a write in between is not missed.
	changes, err := store.Watch(ctx, collection)
	if err != nil {
		return nil, err
	}

	out := make(chan Result[V])
	go func() {
		defer close(out)
		send := func() bool {
			res := load(ctx)
			select {
			case out <- res:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if !send() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok || !send() {
					return
				}
			}
		}
	}()
	return out, nil
}
