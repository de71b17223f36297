// Package noop is the store used when no backend is configured. Reads look
// like an empty store and writes fail with domain.ErrStoreUnavailable.
package noop

import (
	"context"
	"encoding/json"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"
)

type Store struct{}

var _ repository.Store = Store{}

func (Store) Get(context.Context, string, string) (json.RawMessage, error) {
	return nil, domain.ErrNotFound
}

func (Store) Set(context.Context, string, string, json.RawMessage, bool) error {
	return domain.ErrStoreUnavailable
}

func (Store) List(context.Context, string) ([]repository.Document, error) {
	return []repository.Document{}, nil
}

func (Store) ReplaceCollection(context.Context, string, []repository.Document) error {
	return domain.ErrStoreUnavailable
}

// Watch never signals; the channel closes with ctx.
func (Store) Watch(ctx context.Context, _ string) (<-chan struct{}, error) {
	ch := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (Store) Ping(context.Context) error { return domain.ErrStoreUnavailable }

func (Store) Close() error { return nil }
