// Package firestore stores documents in Cloud Firestore collections of the
// same name. Collection order is kept in a hidden position field.
package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"
	"go-portfolio-backend/pkg/logger"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const positionField = "_position"

type DocumentStore struct {
	Client *firestore.Client

	mu      sync.Mutex
	watches map[int]context.CancelFunc
	nextID  int
	closed  bool
}

var _ repository.Store = (*DocumentStore)(nil)

func NewDocumentStore(client *firestore.Client) *DocumentStore {
	return &DocumentStore{Client: client, watches: make(map[int]context.CancelFunc)}
}

func (r *DocumentStore) col(collection string) *firestore.CollectionRef {
	return r.Client.Collection(collection)
}

func (r *DocumentStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	snap, err := r.col(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return encode(snap.Data())
}

func (r *DocumentStore) Set(ctx context.Context, collection, id string, data json.RawMessage, merge bool) error {
	fields, err := decode(data)
	if err != nil {
		return err
	}

	ref := r.col(collection).Doc(id)
	if merge {
		_, err = ref.Set(ctx, fields, firestore.MergeAll)
	} else {
		_, err = ref.Set(ctx, fields)
	}
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (r *DocumentStore) List(ctx context.Context, collection string) ([]repository.Document, error) {
	snaps, err := r.col(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		pi, iok := position(snaps[i].Data())
		pj, jok := position(snaps[j].Data())
		if iok != jok {
			return iok
		}
		if pi != pj {
			return pi < pj
		}
		return snaps[i].Ref.ID < snaps[j].Ref.ID
	})

	docs := make([]repository.Document, 0, len(snaps))
	for _, snap := range snaps {
		raw, err := encode(snap.Data())
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		docs = append(docs, repository.Document{ID: snap.Ref.ID, Data: raw})
	}
	return docs, nil
}

// ReplaceCollection deletes the documents that are not in docs and writes
// the rest, all inside one transaction.
func (r *DocumentStore) ReplaceCollection(ctx context.Context, collection string, docs []repository.Document) error {
	col := r.col(collection)

	keep := make(map[string]map[string]interface{}, len(docs))
	for i, d := range docs {
		fields, err := decode(d.Data)
		if err != nil {
			return err
		}
		fields[positionField] = i
		keep[d.ID] = fields
	}

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.DocumentRefs(col).GetAll()
		if err != nil {
			return err
		}
		for _, ref := range existing {
			if _, ok := keep[ref.ID]; ok {
				continue
			}
			if err := tx.Delete(ref); err != nil {
				return err
			}
		}
		for _, d := range docs {
			if err := tx.Set(col.Doc(d.ID), keep[d.ID]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

// Watch opens a snapshot listener on the collection until ctx is done or
// the store is closed. Every snapshot is signalled, the first included: it
// may already hold a write made after the subscriber's first read.
func (r *DocumentStore) Watch(ctx context.Context, collection string) (<-chan struct{}, error) {
	out := make(chan struct{}, 1)

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		cancel()
		close(out)
		return out, nil
	}
	id := r.nextID
	r.nextID++
	r.watches[id] = cancel
	r.mu.Unlock()

	it := r.col(collection).Snapshots(ctx)
	go func() {
		defer close(out)
		defer r.forget(id)
		defer it.Stop()

		for {
			_, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, iterator.Done) && status.Code(err) != codes.Canceled {
					logger.Log.Warn("firestore snapshot listener stopped", "collection", collection, "error", err)
				}
				return
			}
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()
	return out, nil
}

func (r *DocumentStore) forget(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cancel, ok := r.watches[id]; ok {
		cancel()
		delete(r.watches, id)
	}
}

func (r *DocumentStore) Ping(ctx context.Context) error {
	_, err := r.col("profile").Doc(domain.ProfileDocID).Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

// Close stops every open snapshot listener so streams built on them end.
// The client belongs to the caller.
func (r *DocumentStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for id, cancel := range r.watches {
		cancel()
		delete(r.watches, id)
	}
	return nil
}

func decode(data json.RawMessage) (map[string]interface{}, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("document is not a JSON object: %w", err)
	}
	if fields == nil {
		fields = map[string]interface{}{}
	}
	return fields, nil
}

func encode(fields map[string]interface{}) (json.RawMessage, error) {
	delete(fields, positionField)
	return json.Marshal(fields)
}

func position(fields map[string]interface{}) (int64, bool) {
	switch v := fields[positionField].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}
