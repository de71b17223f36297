// Package redis stores documents as JSON strings with a sorted-set index per
// collection, and carries change signals over Pub/Sub.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"
	"go-portfolio-backend/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

const maxTxRetries = 5

type DocumentStore struct {
	client goredis.UniversalClient
	prefix string
	broker *repository.Broker
	pubsub *goredis.PubSub
	wg     sync.WaitGroup
	once   sync.Once
}

var _ repository.Store = (*DocumentStore)(nil)

// NewDocumentStore subscribes to the change channel and returns the store.
// Keys are namespaced under prefix. The client belongs to the caller.
func NewDocumentStore(ctx context.Context, client goredis.UniversalClient, prefix string) (*DocumentStore, error) {
	s := &DocumentStore{
		client: client,
		prefix: prefix,
		broker: repository.NewBroker(),
	}

	s.pubsub = client.Subscribe(ctx, s.channel())
	// Wait for the subscription confirmation so no early change is missed.
	if _, err := s.pubsub.Receive(ctx); err != nil {
		_ = s.pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", s.channel(), err)
	}

	s.wg.Add(1)
	go s.listen()
	return s, nil
}

func (s *DocumentStore) listen() {
	defer s.wg.Done()
	for msg := range s.pubsub.Channel() {
		s.broker.Publish(msg.Payload)
	}
}

func (s *DocumentStore) docKey(collection, id string) string {
	return s.prefix + "doc:" + collection + ":" + id
}

func (s *DocumentStore) indexKey(collection string) string {
	return s.prefix + "idx:" + collection
}

func (s *DocumentStore) channel() string {
	return s.prefix + "changes"
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	data, err := s.client.Get(ctx, s.docKey(collection, id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return json.RawMessage(data), nil
}

// Set writes under WATCH so a concurrent merge cannot drop keys.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, data json.RawMessage, merge bool) error {
	key := s.docKey(collection, id)

	txf := func(tx *goredis.Tx) error {
		payload := data
		if merge {
			existing, err := tx.Get(ctx, key).Bytes()
			if err != nil && !errors.Is(err, goredis.Nil) {
				return err
			}
			if payload, err = repository.MergeJSON(existing, data); err != nil {
				return err
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, []byte(payload), 0)
			pipe.ZAddNX(ctx, s.indexKey(collection), goredis.Z{
				Score:  float64(time.Now().UnixMicro()),
				Member: id,
			})
			pipe.Publish(ctx, s.channel(), collection)
			return nil
		})
		return err
	}

	if err := s.retry(ctx, txf, key); err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]repository.Document, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	docs := []repository.Document{}
	if len(ids) == 0 {
		return docs, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(collection, id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Index entry without a document; skip it.
			continue
		}
		docs = append(docs, repository.Document{ID: ids[i], Data: json.RawMessage(str)})
	}
	return docs, nil
}

// ReplaceCollection rewrites the collection in one MULTI/EXEC block.
func (s *DocumentStore) ReplaceCollection(ctx context.Context, collection string, docs []repository.Document) error {
	index := s.indexKey(collection)

	txf := func(tx *goredis.Tx) error {
		old, err := tx.ZRange(ctx, index, 0, -1).Result()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			for _, id := range old {
				pipe.Del(ctx, s.docKey(collection, id))
			}
			pipe.Del(ctx, index)
			for i, d := range docs {
				pipe.Set(ctx, s.docKey(collection, d.ID), []byte(d.Data), 0)
				pipe.ZAdd(ctx, index, goredis.Z{Score: float64(i), Member: d.ID})
			}
			pipe.Publish(ctx, s.channel(), collection)
			return nil
		})
		return err
	}

	if err := s.retry(ctx, txf, index); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

func (s *DocumentStore) retry(ctx context.Context, txf func(*goredis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, keys...)
		if errors.Is(err, goredis.TxFailedErr) {
			logger.Log.Debug("redis transaction conflict, retrying", "keys", keys, "attempt", i+1)
			continue
		}
		return err
	}
	return goredis.TxFailedErr
}

func (s *DocumentStore) Watch(ctx context.Context, collection string) (<-chan struct{}, error) {
	return s.broker.Subscribe(ctx, collection), nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close ends the Pub/Sub subscription. The client belongs to the caller.
func (s *DocumentStore) Close() error {
	var err error
	s.once.Do(func() {
		err = s.pubsub.Close()
		s.wg.Wait()
		s.broker.Close()
	})
	return err
}
