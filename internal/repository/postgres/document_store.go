package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"
	"go-portfolio-backend/pkg/database"
	"go-portfolio-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// DocumentStore keeps every document as a JSONB row of the documents table.
// Writes NOTIFY the collection name; a pq.Listener turns notifications into
// watcher signals, so subscribers on other instances see changes too.
type DocumentStore struct {
	db       *pgxpool.Pool
	broker   *repository.Broker
	listener *pq.Listener
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

var _ repository.Store = (*DocumentStore)(nil)

// NewDocumentStore wraps db. When connString is not empty a LISTEN connection
// is opened on it; if that fails, changes are only signalled within this process.
func NewDocumentStore(db *pgxpool.Pool, connString string) *DocumentStore {
	s := &DocumentStore{
		db:     db,
		broker: repository.NewBroker(),
		done:   make(chan struct{}),
	}
	if connString != "" {
		s.startListener(connString)
	}
	return s
}

func (s *DocumentStore) startListener(connString string) {
	listener := pq.NewListener(connString, 2*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Log.Warn("document change listener event", "event", int(ev), "error", err)
		}
	})
	if err := listener.Listen(database.ChangeChannel); err != nil {
		logger.Log.Warn("LISTEN unavailable, change feed is process local", "error", err)
		_ = listener.Close()
		return
	}
	s.listener = listener

	s.wg.Add(1)
	go s.listen()
}

func (s *DocumentStore) listen() {
	defer s.wg.Done()
	ticker := time.NewTicker(90 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case n, ok := <-s.listener.Notify:
			if !ok {
				return
			}
			// A nil notification follows a reconnect; anything may have changed.
			if n == nil {
				s.broker.PublishAll()
				continue
			}
			s.broker.Publish(n.Extra)
		case <-ticker.C:
			go func() { _ = s.listener.Ping() }()
		case <-s.done:
			return
		}
	}
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	query := `SELECT data::text FROM documents WHERE collection = $1 AND id = $2`

	var data string
	err := s.db.QueryRow(ctx, query, collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return json.RawMessage(data), nil
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, data json.RawMessage, merge bool) error {
	query := `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO UPDATE
		SET data = EXCLUDED.data, updated_at = now()`
	if merge {
		query = `
			INSERT INTO documents (collection, id, data)
			VALUES ($1, $2, $3::jsonb)
			ON CONFLICT (collection, id) DO UPDATE
			SET data = documents.data || EXCLUDED.data, updated_at = now()`
	}

	err := database.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, collection, id, string(data)); err != nil {
			return err
		}
		return s.notify(ctx, tx, collection)
	})
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	s.publishLocal(collection)
	return nil
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]repository.Document, error) {
	query := `SELECT id, data::text FROM documents WHERE collection = $1 ORDER BY seq`

	rows, err := s.db.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	docs := []repository.Document{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		docs = append(docs, repository.Document{ID: id, Data: json.RawMessage(data)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return docs, nil
}

// ReplaceCollection deletes and re-inserts the collection in one transaction,
// so readers never observe a partial rewrite.
func (s *DocumentStore) ReplaceCollection(ctx context.Context, collection string, docs []repository.Document) error {
	err := database.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(`DELETE FROM documents WHERE collection = $1`, collection)
		for _, d := range docs {
			batch.Queue(`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
				collection, d.ID, string(d.Data))
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
		return s.notify(ctx, tx, collection)
	})
	if err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	s.publishLocal(collection)
	return nil
}

func (s *DocumentStore) Watch(ctx context.Context, collection string) (<-chan struct{}, error) {
	return s.broker.Subscribe(ctx, collection), nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close stops the change feed. The pool belongs to the caller.
func (s *DocumentStore) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		if s.listener != nil {
			err = s.listener.Close()
		}
		s.wg.Wait()
		s.broker.Close()
	})
	return err
}

// notify is delivered to listeners when tx commits.
func (s *DocumentStore) notify(ctx context.Context, tx pgx.Tx, collection string) error {
	_, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, database.ChangeChannel, collection)
	return err
}

func (s *DocumentStore) publishLocal(collection string) {
	if s.listener == nil {
		s.broker.Publish(collection)
	}
}
