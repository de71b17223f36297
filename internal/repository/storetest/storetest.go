// Package storetest holds behaviour every repository.Store must share.
package storetest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// WatchTimeout bounds how long a change signal may take to arrive.
var WatchTimeout = 5 * time.Second

// Run exercises store against the Store contract. The store must be empty.
func Run(t *testing.T, store repository.Store) {
	t.Run("get missing", func(t *testing.T) {
		_, err := store.Get(context.Background(), "profile", "main")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("set and merge", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "profile", "main", json.RawMessage(`{"name":"A","phone":"123"}`), false))
		require.NoError(t, store.Set(ctx, "profile", "main", json.RawMessage(`{"name":"B"}`), true))

		got, err := store.Get(ctx, "profile", "main")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"B","phone":"123"}`, string(got))

		require.NoError(t, store.Set(ctx, "profile", "main", json.RawMessage(`{"name":"C"}`), false))
		got, err = store.Get(ctx, "profile", "main")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"C"}`, string(got))
	})

	t.Run("replace collection keeps order and shrinks", func(t *testing.T) {
		ctx := context.Background()
		docs := []repository.Document{
			{ID: "b", Data: json.RawMessage(`{"id":"b","n":1}`)},
			{ID: "a", Data: json.RawMessage(`{"id":"a","n":2}`)},
			{ID: "c", Data: json.RawMessage(`{"id":"c","n":3}`)},
		}
		require.NoError(t, store.ReplaceCollection(ctx, "education", docs))

		got, err := store.List(ctx, "education")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"b", "a", "c"}, ids(got))

		require.NoError(t, store.ReplaceCollection(ctx, "education", docs[1:2]))
		got, err = store.List(ctx, "education")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
		assert.JSONEq(t, `{"id":"a","n":2}`, string(got[0].Data))

		require.NoError(t, store.ReplaceCollection(ctx, "education", nil))
		got, err = store.List(ctx, "education")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("watch signals changes and closes", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		changes, err := store.Watch(ctx, "facts")
		require.NoError(t, err)

		require.NoError(t, store.Set(context.Background(), "facts", "data", json.RawMessage(`{"facts":[]}`), false))
		select {
		case _, ok := <-changes:
			require.True(t, ok)
		case <-time.After(WatchTimeout):
			t.Fatal("no change signal after Set")
		}

		cancel()
		deadline := time.After(WatchTimeout)
		for {
			select {
			case _, ok := <-changes:
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("watch channel not closed after cancel")
			}
		}
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(context.Background()))
	})
}

func ids(docs []repository.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}
