package firestore

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableClient talks to an emulator address nothing listens on, so
// listeners keep retrying until they are cancelled.
func unreachableClient(t *testing.T) *firestore.Client {
	t.Helper()
	t.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:1")
	client, err := firestore.NewClient(context.Background(), "test-project")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCloseEndsWatches(t *testing.T) {
	store := NewDocumentStore(unreachableClient(t))

	changes, err := store.Watch(context.Background(), "facts")
	require.NoError(t, err)

	require.NoError(t, store.Close())

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("watch channel still open after Close")
	}

	store.mu.Lock()
	assert.Empty(t, store.watches)
	store.mu.Unlock()
}

func TestWatchAfterCloseIsClosed(t *testing.T) {
	store := NewDocumentStore(unreachableClient(t))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	changes, err := store.Watch(context.Background(), "facts")
	require.NoError(t, err)
	_, ok := <-changes
	assert.False(t, ok)
}

func TestPosition(t *testing.T) {
	p, ok := position(map[string]interface{}{positionField: int64(3)})
	assert.True(t, ok)
	assert.Equal(t, int64(3), p)

	_, ok = position(map[string]interface{}{"title": "x"})
	assert.False(t, ok)

	raw, err := encode(map[string]interface{}{positionField: int64(1), "title": "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x"}`, string(raw))
}
