package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerPublishCoalesces(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx, "facts")
	b.Publish("facts")
	b.Publish("facts")
	b.Publish("skills")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce")
	default:
	}
}

func TestBrokerClosesOnCancel(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())

	ch := b.Subscribe(ctx, "facts")
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestBrokerPublishAllAndClose(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	a := b.Subscribe(ctx, "facts")
	c := b.Subscribe(ctx, "skills")
	b.PublishAll()

	_, ok := <-a
	assert.True(t, ok)
	_, ok = <-c
	assert.True(t, ok)

	b.Close()
	_, ok = <-a
	assert.False(t, ok)

	late := b.Subscribe(ctx, "facts")
	_, ok = <-late
	assert.False(t, ok)
}

func TestMergeJSON(t *testing.T) {
	merged, err := MergeJSON(
		json.RawMessage(`{"name":"Old","phone":"12345"}`),
		json.RawMessage(`{"name":"New","title":"Dev"}`),
	)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(merged, &got))
	assert.Equal(t, map[string]string{"name": "New", "phone": "12345", "title": "Dev"}, got)

	merged, err = MergeJSON(nil, json.RawMessage(`{"a":1}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(merged))

	_, err = MergeJSON(json.RawMessage(`[1]`), json.RawMessage(`{"a":1}`))
	assert.Error(t, err)
}
