package repository_test

import (
	"context"
	"testing"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"
	"go-portfolio-backend/internal/repository/memory"
	"go-portfolio-backend/internal/repository/noop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingletonRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSingleton[domain.Facts](memory.NewStore(), "facts", domain.SectionDocID, false)

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	want := domain.DefaultFacts()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSingletonMergeKeepsStoredFields(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := repository.NewSingleton[domain.Profile](store, "profile", domain.ProfileDocID, true)

	first := domain.DefaultProfile()
	first.Summary = "kept"
	require.NoError(t, repo.Save(ctx, first))

	second := domain.DefaultProfile()
	second.Name = "Jane Doe"
	second.Summary = ""
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "kept", got.Summary)
}

func TestCollectionReplaceShrinks(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollection[domain.Certificate](memory.NewStore(), "certificates")

	require.NoError(t, repo.Replace(ctx, []domain.Certificate{
		{ID: "a", Title: "First", Issuer: "Org", Date: "2020"},
		{ID: "b", Title: "Second", Issuer: "Org", Date: "2021"},
	}))
	require.NoError(t, repo.Replace(ctx, []domain.Certificate{
		{ID: "b", Title: "Second", Issuer: "Org", Date: "2021"},
	}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestCollectionReplaceRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewCollection[domain.Certificate](memory.NewStore(), "certificates")

	assert.Error(t, repo.Replace(ctx, []domain.Certificate{{Title: "No id"}}))
	assert.Error(t, repo.Replace(ctx, []domain.Certificate{{ID: "x"}, {ID: "x"}}))
}

func TestSingletonSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repository.NewSingleton[domain.Services](memory.NewStore(), "services", domain.SectionDocID, false)
	updates, err := repo.Subscribe(ctx)
	require.NoError(t, err)

	first := receive(t, updates)
	assert.False(t, first.Found)
	assert.NoError(t, first.Err)

	services := domain.DefaultServices()
	require.NoError(t, repo.Save(ctx, services))

	next := receive(t, updates)
	assert.True(t, next.Found)
	assert.Equal(t, services, next.Value)

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-updates:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscription not closed after cancel")
		}
	}
}

func TestSubscribeOnUnconfiguredStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repository.NewCollection[domain.EducationEntry](noop.Store{}, "education")
	updates, err := repo.Subscribe(ctx)
	require.NoError(t, err)

	first := receive(t, updates)
	assert.False(t, first.Found)
	assert.NoError(t, first.Err)
	assert.Empty(t, first.Value)

	assert.ErrorIs(t, repo.Replace(ctx, []domain.EducationEntry{{ID: "x"}}), domain.ErrStoreUnavailable)
}

func receive[T any](t *testing.T, ch <-chan repository.Result[T]) repository.Result[T] {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "subscription closed early")
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	var zero repository.Result[T]
	return zero
}
