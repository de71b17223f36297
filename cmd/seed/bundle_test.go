package main

import (
	"context"
	"testing"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository/memory"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBundle = `{
  "facts": {
    "intro": {"title": "Facts", "description": "A few numbers about my work"},
    "facts": [{"icon": "Smile", "count": 12, "title": "Clients", "description": "Happy clients so far"}]
  },
  "education": [
    {"degree": "BSc Computer Science", "school": "State University", "startYear": "2012", "endYear": "2016", "location": "Berlin"}
  ]
}`

func TestParseBundle(t *testing.T) {
	bundle, err := ParseBundle([]byte(sampleBundle))
	require.NoError(t, err)
	assert.Len(t, bundle, 2)
	assert.Contains(t, bundle, domain.SectionEducation)

	_, err = ParseBundle([]byte(`{"blog": {}}`))
	assert.ErrorContains(t, err, "schema validation failed")

	_, err = ParseBundle([]byte(`{"education": {"degree": "x"}}`))
	assert.Error(t, err)

	_, err = ParseBundle([]byte(`{}`))
	assert.Error(t, err)

	_, err = ParseBundle([]byte(`not json`))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	defer store.Close()
	uc := usecase.NewContentUsecase(store, validation.New())

	bundle, err := ParseBundle([]byte(sampleBundle))
	require.NoError(t, err)

	saved, err := Apply(ctx, uc, bundle)
	require.NoError(t, err)
	assert.Equal(t, []domain.Section{domain.SectionFacts, domain.SectionEducation}, saved)

	snap, err := uc.Get(ctx, domain.SectionEducation)
	require.NoError(t, err)
	assert.False(t, snap.Placeholder)
}

func TestApplyKeepsGoingAfterRejectedSection(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	defer store.Close()
	uc := usecase.NewContentUsecase(store, validation.New())

	bundle := Bundle{
		domain.SectionFacts:     []byte(`{"intro": {"title": "F", "description": "short"}, "facts": []}`),
		domain.SectionEducation: []byte(`[]`),
	}

	saved, err := Apply(ctx, uc, bundle)
	require.Error(t, err)
	assert.ErrorContains(t, err, "facts")
	assert.Equal(t, []domain.Section{domain.SectionEducation}, saved)
}

func TestDefaultBundleSeeds(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	defer store.Close()
	uc := usecase.NewContentUsecase(store, validation.New())

	bundle, err := DefaultBundle()
	require.NoError(t, err)

	saved, err := Apply(ctx, uc, bundle)
	require.NoError(t, err)
	assert.Len(t, saved, 6)

	site, err := uc.SiteContent(ctx)
	require.NoError(t, err)
	assert.False(t, site.Placeholder[domain.SectionPortfolio])
	assert.Equal(t, domain.DefaultProfile().Name, site.Profile.Name)
}
