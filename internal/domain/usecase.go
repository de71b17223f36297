package domain

import (
	"context"
	"encoding/json"
)

// Snapshot is one value pushed to a section subscriber.
type Snapshot struct {
	Section Section `json:"section"`
	// Placeholder is true while the section has never been saved and Data
	// holds the built-in default content.
	Placeholder bool `json:"placeholder"`
	Data        any  `json:"data"`
}

// ContentUsecase backs both the admin editors and the public display.
type ContentUsecase interface {
	// Get returns the current content of a section, or its defaults.
	Get(ctx context.Context, section Section) (Snapshot, error)
	// Save validates the payload and writes it (merge for the profile,
	// overwrite for other singletons, full rewrite for collections).
	Save(ctx context.Context, section Section, payload json.RawMessage) (Snapshot, error)
	// Subscribe streams the current value, then a new value after every change,
	// until ctx is done.
	Subscribe(ctx context.Context, section Section) (<-chan Snapshot, error)
	// SiteContent loads every section for the public page.
	SiteContent(ctx context.Context) (*SiteContent, error)
}

// PortfolioUsecase serves portfolio detail lookups.
type PortfolioUsecase interface {
	GetItem(ctx context.Context, id string) (*PortfolioItem, error)
}
