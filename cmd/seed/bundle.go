package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-portfolio-backend/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed bundle.schema.json
var bundleSchema []byte

// Bundle maps section names to their raw content. Collection sections hold
// a bare array of entries.
type Bundle map[domain.Section]json.RawMessage

// ParseBundle validates data against the bundle schema and splits it by section.
func ParseBundle(data []byte) (Bundle, error) {
	res, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(bundleSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// DefaultBundle holds the placeholder content of every section.
func DefaultBundle() (Bundle, error) {
	sections := map[domain.Section]any{
		domain.SectionProfile:      domain.DefaultProfile(),
		domain.SectionFacts:        domain.DefaultFacts(),
		domain.SectionSkills:       domain.DefaultSkills(),
		domain.SectionServices:     domain.DefaultServices(),
		domain.SectionTestimonials: domain.DefaultTestimonials(),
		domain.SectionPortfolio:    domain.DefaultPortfolio(),
	}
	bundle := make(Bundle, len(sections))
	for section, value := range sections {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		bundle[section] = raw
	}
	return bundle, nil
}

// Apply saves every section in the bundle in dashboard order. It keeps going
// after a failed section and returns all failures joined.
func Apply(ctx context.Context, uc domain.ContentUsecase, bundle Bundle) (saved []domain.Section, err error) {
	var errs []error
	for _, info := range domain.Sections {
		raw, ok := bundle[info.Name]
		if !ok {
			continue
		}
		payload := raw
		if info.Kind == domain.KindCollection {
			payload, err = json.Marshal(map[domain.Section]json.RawMessage{info.Name: raw})
			if err != nil {
				return saved, err
			}
		}
		if _, err := uc.Save(ctx, info.Name, payload); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", info.Name, err))
			continue
		}
		saved = append(saved, info.Name)
	}
	return saved, errors.Join(errs...)
}
