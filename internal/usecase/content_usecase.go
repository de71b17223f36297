package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/repository"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// sectionBinding is the editor behaviour shared by every section.
type sectionBinding interface {
	get(ctx context.Context) (domain.Snapshot, error)
	save(ctx context.Context, payload json.RawMessage) (domain.Snapshot, error)
	subscribe(ctx context.Context) (<-chan domain.Snapshot, error)
}

type contentUsecase struct {
	profile      *singletonSection[domain.Profile]
	facts        *singletonSection[domain.Facts]
	skills       *singletonSection[domain.Skills]
	services     *singletonSection[domain.Services]
	testimonials *singletonSection[domain.Testimonials]
	portfolio    *singletonSection[domain.Portfolio]
	education    *collectionSection[domain.EducationEntry]
	experience   *collectionSection[domain.ExperienceEntry]
	certificates *collectionSection[domain.Certificate]

	sections map[domain.Section]sectionBinding
}

// NewContentUsecase binds every section in domain.Sections to store.
func NewContentUsecase(store repository.Store, validate *validator.Validate) domain.ContentUsecase {
	uc := &contentUsecase{
		profile:      newSingletonSection(store, validate, domain.SectionProfile, domain.DefaultProfile, nil),
		facts:        newSingletonSection(store, validate, domain.SectionFacts, domain.DefaultFacts, prepareFacts),
		skills:       newSingletonSection(store, validate, domain.SectionSkills, domain.DefaultSkills, nil),
		services:     newSingletonSection(store, validate, domain.SectionServices, domain.DefaultServices, prepareServices),
		testimonials: newSingletonSection(store, validate, domain.SectionTestimonials, domain.DefaultTestimonials, nil),
		portfolio:    newSingletonSection(store, validate, domain.SectionPortfolio, domain.DefaultPortfolio, preparePortfolio),
		education: newCollectionSection(store, validate, domain.SectionEducation,
			func(e *domain.EducationEntry, id string) { e.ID = id }),
		experience: newCollectionSection(store, validate, domain.SectionExperience,
			func(e *domain.ExperienceEntry, id string) { e.ID = id }),
		certificates: newCollectionSection(store, validate, domain.SectionCertificates,
			func(c *domain.Certificate, id string) { c.ID = id }),
	}

	uc.sections = map[domain.Section]sectionBinding{
		domain.SectionProfile:      uc.profile,
		domain.SectionFacts:        uc.facts,
		domain.SectionSkills:       uc.skills,
		domain.SectionServices:     uc.services,
		domain.SectionTestimonials: uc.testimonials,
		domain.SectionPortfolio:    uc.portfolio,
		domain.SectionEducation:    uc.education,
		domain.SectionExperience:   uc.experience,
		domain.SectionCertificates: uc.certificates,
	}
	return uc
}

func (uc *contentUsecase) binding(section domain.Section) (sectionBinding, error) {
	b, ok := uc.sections[section]
	if !ok {
		return nil, apperror.New(http.StatusNotFound, "Unknown content section", domain.ErrUnknownSection)
	}
	return b, nil
}

func (uc *contentUsecase) Get(ctx context.Context, section domain.Section) (domain.Snapshot, error) {
	b, err := uc.binding(section)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return b.get(ctx)
}

func (uc *contentUsecase) Save(ctx context.Context, section domain.Section, payload json.RawMessage) (domain.Snapshot, error) {
	b, err := uc.binding(section)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return b.save(ctx, payload)
}

func (uc *contentUsecase) Subscribe(ctx context.Context, section domain.Section) (<-chan domain.Snapshot, error) {
	b, err := uc.binding(section)
	if err != nil {
		return nil, err
	}
	return b.subscribe(ctx)
}

// SiteContent never fails: a section that cannot be read is rendered from
// its defaults and the error is logged.
func (uc *contentUsecase) SiteContent(ctx context.Context) (*domain.SiteContent, error) {
	site := &domain.SiteContent{Placeholder: make(map[domain.Section]bool)}

	site.Profile = loadOrDefault(ctx, uc.profile, site.Placeholder)
	site.Facts = loadOrDefault(ctx, uc.facts, site.Placeholder)
	site.Skills = loadOrDefault(ctx, uc.skills, site.Placeholder)
	site.Services = loadOrDefault(ctx, uc.services, site.Placeholder)
	site.Testimonials = loadOrDefault(ctx, uc.testimonials, site.Placeholder)
	site.Portfolio = loadOrDefault(ctx, uc.portfolio, site.Placeholder)
	site.Education = loadEntries(ctx, uc.education, site.Placeholder)
	site.Experience = loadEntries(ctx, uc.experience, site.Placeholder)
	site.Certificates = loadEntries(ctx, uc.certificates, site.Placeholder)

	return site, nil
}

func loadOrDefault[T any](ctx context.Context, s *singletonSection[T], placeholder map[domain.Section]bool) T {
	v, found, err := s.load(ctx)
	if err != nil {
		logger.Log.Error("failed to load section", "section", s.section, "error", err)
		placeholder[s.section] = true
		return s.defaults()
	}
	if !found {
		placeholder[s.section] = true
	}
	return v
}

func loadEntries[T domain.Entry](ctx context.Context, s *collectionSection[T], placeholder map[domain.Section]bool) []T {
	items, err := s.repo.Load(ctx)
	if err != nil {
		logger.Log.Error("failed to load section", "section", s.section, "error", err)
		placeholder[s.section] = true
		return []T{}
	}
	if len(items) == 0 {
		placeholder[s.section] = true
	}
	return items
}

// singletonSection stores a whole section as one document.
type singletonSection[T any] struct {
	section  domain.Section
	merge    bool
	repo     *repository.Singleton[T]
	defaults func() T
	// prepare fills generated values and reports errors the tags cannot express.
	prepare  func(*T) map[string]string
	validate *validator.Validate
}

func newSingletonSection[T any](store repository.Store, validate *validator.Validate, section domain.Section, defaults func() T, prepare func(*T) map[string]string) *singletonSection[T] {
	info, err := domain.LookupSection(string(section))
	if err != nil {
		panic(fmt.Sprintf("section %q is not registered", section))
	}
	return &singletonSection[T]{
		section:  section,
		merge:    info.Merge,
		repo:     repository.NewSingleton[T](store, info.Collection, info.DocID, info.Merge),
		defaults: defaults,
		prepare:  prepare,
		validate: validate,
	}
}

// load returns the defaults with found=false when nothing was ever saved.
func (s *singletonSection[T]) load(ctx context.Context) (T, bool, error) {
	v, err := s.repo.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return s.defaults(), false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

func (s *singletonSection[T]) snapshot(v T, found bool) domain.Snapshot {
	return domain.Snapshot{Section: s.section, Placeholder: !found, Data: v}
}

func (s *singletonSection[T]) get(ctx context.Context) (domain.Snapshot, error) {
	v, found, err := s.load(ctx)
	if err != nil {
		return domain.Snapshot{}, apperror.Internal(err)
	}
	return s.snapshot(v, found), nil
}

func (s *singletonSection[T]) save(ctx context.Context, payload json.RawMessage) (domain.Snapshot, error) {
	var v T
	if err := decodeStrict(payload, &v); err != nil {
		return domain.Snapshot{}, err
	}

	fields := map[string]string{}
	if s.prepare != nil {
		fields = s.prepare(&v)
	}
	if err := s.validate.Struct(&v); err != nil {
		for k, msg := range validation.FieldErrors(err) {
			fields[k] = msg
		}
	}
	if len(fields) > 0 {
		return domain.Snapshot{}, apperror.Validation(fields)
	}

	if !s.merge {
		if err := s.repo.Save(ctx, v); err != nil {
			return domain.Snapshot{}, writeError(s.section, err)
		}
		logger.Log.Info("section saved", "section", s.section)
		return s.snapshot(v, true), nil
	}

	patch, err := mergePatch(v, payload)
	if err != nil {
		return domain.Snapshot{}, apperror.Internal(err)
	}
	if err := s.repo.SaveRaw(ctx, patch); err != nil {
		return domain.Snapshot{}, writeError(s.section, err)
	}
	// Report what is stored after the merge, not just the payload.
	merged, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, apperror.Internal(err)
	}
	v = merged
	logger.Log.Info("section saved", "section", s.section)
	return s.snapshot(v, true), nil
}

func (s *singletonSection[T]) subscribe(ctx context.Context) (<-chan domain.Snapshot, error) {
	updates, err := s.repo.Subscribe(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return relay(ctx, updates, func(r repository.Result[T]) (domain.Snapshot, bool) {
		if r.Err != nil {
			logger.Log.Warn("section subscription read failed", "section", s.section, "error", r.Err)
			return domain.Snapshot{}, false
		}
		if !r.Found {
			return s.snapshot(s.defaults(), false), true
		}
		return s.snapshot(r.Value, true), true
	}), nil
}

// collectionSection stores one document per entry and rewrites the whole
// collection on save.
type collectionSection[T domain.Entry] struct {
	section  domain.Section
	repo     *repository.Collection[T]
	setID    func(*T, string)
	validate *validator.Validate
}

func newCollectionSection[T domain.Entry](store repository.Store, validate *validator.Validate, section domain.Section, setID func(*T, string)) *collectionSection[T] {
	info, err := domain.LookupSection(string(section))
	if err != nil {
		panic(fmt.Sprintf("section %q is not registered", section))
	}
	return &collectionSection[T]{
		section:  section,
		repo:     repository.NewCollection[T](store, info.Collection),
		setID:    setID,
		validate: validate,
	}
}

func (s *collectionSection[T]) snapshot(items []T) domain.Snapshot {
	if items == nil {
		items = []T{}
	}
	return domain.Snapshot{Section: s.section, Placeholder: len(items) == 0, Data: items}
}

func (s *collectionSection[T]) get(ctx context.Context) (domain.Snapshot, error) {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, apperror.Internal(err)
	}
	return s.snapshot(items), nil
}

// save expects {"<section>": [...]} and replaces the stored collection with
// exactly those entries.
func (s *collectionSection[T]) save(ctx context.Context, payload json.RawMessage) (domain.Snapshot, error) {
	var body map[string][]T
	if err := decodeStrict(payload, &body); err != nil {
		return domain.Snapshot{}, err
	}
	items, ok := body[string(s.section)]
	if !ok {
		return domain.Snapshot{}, apperror.BadRequest(fmt.Sprintf("Request body must be {%q: [...]}", s.section))
	}
	if items == nil {
		items = []T{}
	}

	fields := map[string]string{}
	seen := make(map[string]bool, len(items))
	for i := range items {
		id := items[i].EntryID()
		if id == "" {
			id = uuid.NewString()
			s.setID(&items[i], id)
		}
		if seen[id] {
			fields[fmt.Sprintf("%s[%d].id", s.section, i)] = "ID must be unique"
		}
		seen[id] = true

		if err := s.validate.Struct(&items[i]); err != nil {
			for k, msg := range validation.FieldErrors(err) {
				fields[fmt.Sprintf("%s[%d].%s", s.section, i, k)] = msg
			}
		}
	}
	if len(fields) > 0 {
		return domain.Snapshot{}, apperror.Validation(fields)
	}

	if err := s.repo.Replace(ctx, items); err != nil {
		return domain.Snapshot{}, writeError(s.section, err)
	}
	logger.Log.Info("section saved", "section", s.section, "entries", len(items))
	return s.snapshot(items), nil
}

func (s *collectionSection[T]) subscribe(ctx context.Context) (<-chan domain.Snapshot, error) {
	updates, err := s.repo.Subscribe(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return relay(ctx, updates, func(r repository.Result[[]T]) (domain.Snapshot, bool) {
		if r.Err != nil {
			logger.Log.Warn("section subscription read failed", "section", s.section, "error", r.Err)
			return domain.Snapshot{}, false
		}
		return s.snapshot(r.Value), true
	}), nil
}

// relay converts repository results into snapshots, dropping the ones
// convert rejects, until updates closes or ctx is done.
func relay[V any](ctx context.Context, updates <-chan repository.Result[V], convert func(repository.Result[V]) (domain.Snapshot, bool)) <-chan domain.Snapshot {
	out := make(chan domain.Snapshot)
	go func() {
		defer close(out)
		for r := range updates {
			snap, ok := convert(r)
			if !ok {
				continue
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func decodeStrict(payload json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperror.BadRequest("Invalid request body: " + err.Error())
	}
	return nil
}

func writeError(section domain.Section, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return apperror.ServiceUnavailable("Content store is not configured", err)
	}
	logger.Log.Error("failed to save section", "section", section, "error", err)
	return apperror.New(http.StatusInternalServerError, fmt.Sprintf("Failed to save %s", section), err)
}

func prepareFacts(f *domain.Facts) map[string]string {
	for i := range f.Facts {
		if f.Facts[i].ID == "" {
			f.Facts[i].ID = uuid.NewString()
		}
	}
	return map[string]string{}
}

func prepareServices(s *domain.Services) map[string]string {
	for i := range s.Services {
		if s.Services[i].ID == "" {
			s.Services[i].ID = uuid.NewString()
		}
	}
	return map[string]string{}
}

// preparePortfolio assigns missing item ids and rejects duplicates, since
// items are addressed by id on the detail page.
func preparePortfolio(p *domain.Portfolio) map[string]string {
	fields := map[string]string{}
	seen := make(map[string]bool, len(p.Items))
	for i := range p.Items {
		if p.Items[i].ID == "" {
			p.Items[i].ID = uuid.NewString()
		}
		if seen[p.Items[i].ID] {
			fields[fmt.Sprintf("items[%d].id", i)] = "Item ID must be unique"
		}
		seen[p.Items[i].ID] = true
	}
	return fields
}

// mergePatch returns the top-level keys present in payload, valued from the
// validated record. Keys the record encodes as omitted (explicit empties)
// keep the payload's value so a merge can clear them.
func mergePatch[T any](v T, payload json.RawMessage) (json.RawMessage, error) {
	var sent map[string]json.RawMessage
	if err := json.Unmarshal(payload, &sent); err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var record map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &record); err != nil {
		return nil, err
	}

	patch := make(map[string]json.RawMessage, len(sent))
	for key, raw := range sent {
		if value, ok := record[key]; ok {
			patch[key] = value
			continue
		}
		patch[key] = raw
	}
	return json.Marshal(patch)
}
