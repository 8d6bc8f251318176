package events

import (
	"context"
	"fmt"
	"time"

	"github.com/css-society/portal/internal/platform/cache"
	"github.com/css-society/portal/internal/platform/httpx"
)

// CacheKey stores the serialized public event list.
const CacheKey = "portal:events:public"

// Service wraps event business rules.
type Service struct {
	repo  Repository
	cache *cache.Content
	now   func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, contentCache *cache.Content) *Service {
	return &Service{repo: repo, cache: contentCache, now: time.Now}
}

// PublicList returns the serialized non-archived event list, cache-first.
func (s *Service) PublicList(ctx context.Context) ([]byte, error) {
	return s.cache.Fetch(ctx, CacheKey, func(ctx context.Context) (any, error) {
		list, err := s.repo.List(ctx, false)
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []Event{}
		}
		return list, nil
	})
}

// List returns every event, archived included, for the admin dashboard.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx, true)
}

// Create persists a new event with its status derived from the clock.
func (s *Service) Create(ctx context.Context, input Input) (*Event, error) {
	input, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	event, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, CacheKey)
	return event, nil
}

// Update replaces an event, re-deriving status from the possibly changed date.
func (s *Service) Update(ctx context.Context, id int64, input Input) (*Event, error) {
	input, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	event, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, CacheKey)
	return event, nil
}

// Delete removes an event.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, CacheKey)
	return nil
}

// CompletePast is the sweep entry point used by the background worker.
func (s *Service) CompletePast(ctx context.Context) (int64, error) {
	flipped, err := s.repo.CompletePast(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if flipped > 0 {
		s.cache.Invalidate(ctx, CacheKey)
	}
	return flipped, nil
}

func (s *Service) normalize(input Input) (Input, error) {
	if input.Status != "" && !input.Status.Valid() {
		return input, fmt.Errorf("%w: unknown event status %q", httpx.ErrValidation, input.Status)
	}
	if input.Location == "" {
		input.Location = DefaultLocation
	}
	input.Status = DeriveStatus(input.Status, input.StartsAt, s.now())
	return input, nil
}
