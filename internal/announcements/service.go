package announcements

import (
	"context"
	"fmt"
	"time"

	"github.com/css-society/portal/internal/platform/cache"
	"github.com/css-society/portal/internal/platform/httpx"
)

// CacheKey stores the serialized public feed.
const CacheKey = "portal:announcements:public"

// Service wraps announcement business rules.
type Service struct {
	repo  Repository
	cache *cache.Content
	now   func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, contentCache *cache.Content) *Service {
	return &Service{repo: repo, cache: contentCache, now: time.Now}
}

// PublicList returns the serialized non-archived feed, cache-first.
func (s *Service) PublicList(ctx context.Context) ([]byte, error) {
	return s.cache.Fetch(ctx, CacheKey, func(ctx context.Context) (any, error) {
		list, err := s.repo.List(ctx, false)
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []Announcement{}
		}
		return list, nil
	})
}

// Create publishes a feed entry. Kind defaults to Update, the publish date to
// the current time.
func (s *Service) Create(ctx context.Context, input Input) (*Announcement, error) {
	if input.Kind == "" {
		input.Kind = KindUpdate
	}
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown announcement type %q", httpx.ErrValidation, input.Kind)
	}
	if input.PublishedAt.IsZero() {
		input.PublishedAt = s.now()
	}
	item, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, CacheKey)
	return item, nil
}

// Delete removes a feed entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, CacheKey)
	return nil
}
