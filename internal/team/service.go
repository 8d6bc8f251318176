package team

import (
	"context"

	"github.com/css-society/portal/internal/platform/cache"
)

// CacheKey stores the serialized public roster.
const CacheKey = "portal:team:public"

// DefaultRank places new entries at the bottom of the roster unless the
// administrator assigns a position.
const DefaultRank = 10

// Service wraps roster business rules.
type Service struct {
	repo  Repository
	cache *cache.Content
}

// NewService constructs a new Service.
func NewService(repo Repository, contentCache *cache.Content) *Service {
	return &Service{repo: repo, cache: contentCache}
}

// PublicList returns the serialized roster, cache-first.
func (s *Service) PublicList(ctx context.Context) ([]byte, error) {
	return s.cache.Fetch(ctx, CacheKey, func(ctx context.Context) (any, error) {
		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []BoardMember{}
		}
		return list, nil
	})
}

// Create adds a board member.
func (s *Service) Create(ctx context.Context, input Input) (*BoardMember, error) {
	if input.Bio == "" {
		input.Bio = DefaultBio
	}
	if input.Rank == 0 {
		input.Rank = DefaultRank
	}
	member, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, CacheKey)
	return member, nil
}

// Delete removes a board member.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, CacheKey)
	return nil
}
