package user

import (
	"context"
	"fmt"
	"time"

	"github.com/kepran/PickemBot_Go/internal/domain"
	"github.com/kepran/PickemBot_Go/internal/repository"
)

// Cache sizing. Entries are one username each; a season's active
// predictor population fits comfortably below the cap.
const (
	DefaultCacheSize = 2048
	DefaultCacheTTL  = 15 * time.Minute
)

// Service defines the interface for user operations
type Service interface {
	// EnsureUser upserts the user's display name, skipping the write
	// when the cached name already matches
	EnsureUser(ctx context.Context, id int64, username string) error

	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

type service struct {
	repo  repository.User
	cache *userCache
}

// NewService creates a new user service
func NewService(repo repository.User) Service {
	return &service{
		repo:  repo,
		cache: newUserCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

func (s *service) EnsureUser(ctx context.Context, id int64, username string) error {
	if username == "" {
		return fmt.Errorf("%w: empty username", domain.ErrInvalidInput)
	}
	if cached, ok := s.cache.Get(id); ok && cached == username {
		return nil
	}

	if err := s.repo.UpsertUser(ctx, &domain.User{ID: id, Username: username}); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	s.cache.Set(id, username)
	return nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *service) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}
