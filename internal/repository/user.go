package repository

import (
	"context"

	"github.com/kepran/PickemBot_Go/internal/domain"
)

// User defines the data access for chat participants
type User interface {
	// UpsertUser stores the user's latest display name keyed on the
	// platform ID
	UpsertUser(ctx context.Context, u *domain.User) error

	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// UsernamesByID resolves display names for the given IDs
	UsernamesByID(ctx context.Context, ids []int64) (map[int64]string, error)
}
