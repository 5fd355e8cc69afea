package ports

import (
	"context"

	"github.com/organmatch/matching-service/internal/core/domain"
)

// UserRepository is the single-table user store.
type UserRepository interface {
	// Create inserts user and returns the stored row with its assigned id.
	// A taken username yields domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername returns domain.ErrUserNotFound when no row exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no row exists.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindMatches returns every row satisfying criteria in storage order.
	FindMatches(ctx context.Context, criteria domain.MatchCriteria) ([]domain.User, error)
}
