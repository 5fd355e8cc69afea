package ports

import (
	"context"

	"github.com/organmatch/matching-service/internal/core/domain"
)

// MatchView is what the matches page renders.
type MatchView struct {
	User    *domain.User
	Matches []domain.User
}

// MatchService finds the counterparts of the current user.
type MatchService interface {
	// Matches returns domain.ErrUnauthenticated when userID has no row.
	Matches(ctx context.Context, userID int64) (*MatchView, error)
}
