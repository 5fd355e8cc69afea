package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/organmatch/matching-service/internal/api/metrics"
	"github.com/organmatch/matching-service/internal/core/domain"
	"github.com/organmatch/matching-service/internal/core/ports"
)

// MatchService runs the exact-attribute matching query and notifies every
// match found.
type MatchService struct {
	auth     ports.AuthService
	repo     ports.UserRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewMatchService(auth ports.AuthService, repo ports.UserRepository, notifier ports.Notifier, logger zerolog.Logger) *MatchService {
	return &MatchService{auth: auth, repo: repo, notifier: notifier, logger: logger}
}

// Matches loads the current user and every user with the same organ and blood
// group and the opposite role. Notifications go out sequentially before the
// result is returned.
func (s *MatchService) Matches(ctx context.Context, userID int64) (*ports.MatchView, error) {
	user, err := s.auth.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches, err := s.repo.FindMatches(ctx, domain.CriteriaFor(user))
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}

	metrics.MatchQueriesTotal.Inc()
	metrics.MatchesFound.Observe(float64(len(matches)))

	s.logger.Debug().
		Int64("user_id", user.ID).
		Str("organ", user.Organ).
		Str("blood_group", user.BloodGroup).
		Int("matches", len(matches)).
		Msg("match query executed")

	for _, m := range matches {
		s.notifier.Notify(ctx, m)
	}

	return &ports.MatchView{User: user, Matches: matches}, nil
}
