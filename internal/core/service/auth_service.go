package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/organmatch/matching-service/internal/api/metrics"
	"github.com/organmatch/matching-service/internal/core/domain"
	"github.com/organmatch/matching-service/internal/core/ports"
)

// AuthService implements registration, login and current-user lookup.
type AuthService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

// Register stores a new user. The role and confirmation are checked before
// anything is hashed or written, so a rejected form never creates a row.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !in.Role.Valid() {
		metrics.RegistrationsTotal.WithLabelValues("invalid_role").Inc()
		return nil, domain.ErrInvalidRole
	}
	if in.Password != in.ConfirmPassword {
		metrics.RegistrationsTotal.WithLabelValues("password_mismatch").Inc()
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Age:          in.Age,
		BloodGroup:   in.BloodGroup,
		Phone:        in.Phone,
		Organ:        in.Organ,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			metrics.RegistrationsTotal.WithLabelValues("username_taken").Inc()
			return nil, err
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login resolves username and checks password. Unknown usernames and wrong
// passwords are reported as distinct outcomes.
func (s *AuthService) Login(ctx context.Context, username, password string) (ports.LoginResult, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues(ports.LoginUnknownUser.String()).Inc()
			return ports.LoginResult{Outcome: ports.LoginUnknownUser}, nil
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return ports.LoginResult{}, fmt.Errorf("login: %w", err)
	}

	if !VerifyPassword(user.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues(ports.LoginInvalidPassword.String()).Inc()
		return ports.LoginResult{Outcome: ports.LoginInvalidPassword}, nil
	}

	metrics.LoginsTotal.WithLabelValues(ports.LoginSuccess.String()).Inc()
	return ports.LoginResult{Outcome: ports.LoginSuccess, User: user}, nil
}

// CurrentUser loads the row a session points at.
func (s *AuthService) CurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}
