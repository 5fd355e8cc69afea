package ports

import (
	"context"

	"github.com/organmatch/matching-service/internal/core/domain"
)

// RegisterInput carries the registration form after presence checks.
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Role            domain.Role
	Age             int
	BloodGroup      string
	Phone           string
	Organ           string
}

// LoginOutcome tags the result of a login attempt.
type LoginOutcome int

const (
	LoginSuccess LoginOutcome = iota
	LoginUnknownUser
	LoginInvalidPassword
)

func (o LoginOutcome) String() string {
	switch o {
	case LoginSuccess:
		return "success"
	case LoginUnknownUser:
		return "unknown_user"
	case LoginInvalidPassword:
		return "invalid_password"
	default:
		return "unknown"
	}
}

// LoginResult is the outcome of AuthService.Login. User is set only on success.
type LoginResult struct {
	Outcome LoginOutcome
	User    *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (LoginResult, error)
	CurrentUser(ctx context.Context, id int64) (*domain.User, error)
}
