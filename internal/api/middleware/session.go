package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/organmatch/matching-service/internal/core/domain"
	"github.com/organmatch/matching-service/internal/core/ports"
)

const (
	// SessionCookie carries the token issued by the session store.
	SessionCookie = "session"

	ContextUserID = "user_id"
	ContextToken  = "session_token"
)

// LoadSession resolves the session cookie, if any, and injects the user id
// and raw token into the context. Requests without a valid session pass
// through anonymously, and so do requests whose session cannot be resolved
// because the store is unavailable.
func LoadSession(store ports.SessionStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			c.Set(ContextToken, cookie.Value)

			userID, err := store.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthenticated) {
					log.Warn().Err(err).Str("path", c.Path()).Msg("session lookup failed")
				}
				return next(c)
			}

			c.Set(ContextUserID, userID)
			return next(c)
		}
	}
}

// RequireSession redirects anonymous requests to the login page.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := UserID(c); !ok {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

// UserID returns the id injected by LoadSession.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ContextUserID).(int64)
	return id, ok
}

// Token returns the raw session token, valid or not. It falls back to the
// request cookie when LoadSession did not run.
func Token(c echo.Context) string {
	if tok, ok := c.Get(ContextToken).(string); ok && tok != "" {
		return tok
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
