package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/organmatch/matching-service/internal/api/middleware"
	"github.com/organmatch/matching-service/internal/api/view"
	"github.com/organmatch/matching-service/internal/core/domain"
	"github.com/organmatch/matching-service/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	sessions     ports.SessionStore
	secureCookie bool
	logger       zerolog.Logger
}

// NewAuthHandler wires registration, login and logout. secureCookie marks the
// session cookie Secure, for deployments behind TLS.
func NewAuthHandler(authService ports.AuthService, sessions ports.SessionStore, secureCookie bool, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// RegisterForm renders an empty registration form.
//
// @Summary      Registration form
// @Tags         auth
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /register [get]
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageRegister, view.FormPage{})
}

// Register creates a user and logs them in.
//
// @Summary      Register a donor or recipient
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username          formData  string  true  "Username"
// @Param        password          formData  string  true  "Password"
// @Param        confirm_password  formData  string  true  "Password confirmation"
// @Param        role              formData  string  true  "Donor or Recipient"  Enums(Donor, Recipient)
// @Param        age               formData  int     true  "Age"
// @Param        blood_group       formData  string  true  "Blood group"
// @Param        phone             formData  string  true  "Phone number for match SMS"
// @Param        organ             formData  string  true  "Organ"
// @Success      303  "Redirect to /matches with session cookie"
// @Success      200  {string}  string  "Form re-rendered with an error"
// @Failure      400  {string}  string  "Form re-rendered with validation errors"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, view.PageRegister, view.FormPage{Error: msgInvalidForm})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, view.PageRegister, view.FormPage{Error: err.Error(), Values: form.values()})
	}

	in, err := form.input()
	if err != nil {
		return c.Render(http.StatusBadRequest, view.PageRegister, view.FormPage{Error: "age must be a whole number", Values: form.values()})
	}

	user, err := h.authService.Register(c.Request().Context(), in)
	switch {
	case errors.Is(err, domain.ErrPasswordMismatch):
		return c.Render(http.StatusOK, view.PageRegister, view.FormPage{Error: msgPasswordMismatch, Values: form.values()})
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Render(http.StatusOK, view.PageRegister, view.FormPage{Error: msgUsernameTaken, Values: form.values()})
	case errors.Is(err, domain.ErrInvalidRole):
		return c.Render(http.StatusBadRequest, view.PageRegister, view.FormPage{Error: err.Error(), Values: form.values()})
	case err != nil:
		return err
	}

	if err := h.startSession(c, user.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/matches")
}

// LoginForm renders an empty login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, view.FormPage{})
}

// Login starts a session on valid credentials. Unknown usernames are sent to
// the registration page.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      303  "Redirect to /matches, or to /register for an unknown username"
// @Success      200  {string}  string  "Form re-rendered with Invalid Password"
// @Failure      400  {string}  string  "Form re-rendered with validation errors"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, view.PageLogin, view.FormPage{Error: msgInvalidForm})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, view.PageLogin, view.FormPage{Error: err.Error(), Values: form.values()})
	}

	res, err := h.authService.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case ports.LoginUnknownUser:
		return c.Redirect(http.StatusSeeOther, "/register")
	case ports.LoginInvalidPassword:
		return c.Render(http.StatusOK, view.PageLogin, view.FormPage{Error: msgInvalidPassword, Values: form.values()})
	}

	if err := h.startSession(c, res.User.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/matches")
}

// Logout ends the session, if any, and always redirects home.
//
// @Summary      Logout
// @Tags         auth
// @Success      303  "Redirect to /"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if tok := middleware.Token(c); tok != "" {
		if err := h.sessions.Revoke(c.Request().Context(), tok); err != nil {
			h.logger.Warn().Err(err).Msg("failed to revoke session")
		}
	}
	h.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) startSession(c echo.Context, userID int64) error {
	token, err := h.sessions.Issue(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie(token, 0, h.secureCookie))
	return nil
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(sessionCookie("", -1, h.secureCookie))
}

func sessionCookie(value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
