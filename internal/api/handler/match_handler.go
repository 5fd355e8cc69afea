package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/organmatch/matching-service/internal/api/middleware"
	"github.com/organmatch/matching-service/internal/api/view"
	"github.com/organmatch/matching-service/internal/core/domain"
	"github.com/organmatch/matching-service/internal/core/ports"
)

type MatchHandler struct {
	matchService ports.MatchService
	secureCookie bool
}

func NewMatchHandler(matchService ports.MatchService, secureCookie bool) *MatchHandler {
	return &MatchHandler{matchService: matchService, secureCookie: secureCookie}
}

// Matches lists the counterparts of the logged-in user.
//
// @Summary      List matches
// @Description  Users with the same organ and blood group and the opposite role. Each match is sent an SMS when notifications are configured.
// @Tags         matches
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Success      303  "Redirect to /login without a session"
// @Router       /matches [get]
func (h *MatchHandler) Matches(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	result, err := h.matchService.Matches(c.Request().Context(), userID)
	if err != nil {
		// The session outlived its user row.
		if errors.Is(err, domain.ErrUnauthenticated) {
			c.SetCookie(sessionCookie("", -1, h.secureCookie))
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}

	return c.Render(http.StatusOK, view.PageMatches, view.MatchesPage{
		User:    result.User,
		Matches: result.Matches,
	})
}
