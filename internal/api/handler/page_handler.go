package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/organmatch/matching-service/internal/api/view"
)

// Home renders the landing page.
//
// @Summary      Landing page
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       / [get]
func Home(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageHome, nil)
}
