// Package view renders the HTML pages through echo's Renderer hook.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/organmatch/matching-service/internal/core/domain"
)

// Page names accepted by Renderer.Render.
const (
	PageHome     = "home"
	PageRegister = "register"
	PageLogin    = "login"
	PageMatches  = "matches"
	PageError    = "error"
)

//go:embed templates/*.html
var templatesFS embed.FS

// FormPage backs the register and login forms. Values echoes the submitted
// fields back into the form; passwords are never echoed.
type FormPage struct {
	Error  string
	Values map[string]string
}

type MatchesPage struct {
	User    *domain.User
	Matches []domain.User
}

type ErrorPage struct {
	Status  int
	Message string
}

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared base layout into its own template set.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	names := []string{PageHome, PageRegister, PageLogin, PageMatches, PageError}
	pages := make(map[string]*template.Template, len(names))

	for _, name := range names {
		tmpl, err := template.New(name).ParseFS(templatesFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
