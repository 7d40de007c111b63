// Package views renders the portal's HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-portal/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names.
const (
	PageLogin            = "login"
	PageManagerDashboard = "dashboard"
	PageStaffDashboard   = "staff_dashboard"
	PageError            = "error"
)

var pageNames = []string{PageLogin, PageManagerDashboard, PageStaffDashboard, PageError}

// Renderer executes page templates wrapped in the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page with the layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes page with status. The page is rendered into a buffer first
// so a template failure never leaves a half-written response.
func (r *Renderer) Render(c *fiber.Ctx, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	c.Status(status)
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

var funcs = template.FuncMap{
	"join":       strings.Join,
	"formatTime": domain.FormatTimestamp,
	"percent": func(v float64) string {
		return fmt.Sprintf("%.0f%%", v)
	},
}
