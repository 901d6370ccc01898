// Package views wires the embedded operator console templates into the
// gofiber html engine. Pages are rendered inside layout.html, which pulls the
// page body in with {{embed}}.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

// Layout is the template every console page is embedded into.
const Layout = "layout"

// New returns the view engine. Fiber loads it when the app starts.
func New() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("views: embedded templates missing: %v", err))
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(FuncMap())
	return engine
}

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"fmtTime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.UTC().Format("2006-01-02 15:04:05")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"pct": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f)
		},
	}
}
