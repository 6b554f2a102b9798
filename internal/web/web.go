// Package web holds the HTML pages served by the dispatcher.  The pages are
// plain forms posting to the handlers; they carry no decision logic.
package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Page data passed to every template.
type Page struct {
	Title    string
	Username string
	Admin    bool
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.  It panics on a malformed
// template since those ship with the binary.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.ParseFS(files, "templates/*.html"))}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}
