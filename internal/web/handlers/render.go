// Package handlers holds the page handlers and their HTML templates.
package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"stockcast/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// render executes a page template. The page is buffered so a template
// failure can still produce a clean 500.
func render(w http.ResponseWriter, log *logger.Logger, name string, data interface{}) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.WithError(err).WithField("template", name).Error("Template execution failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// respondText writes a plain-text body.
func respondText(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(message))
}
