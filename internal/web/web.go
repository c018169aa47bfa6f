// Package web holds the HTML templates and static assets, embedded so the
// binary (and the handler tests) need no working directory setup.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page and partial. Templates are addressed by base
// file name, e.g. "todos.html" or "todo_item.html".
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS,
		"templates/*.html", "templates/partials/*.html"))
}

// Static returns the embedded asset tree rooted at static/.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
