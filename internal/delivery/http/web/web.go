// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var FS embed.FS

// Funcs are the helpers available to every page template.
var Funcs = template.FuncMap{
	"lines": func(s string) []string {
		var out []string
		for _, l := range strings.Split(s, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				out = append(out, l)
			}
		}
		return out
	},
	"lower": strings.ToLower,
	"slug": func(s string) string {
		return strings.ToLower(strings.Join(strings.Fields(s), "-"))
	},
}

// Templates parses every page.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(FS, "templates/*.html")
}
