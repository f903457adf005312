package delivery

import (
	"embed"
	"html/template"

	"catalog_ui/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type categoryOptions struct {
	Categories []domain.Category
	Selected   int
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("pages").Funcs(template.FuncMap{
		"options": func(categories []domain.Category, selected int) categoryOptions {
			return categoryOptions{Categories: categories, Selected: selected}
		},
	}).ParseFS(templateFS, "templates/*.tmpl")
}
