package api

import (
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

// parsePageTemplates pairs every page with base.html and the shared partials
// so pages can embed the fragments HTMX swaps in.
func parsePageTemplates(files fs.FS, funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		patterns := append([]string{"base.html", page + ".html"}, partialTemplateFiles...)
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(files, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

func parsePartialTemplates(files fs.FS, funcMap template.FuncMap, partialFiles []string) (map[string]*template.Template, error) {
	partials := make(map[string]*template.Template, len(partialFiles))
	for _, partial := range partialFiles {
		name := strings.TrimSuffix(partial, ".html")
		parsed, err := template.New(name).Funcs(funcMap).ParseFS(files, partial)
		if err != nil {
			return nil, fmt.Errorf("parse partial %s: %w", partial, err)
		}
		partials[name] = parsed
	}
	return partials, nil
}
