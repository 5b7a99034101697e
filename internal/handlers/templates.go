package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders the short Markdown snippets used by tutor replies and
// drill explanations. Raw HTML in the source is dropped.
type Markdown struct {
	md goldmark.Markdown
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// HTML converts src to sanitized HTML, falling back to escaped text on error
func (m *Markdown) HTML(src string) template.HTML {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(strings.TrimSpace(buf.String()))
}

// LoadTemplates parses the page template and its components
func LoadTemplates(templatesPath string, md *Markdown) (*template.Template, error) {
	files := []string{filepath.Join(templatesPath, "page.tmpl")}

	components, err := filepath.Glob(filepath.Join(templatesPath, "components/*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob components: %w", err)
	}
	files = append(files, components...)

	funcMap := template.FuncMap{
		"markdown": md.HTML,
		"add": func(a, b int) int {
			return a + b
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}
