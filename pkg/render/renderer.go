// Package render produces a read-only HTML preview of a form document. The
// engine is pongo2-backed, mirrors the template loading and caching behavior
// of the generator stack it was extracted from, and sanitizes every label
// before it reaches a template.
package render

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
	theme "github.com/goliatone/go-theme"

	"github.com/arodidev/openmrs-form-builder/pkg/schema"
)

// DefaultTemplate is the template name rendered when no override is given.
const DefaultTemplate = "preview"

// Option configures the preview engine before construction.
type Option func(*config)

type config struct {
	baseDir     string
	templates   fs.FS
	extension   string
	themeConfig *theme.RendererConfig
}

// WithBaseDir loads templates from a directory on disk instead of the
// embedded set.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS instead of the embedded set.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default ".tpl" template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTheme passes a resolved go-theme renderer configuration whose name,
// variant, tokens, and CSS variables become available to templates.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.themeConfig = cfg
	}
}

// WithGoTemplateOptions exists for backward compatibility with the
// go-template based engine this package previously wrapped; it is a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

// Engine renders form previews from a cached pongo2 template set.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
	themeCtx    map[string]any
}

// New constructs a preview engine. With no options the embedded templates are
// used.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("render: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	if len(loaders) == 0 {
		embedded, err := defaultTemplates()
		if err != nil {
			return nil, err
		}
		loaders = append(loaders, pongo2.NewFSLoader(embedded))
	}

	registerDefaultFilters()

	return &Engine{
		templateSet: pongo2.NewSet("formbuilder", loaders...),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      cfg.extension,
		themeCtx:    themeContext(cfg.themeConfig),
	}, nil
}

// Render renders the form through the named template, defaulting to
// DefaultTemplate when name is empty.
func (e *Engine) Render(form schema.Form, name string) ([]byte, error) {
	if e == nil || e.templateSet == nil {
		return nil, errors.New("render: engine is nil")
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultTemplate
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	ctx := pongo2.Context{
		"form":  formContext(form),
		"theme": e.themeCtx,
	}

	e.mu.RLock()
	out, err := tmpl.ExecuteBytes(ctx)
	e.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("render: execute template %q: %w", templatePath, err)
	}
	return out, nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// formContext converts the document into plain maps with sanitized labels so
// templates never see raw markup.
func formContext(form schema.Form) map[string]any {
	pages := make([]any, 0, len(form.Pages))
	for _, page := range form.Pages {
		sections := make([]any, 0, len(page.Sections))
		for _, section := range page.Sections {
			questions := make([]any, 0, len(section.Questions))
			for _, q := range section.Questions {
				questions = append(questions, map[string]any{
					"id":        q.ID,
					"label":     SanitizeLabel(q.Label),
					"rendering": q.QuestionOptions.Rendering,
					"concept":   q.QuestionOptions.Concept,
					"required":  q.Required,
				})
			}
			sections = append(sections, map[string]any{
				"label":     SanitizeLabel(section.Label),
				"questions": questions,
			})
		}
		pages = append(pages, map[string]any{
			"label":    SanitizeLabel(page.Label),
			"sections": sections,
		})
	}
	return map[string]any{
		"name":        SanitizeLabel(form.Name),
		"description": SanitizeLabel(form.Description),
		"pages":       pages,
	}
}
