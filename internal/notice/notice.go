package notice

import (
	"fmt"
	"html"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-fragments/pkg/config"
)

// Kind names a notice template.
type Kind string

const (
	BodyFailed       Kind = "body_failed"
	IncludeMissing   Kind = "include_missing"
	IncludeFailed    Kind = "include_failed"
	ComponentMissing Kind = "component_missing"
	ComponentFailed  Kind = "component_failed"
)

// Notice is the data a template can reference: {{ path }} is the declared
// fragment path, {{ message }} the human readable failure.
type Notice struct {
	Path    string
	Message string
}

// Renderer renders notice markup from precompiled pongo2 templates. Values are
// autoescaped; the template text itself is emitted as markup.
type Renderer struct {
	templates map[Kind]*pongo2.Template
}

// New compiles the templates in cfg.
func New(cfg config.NoticeConfig) (*Renderer, error) {
	sources := map[Kind]string{
		BodyFailed:       cfg.BodyFailed,
		IncludeMissing:   cfg.IncludeMissing,
		IncludeFailed:    cfg.IncludeFailed,
		ComponentMissing: cfg.ComponentMissing,
		ComponentFailed:  cfg.ComponentFailed,
	}
	r := &Renderer{templates: make(map[Kind]*pongo2.Template, len(sources))}
	for kind, src := range sources {
		tpl, err := pongo2.FromString(src)
		if err != nil {
			return nil, fmt.Errorf("notice: compile %s: %w", kind, err)
		}
		r.templates[kind] = tpl
	}
	return r, nil
}

// Render returns the markup for kind. When the template is unknown or fails
// to execute the escaped message is returned together with the error.
func (r *Renderer) Render(kind Kind, n Notice) (string, error) {
	fallback := html.EscapeString(n.Message)
	if r == nil {
		return fallback, fmt.Errorf("notice: renderer is nil")
	}
	tpl, ok := r.templates[kind]
	if !ok {
		return fallback, fmt.Errorf("notice: unknown kind %q", kind)
	}
	out, err := tpl.Execute(pongo2.Context{
		"path":    n.Path,
		"message": n.Message,
	})
	if err != nil {
		return fallback, fmt.Errorf("notice: render %s: %w", kind, err)
	}
	return out, nil
}
