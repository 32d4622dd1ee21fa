package fragments

import (
	"io/fs"

	"github.com/goliatone/go-fragments/internal/fragment/loader"
	"github.com/goliatone/go-fragments/pkg/composer"
	"github.com/goliatone/go-fragments/pkg/fragment"
)

// Diagnostics exposes code detection and query data without composing.
type Diagnostics = composer.Diagnostics

// Report summarises one composition run.
type Report = composer.Report

// Result is the outcome of loading a single container.
type Result = composer.Result

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...fragment.LoaderOption) fragment.Loader {
	cfg := fragment.NewLoaderOptions(options...)
	return loader.New(cfg)
}

// NewComposer exposes the composer constructor from the top-level module.
func NewComposer(options ...composer.Option) (*composer.Composer, error) {
	return composer.New(options...)
}

// NewDiagnostics returns the inspection surface of a composer built with the
// same options.
func NewDiagnostics(options ...composer.Option) (Diagnostics, error) {
	return composer.New(options...)
}

// WithSiteFS serves scheme-less fragment paths from fsys, usually the site
// root the host page was read from.
func WithSiteFS(fsys fs.FS) composer.Option {
	return composer.WithLoaderOptions(fragment.WithFileSystem(fsys))
}
