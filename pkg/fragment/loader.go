package fragment

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches fragments from different sources (filesystem, fs.FS, HTTP).
// Implementations live under internal/fragment but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Fragment, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, src Source) (Fragment, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, src Source) (Fragment, error) {
	return f(ctx, src)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs fs sources, i.e. fragment paths without a scheme. When
	// nil those sources fail to load.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies). Nil means HTTP sources are disabled unless AllowHTTPFallback is
	// true.
	HTTPClient *http.Client

	// AllowHTTPFallback toggles a default client when no client is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps a single fetch. Zero leaves fetches unbounded, so a
	// hung server stalls the composition until ctx is cancelled.
	RequestTimeout time.Duration

	// UserAgent is sent with HTTP requests when set.
	UserAgent string
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects the fs.FS used for scheme-less fragment paths.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote fragments.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithUserAgent sets the User-Agent header for HTTP fetches.
func WithUserAgent(ua string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.UserAgent = ua
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Construction helpers live in the top-level fragments package to prevent import cycles.
