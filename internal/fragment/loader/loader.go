package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-fragments/pkg/fragment"
)

// Loader implements fragment.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	userAgent string
}

// Ensure the implementation satisfies the public interface.
var _ fragment.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options fragment.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		userAgent: options.UserAgent,
	}
}

// Load fetches a fragment from the provided source.
func (l *Loader) Load(ctx context.Context, src fragment.Source) (fragment.Fragment, error) {
	if src == nil {
		return fragment.Fragment{}, errors.New("fragment loader: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case fragment.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case fragment.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case fragment.SourceKindURL:
		if !l.allowHTTP {
			return fragment.Fragment{}, errors.New("fragment loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.userAgent, l.timeout)
	default:
		err = errors.New("fragment loader: unsupported source kind")
	}
	if err != nil {
		return fragment.Fragment{}, err
	}

	return fragment.New(src, data)
}
