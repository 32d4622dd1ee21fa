package loader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-fragments/internal/fragment/loader"
	"github.com/goliatone/go-fragments/pkg/fragment"
)

func TestLoader_FileSystemSource(t *testing.T) {
	files := fstest.MapFS{
		"components/footer.html": {Data: []byte(`<div class="footer">#{name}</div>`)},
		"components/empty.html":  {Data: []byte{}},
	}
	l := loader.New(fragment.NewLoaderOptions(fragment.WithFileSystem(files)))

	got, err := l.Load(context.Background(), fragment.SourceFromFS("/components/footer.html"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Markup() != `<div class="footer">#{name}</div>` {
		t.Fatalf("unexpected markup %q", got.Markup())
	}

	empty, err := l.Load(context.Background(), fragment.SourceFromFS("components/empty.html"))
	if err != nil {
		t.Fatalf("empty fragment should load: %v", err)
	}
	if empty.Markup() != "" {
		t.Fatalf("expected empty markup, got %q", empty.Markup())
	}
}

func TestLoader_FileSystemMissingIsUnavailable(t *testing.T) {
	l := loader.New(fragment.NewLoaderOptions(fragment.WithFileSystem(fstest.MapFS{})))

	_, err := l.Load(context.Background(), fragment.SourceFromFS("components/nope.html"))
	if !fragment.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestLoader_FileSystemNotConfigured(t *testing.T) {
	l := loader.New(fragment.LoaderOptions{})

	_, err := l.Load(context.Background(), fragment.SourceFromFS("a.html"))
	if err == nil || fragment.IsUnavailable(err) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
}

func TestLoader_FileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "body.html")
	if err := os.WriteFile(path, []byte("<p>body</p>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	l := loader.New(fragment.LoaderOptions{})

	got, err := l.Load(context.Background(), fragment.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Markup() != "<p>body</p>" {
		t.Fatalf("unexpected markup %q", got.Markup())
	}

	_, err = l.Load(context.Background(), fragment.SourceFromFile(filepath.Join(dir, "missing.html")))
	if !fragment.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.html":
			if r.Header.Get("User-Agent") != "fragments-test" {
				http.Error(w, "missing agent", http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte("<nav>ok</nav>"))
		case "/boom.html":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := loader.New(fragment.NewLoaderOptions(
		fragment.WithHTTPClient(srv.Client()),
		fragment.WithUserAgent("fragments-test"),
	))
	ctx := context.Background()

	got, err := l.Load(ctx, fragment.SourceFromURL(srv.URL+"/ok.html"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Markup() != "<nav>ok</nav>" {
		t.Fatalf("unexpected markup %q", got.Markup())
	}

	_, err = l.Load(ctx, fragment.SourceFromURL(srv.URL+"/missing.html"))
	var se *fragment.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}

	_, err = l.Load(ctx, fragment.SourceFromURL(srv.URL+"/boom.html"))
	if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 StatusError, got %v", err)
	}
}

func TestLoader_HTTPDisabled(t *testing.T) {
	l := loader.New(fragment.LoaderOptions{})

	_, err := l.Load(context.Background(), fragment.SourceFromURL("http://127.0.0.1:1/x.html"))
	if err == nil {
		t.Fatal("expected error when http is disabled")
	}
}

func TestLoader_HTTPNetworkErrorIsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/x.html"
	srv.Close()

	l := loader.New(fragment.NewLoaderOptions(fragment.WithHTTPFallback(0)))
	_, err := l.Load(context.Background(), fragment.SourceFromURL(url))
	if err == nil || fragment.IsUnavailable(err) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := loader.New(fragment.NewLoaderOptions(fragment.WithFileSystem(fstest.MapFS{
		"a.html": {Data: []byte("a")},
	})))

	_, err := l.Load(ctx, fragment.SourceFromFS("a.html"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
