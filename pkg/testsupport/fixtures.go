package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fragments/pkg/page"
)

// MustParsePage parses markup as a host page loaded from location.
func MustParsePage(t *testing.T, markup, location string) *page.Page {
	t.Helper()

	p, err := page.ParseString(markup, location)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return p
}

// LoadPage reads a host page fixture from disk, returning an error for callers
// managing setup outside of *testing.T.
func LoadPage(path, location string) (*page.Page, error) {
	if path == "" {
		return nil, errors.New("testsupport: page path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: open page: %w", err)
	}
	defer f.Close()
	return page.Parse(f, location)
}

// MustLoadPage is LoadPage for tests.
func MustLoadPage(t *testing.T, path, location string) *page.Page {
	t.Helper()

	p, err := LoadPage(path, location)
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	return p
}

// SiteFS builds an in-memory site from path/markup pairs. Paths are unrooted
// fs.FS names such as "shared/header.html".
func SiteFS(files map[string]string) fstest.MapFS {
	out := make(fstest.MapFS, len(files))
	for name, markup := range files {
		out[strings.TrimPrefix(name, "/")] = &fstest.MapFile{Data: []byte(markup), Mode: 0o644}
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// CompareGoldenHTML diffs two documents ignoring leading and trailing
// whitespace, which editors tend to add to golden files.
func CompareGoldenHTML(want, got string) string {
	return cmp.Diff(strings.TrimSpace(want), strings.TrimSpace(got))
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
