package fragment

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source identifies where a fragment lives so loaders can read files, fs.FS
// entries, or URLs without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(p string) Source {
	return fileSource{path: filepath.Clean(p)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source naming an entry inside an fs.FS. Leading
// slashes are dropped because fs.FS names are always unrooted.
func SourceFromFS(name string) Source {
	cleaned := strings.TrimPrefix(path.Clean("/"+name), "/")
	if cleaned == "" {
		cleaned = "."
	}
	return fsSource{name: cleaned}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }

func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL returns a Source for an absolute HTTP(S) URL.
func SourceFromURL(raw string) Source {
	return urlSource{raw: raw}
}

// SourceFromLocation picks the source kind for a resolved fragment location:
// http and https URLs load remotely, file URLs load from disk, and everything
// else is treated as a path inside the loader's file system.
func SourceFromLocation(loc *url.URL) Source {
	if loc == nil {
		return SourceFromFS(".")
	}
	switch strings.ToLower(loc.Scheme) {
	case "http", "https":
		return SourceFromURL(loc.String())
	case "file":
		return SourceFromFile(filepath.FromSlash(loc.Path))
	default:
		return SourceFromFS(loc.Path)
	}
}
