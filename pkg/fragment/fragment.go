package fragment

import (
	"errors"
)

// Fragment wraps the raw markup of a loaded fragment and its origin.
type Fragment struct {
	source Source
	raw    []byte
}

// New constructs a Fragment. Empty markup is valid: an empty file yields an
// empty container.
func New(src Source, raw []byte) (Fragment, error) {
	if src == nil {
		return Fragment{}, errors.New("fragment: source is required")
	}
	clone := append([]byte(nil), raw...)
	return Fragment{source: src, raw: clone}, nil
}

// MustNew panics if the fragment cannot be created. Useful for tests.
func MustNew(src Source, raw []byte) Fragment {
	f, err := New(src, raw)
	if err != nil {
		panic(err)
	}
	return f
}

// Source returns the origin metadata for the fragment.
func (f Fragment) Source() Source {
	return f.source
}

// Raw returns a copy of the fragment bytes.
func (f Fragment) Raw() []byte {
	return append([]byte(nil), f.raw...)
}

// Markup returns the fragment as text.
func (f Fragment) Markup() string {
	return string(f.raw)
}
