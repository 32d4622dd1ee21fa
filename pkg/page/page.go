package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Page is a parsed host document together with the location it was loaded
// from. The location supplies the query string used for substitution and the
// base against which relative fragment paths resolve.
type Page struct {
	Document *html.Node
	Location *url.URL
}

// Parse reads a full HTML document from r. location may be an absolute URL, a
// rooted path such as "/members/signIn_ko.html?name=a", or empty.
func Parse(r io.Reader, location string) (*Page, error) {
	if r == nil {
		return nil, errors.New("page: reader is nil")
	}
	loc, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return nil, fmt.Errorf("page: parse location: %w", err)
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse document: %w", err)
	}
	return &Page{Document: doc, Location: loc}, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(markup, location string) (*Page, error) {
	return Parse(strings.NewReader(markup), location)
}

// RawQuery returns the location query string without the leading "?".
func (p *Page) RawQuery() string {
	if p == nil || p.Location == nil {
		return ""
	}
	return p.Location.RawQuery
}

// Path returns the decoded location path.
func (p *Page) Path() string {
	if p == nil || p.Location == nil {
		return ""
	}
	return p.Location.Path
}

// Resolve resolves a fragment reference relative to the page location, the
// same way a browser resolves a relative fetch against the document URL.
func (p *Page) Resolve(ref string) (*url.URL, error) {
	target, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, fmt.Errorf("page: parse reference %q: %w", ref, err)
	}
	if p == nil || p.Location == nil {
		return target, nil
	}
	return p.Location.ResolveReference(target), nil
}

// Render writes the document as HTML.
func (p *Page) Render(w io.Writer) error {
	if p == nil || p.Document == nil {
		return errors.New("page: document is nil")
	}
	return html.Render(w, p.Document)
}

// String renders the document, returning an empty string on failure.
func (p *Page) String() string {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}
