package fragments

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-fragments/pkg/composer"
	"github.com/goliatone/go-fragments/pkg/page"
)

// ComposeHTML parses the host page read from r, runs the full composition
// against location and returns the rendered document. Fragment failures do not
// make it fail; they are listed in the Report and shown in the page.
func ComposeHTML(ctx context.Context, r io.Reader, location string, options ...composer.Option) ([]byte, Report, error) {
	c, err := composer.New(options...)
	if err != nil {
		return nil, Report{}, err
	}
	p, err := page.Parse(r, location)
	if err != nil {
		return nil, Report{}, err
	}

	report := c.Compose(ctx, p)

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, report, fmt.Errorf("fragments: render page: %w", err)
	}
	return buf.Bytes(), report, nil
}

// ComposeString is ComposeHTML over an in-memory document.
func ComposeString(ctx context.Context, markup, location string, options ...composer.Option) (string, Report, error) {
	out, report, err := ComposeHTML(ctx, bytes.NewReader([]byte(markup)), location, options...)
	return string(out), report, err
}
