package fragments

import (
	"embed"
	"io/fs"
)

//go:embed examples/site
var embeddedExampleSite embed.FS

// ExampleSiteFS exposes the demo site committed under examples/site: host
// pages, shared includes and body fragments laid out the way the composer
// expects them.
//
// Typical use:
//
//	out, _, err := fragments.ComposeHTML(ctx, page,
//	  "/members/signIn_ko.html?name=Alice",
//	  fragments.WithSiteFS(fragments.ExampleSiteFS()),
//	)
func ExampleSiteFS() fs.FS {
	sub, err := fs.Sub(embeddedExampleSite, "examples/site")
	if err != nil {
		return embeddedExampleSite
	}
	return sub
}
