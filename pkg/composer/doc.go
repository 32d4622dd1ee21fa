// Package composer implements fragment composition for a parsed page: it
// detects the page's template code, loads include fragments and the body
// fragment into their containers, and substitutes `#{key}` placeholders with
// values from the page's query string.
//
// A composition never fails as a whole. Each container that cannot be filled
// receives a short notice and the error is logged and recorded in the Report,
// so a broken include does not stop the body from loading.
//
// Typical use:
//
//	c, err := composer.New(composer.WithLoaderOptions(fragment.WithFileSystem(os.DirFS("site"))))
//	p, _ := page.Parse(r, "/members/signIn_ko.html?name=Alice")
//	report := c.Compose(ctx, p)
package composer
