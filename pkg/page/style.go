package page

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// SetStyle sets one inline style property on n, keeping the other
// declarations of its style attribute. Properties compare case-insensitively.
// An unparsable style attribute is replaced by the single declaration.
func SetStyle(n *html.Node, property, value string) {
	if n == nil || n.Type != html.ElementNode {
		return
	}
	property = strings.ToLower(strings.TrimSpace(property))
	if property == "" {
		return
	}

	var decls []*css.Declaration
	if raw, ok := Attr(n, "style"); ok && strings.TrimSpace(raw) != "" {
		parsed, err := parseDeclarations(raw)
		if err == nil {
			decls = parsed
		}
	}

	replaced := false
	for _, d := range decls {
		if strings.EqualFold(d.Property, property) {
			d.Property = property
			d.Value = value
			d.Important = false
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, &css.Declaration{Property: property, Value: value})
	}

	SetAttr(n, "style", formatDeclarations(decls))
}

// Style returns the value of one inline style property.
func Style(n *html.Node, property string) (string, bool) {
	raw, ok := Attr(n, "style")
	if !ok {
		return "", false
	}
	decls, err := parseDeclarations(raw)
	if err != nil {
		return "", false
	}
	for i := len(decls) - 1; i >= 0; i-- {
		if strings.EqualFold(decls[i].Property, property) {
			return decls[i].Value, true
		}
	}
	return "", false
}

// parseDeclarations terminates the last declaration before parsing; douceur
// drops the value of a final declaration that has no ';'.
func parseDeclarations(raw string) ([]*css.Declaration, error) {
	raw = strings.TrimSpace(raw)
	if raw != "" && !strings.HasSuffix(raw, ";") {
		raw += ";"
	}
	return parser.ParseDeclarations(raw)
}

func formatDeclarations(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		s := d.Property + ": " + d.Value
		if d.Important {
			s += " !important"
		}
		parts = append(parts, s+";")
	}
	return strings.Join(parts, " ")
}
