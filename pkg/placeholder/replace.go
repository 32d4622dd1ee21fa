package placeholder

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// DefaultAttributes lists the element attributes whose values take part in
// substitution.
var DefaultAttributes = []string{"href", "src", "alt", "title", "value"}

var (
	tokenPattern    = regexp.MustCompile(`#\{([^{}]*)\}`)
	defaultReplacer = NewReplacer(DefaultAttributes...)
)

// Token returns the placeholder token for key, e.g. "#{name}".
func Token(key string) string {
	return "#{" + key + "}"
}

// Replace substitutes every "#{key}" token in s, visiting keys in data order.
// Keys and values are taken literally. Each key is applied once, so a value
// that itself contains a token is only expanded if a later key matches it.
func Replace(s string, data *Data) string {
	if data == nil || !strings.Contains(s, "#{") {
		return s
	}
	for _, key := range data.keys {
		s = strings.ReplaceAll(s, Token(key), data.values[key])
	}
	return s
}

// Replacer walks node trees substituting placeholders in text nodes and in a
// fixed set of attributes.
type Replacer struct {
	attrs map[string]struct{}
}

// NewReplacer builds a Replacer for the given attribute names. With no names it
// falls back to DefaultAttributes.
func NewReplacer(attrs ...string) *Replacer {
	if len(attrs) == 0 {
		attrs = DefaultAttributes
	}
	set := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			set[a] = struct{}{}
		}
	}
	return &Replacer{attrs: set}
}

// ReplaceInNode substitutes placeholders in node and all of its descendants
// using DefaultAttributes.
func ReplaceInNode(node *html.Node, data *Data) {
	defaultReplacer.ReplaceInNode(node, data)
}

// ReplaceInNode substitutes placeholders below node. It is a no-op when data is
// nil. Children are captured before they are visited so changes made during
// the walk do not alter which nodes are processed.
func (r *Replacer) ReplaceInNode(node *html.Node, data *Data) {
	if data == nil || node == nil {
		return
	}
	stack := []*html.Node{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Type {
		case html.TextNode:
			n.Data = Replace(n.Data, data)
		case html.ElementNode:
			for i := range n.Attr {
				if r.substitutes(n.Attr[i]) {
					n.Attr[i].Val = Replace(n.Attr[i].Val, data)
				}
			}
			children := snapshot(n)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// Unresolved returns the distinct placeholder keys still present below node,
// in document order.
func (r *Replacer) Unresolved(node *html.Node) []string {
	if node == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var keys []string
	collect := func(s string) {
		for _, m := range tokenPattern.FindAllStringSubmatch(s, -1) {
			if _, ok := seen[m[1]]; ok {
				continue
			}
			seen[m[1]] = struct{}{}
			keys = append(keys, m[1])
		}
	}

	stack := []*html.Node{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n.Type {
		case html.TextNode:
			collect(n.Data)
		case html.ElementNode, html.DocumentNode:
			for _, a := range n.Attr {
				if r.substitutes(a) {
					collect(a.Val)
				}
			}
			children := snapshot(n)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
	return keys
}

// Unresolved reports unresolved keys using DefaultAttributes.
func Unresolved(node *html.Node) []string {
	return defaultReplacer.Unresolved(node)
}

func (r *Replacer) substitutes(a html.Attribute) bool {
	if a.Namespace != "" {
		return false
	}
	_, ok := r.attrs[a.Key]
	return ok
}

func snapshot(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}
