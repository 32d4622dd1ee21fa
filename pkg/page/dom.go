package page

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// ElementByID returns the first element in document order whose id equals id.
func (p *Page) ElementByID(id string) *html.Node {
	if p == nil || id == "" {
		return nil
	}
	return find(p.Document, func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return ok && v == id
	})
}

// FirstElement returns the first element named tag that carries attr. An empty
// tag matches any element.
func (p *Page) FirstElement(tag, attr string) *html.Node {
	if p == nil {
		return nil
	}
	tag = strings.ToLower(tag)
	return find(p.Document, func(n *html.Node) bool {
		if tag != "" && n.Data != tag {
			return false
		}
		_, ok := Attr(n, attr)
		return ok
	})
}

// ElementsWithAttr returns every element carrying attr, in document order. The
// slice is a snapshot: later tree edits do not change it.
func (p *Page) ElementsWithAttr(attr string) []*html.Node {
	if p == nil {
		return nil
	}
	var out []*html.Node
	walk(p.Document, func(n *html.Node) {
		if _, ok := Attr(n, attr); ok {
			out = append(out, n)
		}
	})
	return out
}

// FirstWithClass returns the first descendant of root (root excluded) whose
// class list contains class.
func FirstWithClass(root *html.Node, class string) *html.Node {
	if root == nil || class == "" {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := find(c, func(n *html.Node) bool { return HasClass(n, class) }); n != nil {
			return n
		}
	}
	return nil
}

// HasClass reports whether the element's class attribute lists class.
func HasClass(n *html.Node, class string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Attr returns the value of a non-namespaced attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil || n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or adds a non-namespaced attribute.
func SetAttr(n *html.Node, key, val string) {
	if n == nil || n.Type != html.ElementNode {
		return
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// SetInnerHTML replaces the children of n with markup parsed in the context of
// n. The markup is inserted as-is; nothing is escaped or sanitized.
func SetInnerHTML(n *html.Node, markup string) error {
	if n == nil || n.Type != html.ElementNode {
		return errors.New("page: inner markup target must be an element")
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return b.String()
		}
	}
	return b.String()
}

func find(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type == html.ElementNode && match(n) {
			return n
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return nil
}

func walk(root *html.Node, visit func(*html.Node)) {
	if root == nil {
		return
	}
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type == html.ElementNode {
			visit(n)
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
}
