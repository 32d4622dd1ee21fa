package placeholder_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fragments/pkg/placeholder"
)

func parseBody(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + markup + "</body></html>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil && body == nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	if body == nil {
		t.Fatalf("body not found")
	}
	return body
}

func inner(t *testing.T, n *html.Node) string {
	t.Helper()
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			t.Fatalf("render: %v", err)
		}
	}
	return b.String()
}

func TestReplace_AllOccurrences(t *testing.T) {
	data := placeholder.BuildData("name=Alice")
	got := placeholder.Replace("#{name} and #{name} meet #{other}", data)
	want := "Alice and Alice meet #{other}"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestReplace_KeysAreLiteral(t *testing.T) {
	data := placeholder.NewData()
	data.Set("a.b", "dot")
	data.Set("x*", "star")

	got := placeholder.Replace("#{a.b} #{aXb} #{x*} #{xx}", data)
	want := "dot #{aXb} star #{xx}"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestReplace_ValuesAreLiteral(t *testing.T) {
	data := placeholder.NewData()
	data.Set("k", "$& $1")
	if got := placeholder.Replace("[#{k}]", data); got != "[$& $1]" {
		t.Fatalf("unexpected replacement %q", got)
	}
}

func TestReplace_SinglePass(t *testing.T) {
	data := placeholder.NewData()
	data.Set("b", "B")
	data.Set("a", "#{b}")

	// b is applied before a, so the token introduced by a survives.
	if got := placeholder.Replace("#{a}", data); got != "#{b}" {
		t.Fatalf("expected single-pass result, got %q", got)
	}

	// Running again resolves it: substitution is not idempotent here.
	once := placeholder.Replace("#{a}", data)
	twice := placeholder.Replace(once, data)
	if once == twice {
		t.Fatalf("expected second pass to change %q", once)
	}
}

func TestReplace_IdempotentWithoutNestedTokens(t *testing.T) {
	data := placeholder.BuildData("name=Alice&role=Admin")
	once := placeholder.Replace("#{name}/#{role}/#{x}", data)
	if twice := placeholder.Replace(once, data); twice != once {
		t.Fatalf("expected idempotent substitution, got %q then %q", once, twice)
	}
}

func TestReplace_NilData(t *testing.T) {
	if got := placeholder.Replace("#{a}", nil); got != "#{a}" {
		t.Fatalf("nil data should not change input, got %q", got)
	}
}

func TestReplaceInNode_TextAndWhitelistedAttributes(t *testing.T) {
	body := parseBody(t, `<div id="x" data-k="#{name}"><a href="/u/#{name}" title="#{name}" class="#{name}">Hi #{name}, #{missing}</a><img src="#{img}" alt="#{name}"><input value="#{name}"></div>`)
	data := placeholder.BuildData("name=Alice&img=a.png")

	placeholder.ReplaceInNode(body, data)

	want := `<div id="x" data-k="#{name}"><a href="/u/Alice" title="Alice" class="#{name}">Hi Alice, #{missing}</a><img src="a.png" alt="Alice"/><input value="Alice"/></div>`
	if diff := cmp.Diff(want, inner(t, body)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceInNode_ValuesAreText(t *testing.T) {
	body := parseBody(t, `<p>#{v}</p>`)
	data := placeholder.NewData()
	data.Set("v", "<b>bold</b>")

	placeholder.ReplaceInNode(body, data)

	if got := inner(t, body); got != "<p>&lt;b&gt;bold&lt;/b&gt;</p>" {
		t.Fatalf("expected escaped text, got %q", got)
	}
}

func TestReplaceInNode_NilDataIsNoop(t *testing.T) {
	body := parseBody(t, `<p title="#{a}">#{a}</p>`)
	before := inner(t, body)
	placeholder.ReplaceInNode(body, nil)
	if after := inner(t, body); after != before {
		t.Fatalf("nil data changed markup: %q", after)
	}
}

func TestReplaceInNode_CustomAttributes(t *testing.T) {
	body := parseBody(t, `<a href="#{a}" data-x="#{a}">#{a}</a>`)
	r := placeholder.NewReplacer("data-x")

	r.ReplaceInNode(body, placeholder.BuildData("a=1"))

	if got := inner(t, body); got != `<a href="#{a}" data-x="1">1</a>` {
		t.Fatalf("unexpected markup %q", got)
	}
}

func TestUnresolved(t *testing.T) {
	body := parseBody(t, `<p title="#{t}">#{a} #{b} #{a}</p><a href="#{h}" data-x="#{ignored}">x</a>`)
	placeholder.ReplaceInNode(body, placeholder.BuildData("b=2"))

	got := placeholder.Unresolved(body)
	if diff := cmp.Diff([]string{"t", "a", "h"}, got); diff != "" {
		t.Fatalf("unresolved mismatch (-want +got):\n%s", diff)
	}
}
