package page_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fragments/pkg/page"
)

const hostPage = `<!DOCTYPE html>
<html><head><title id="pageTitle">Hi #{name}</title></head>
<body>
<main data-template-code="MEM_BJOIN">
  <h1 id="pageDesc">Welcome <b>#{name}</b> &amp; friends</h1>
  <div id="dynamicBody"></div>
  <div data-include="./components/header.html"></div>
  <section><div data-include="./components/footer.html"></div></section>
</main>
<div id="dup">first</div><div id="dup">second</div>
</body></html>`

func mustParse(t *testing.T, markup, location string) *page.Page {
	t.Helper()
	p, err := page.ParseString(markup, location)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return p
}

func TestParse_Location(t *testing.T) {
	p := mustParse(t, hostPage, "https://example.com/members/signIn_ko.html?name=Alice")

	if p.RawQuery() != "name=Alice" {
		t.Fatalf("unexpected query %q", p.RawQuery())
	}
	if p.Path() != "/members/signIn_ko.html" {
		t.Fatalf("unexpected path %q", p.Path())
	}
}

func TestParse_NilReader(t *testing.T) {
	if _, err := page.Parse(nil, ""); err == nil {
		t.Fatal("expected error for nil reader")
	}
}

func TestResolve(t *testing.T) {
	p := mustParse(t, hostPage, "https://example.com/members/signIn_ko.html?name=Alice")

	cases := map[string]string{
		"./components/bodies/mem_bjoin.html": "https://example.com/members/components/bodies/mem_bjoin.html",
		"/shared/footer.html":                "https://example.com/shared/footer.html",
		"../up.html":                         "https://example.com/up.html",
		"https://cdn.example.org/x.html":     "https://cdn.example.org/x.html",
	}
	for ref, want := range cases {
		got, err := p.Resolve(ref)
		if err != nil {
			t.Fatalf("resolve %q: %v", ref, err)
		}
		if got.String() != want {
			t.Fatalf("resolve %q: want %q, got %q", ref, want, got)
		}
	}
}

func TestElementByID_FirstMatch(t *testing.T) {
	p := mustParse(t, hostPage, "/")

	el := p.ElementByID("dup")
	if el == nil || page.Text(el) != "first" {
		t.Fatalf("expected first #dup element, got %v", el)
	}
	if p.ElementByID("missing") != nil {
		t.Fatal("expected nil for missing id")
	}
}

func TestFirstElement(t *testing.T) {
	p := mustParse(t, hostPage, "/")

	main := p.FirstElement("main", "data-template-code")
	if main == nil {
		t.Fatal("expected main element")
	}
	if v, _ := page.Attr(main, "data-template-code"); v != "MEM_BJOIN" {
		t.Fatalf("unexpected code attr %q", v)
	}
	if p.FirstElement("section", "data-template-code") != nil {
		t.Fatal("section should not match")
	}
}

func TestElementsWithAttr_DocumentOrder(t *testing.T) {
	p := mustParse(t, hostPage, "/")

	var got []string
	for _, el := range p.ElementsWithAttr("data-include") {
		v, _ := page.Attr(el, "data-include")
		got = append(got, v)
	}
	want := []string{"./components/header.html", "./components/footer.html"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("includes mismatch (-want +got):\n%s", diff)
	}
}

func TestSetInnerHTML_ReplacesChildren(t *testing.T) {
	p := mustParse(t, hostPage, "/")
	target := p.ElementByID("dynamicBody")

	if err := page.SetInnerHTML(target, `<p>one</p>`); err != nil {
		t.Fatalf("set inner: %v", err)
	}
	if err := page.SetInnerHTML(target, `<p class="x">two</p><span>#{k}</span>`); err != nil {
		t.Fatalf("set inner: %v", err)
	}
	if got := page.InnerHTML(target); got != `<p class="x">two</p><span>#{k}</span>` {
		t.Fatalf("unexpected inner markup %q", got)
	}
	if !strings.Contains(p.String(), `<div id="dynamicBody"><p class="x">two</p>`) {
		t.Fatalf("document not updated:\n%s", p.String())
	}
}

func TestSetInnerHTML_RejectsNonElement(t *testing.T) {
	if err := page.SetInnerHTML(&html.Node{Type: html.TextNode}, "x"); err == nil {
		t.Fatal("expected error for text node target")
	}
}

func TestFirstWithClass_ExcludesRoot(t *testing.T) {
	p := mustParse(t, `<div id="root" class="footer"><span class="a footer b">x</span></div>`, "/")
	root := p.ElementByID("root")

	got := page.FirstWithClass(root, "footer")
	if got == nil || got.Data != "span" {
		t.Fatalf("expected span descendant, got %v", got)
	}
	if page.FirstWithClass(root, "foot") != nil {
		t.Fatal("partial class names must not match")
	}
}

func TestSetStyle(t *testing.T) {
	p := mustParse(t, `<div id="f" style="color: red; WIDTH: 10px">x</div><div id="g">y</div>`, "/")
	f := p.ElementByID("f")

	page.SetStyle(f, "width", "100%")
	page.SetStyle(f, "box-sizing", "border-box")

	checks := map[string]string{"color": "red", "width": "100%", "box-sizing": "border-box"}
	for prop, want := range checks {
		if got, ok := page.Style(f, prop); !ok || got != want {
			t.Fatalf("style %s: want %q, got %q (%v)", prop, want, got, ok)
		}
	}

	g := p.ElementByID("g")
	page.SetStyle(g, "width", "100%")
	if v, _ := page.Attr(g, "style"); v != "width: 100%;" {
		t.Fatalf("unexpected style attribute %q", v)
	}
}

func TestSetStyle_KeepsUnterminatedDeclarations(t *testing.T) {
	cases := []struct {
		style string
		want  string
	}{
		{style: "color:red", want: "color: red; width: 100%;"},
		{style: "margin:0 auto", want: "margin: 0 auto; width: 100%;"},
		{style: "background:url(a.png)", want: "background: url(a.png); width: 100%;"},
		{style: "color: red; padding:4px", want: "color: red; padding: 4px; width: 100%;"},
		{style: "color:red;", want: "color: red; width: 100%;"},
	}
	for _, tc := range cases {
		t.Run(tc.style, func(t *testing.T) {
			p := mustParse(t, `<div id="f" style="`+tc.style+`">x</div>`, "/")
			f := p.ElementByID("f")

			page.SetStyle(f, "width", "100%")

			if got, _ := page.Attr(f, "style"); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestStyle_LastDeclarationWithoutSemicolon(t *testing.T) {
	p := mustParse(t, `<div id="f" style="color: red; padding:4px">x</div>`, "/")
	if got, ok := page.Style(p.ElementByID("f"), "padding"); !ok || got != "4px" {
		t.Fatalf("want 4px, got %q (%v)", got, ok)
	}
}

func TestText(t *testing.T) {
	p := mustParse(t, hostPage, "/")

	if got := page.Text(p.ElementByID("pageDesc")); got != "Welcome #{name} & friends" {
		t.Fatalf("unexpected description text %q", got)
	}
	if got := page.Text(p.ElementByID("pageTitle")); got != "Hi #{name}" {
		t.Fatalf("unexpected title text %q", got)
	}
}
