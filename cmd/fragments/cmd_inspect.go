package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fragments/pkg/page"
	"github.com/goliatone/go-fragments/pkg/placeholder"
)

var (
	inspectURL  string
	inspectRoot string
)

// inspectCmd prints what a page would be composed from
var inspectCmd = &cobra.Command{
	Use:   "inspect PAGE",
	Short: "Show the template code, query data and includes of a page",
	Long: `Prints the diagnostics of PAGE without fetching anything: the detected
template code and body fragment path, the decoded query data, the header text
after substitution, the declared includes and the placeholders that remain.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	root := siteRoot(inspectRoot)
	location := pageLocation(args[0], root, inspectURL)

	c, err := newComposer(root)
	if err != nil {
		return err
	}
	p, err := readPage(args[0], location)
	if err != nil {
		return err
	}

	code := c.DetectCode(p)
	data := c.BuildData(p)
	c.ReplaceHeaderPlaceholders(p)

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "location:    %s\n", location)
	fmt.Fprintf(w, "code:        %s\n", code)
	fmt.Fprintf(w, "body:        %s\n", c.BodyPath(code))
	fmt.Fprintf(w, "title:       %s\n", page.Text(p.ElementByID(cfg.Page.TitleID)))
	fmt.Fprintf(w, "description: %s\n", page.Text(p.ElementByID(cfg.Page.DescriptionID)))

	fmt.Fprintln(w, "data:")
	for _, key := range data.Keys() {
		v, _ := data.Get(key)
		fmt.Fprintf(w, "  %s = %s\n", key, v)
	}

	fmt.Fprintln(w, "includes:")
	for _, el := range p.ElementsWithAttr(cfg.Page.IncludeAttribute) {
		ref, _ := page.Attr(el, cfg.Page.IncludeAttribute)
		fmt.Fprintf(w, "  %s <%s>\n", ref, el.Data)
	}

	printList(w, "unresolved:", placeholder.Unresolved(p.Document))
	return nil
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintln(w, title)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}
