package main

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-fragments/internal/prompt"
	"github.com/goliatone/go-fragments/pkg/composer"
	"github.com/goliatone/go-fragments/pkg/fragment"
	"github.com/goliatone/go-fragments/pkg/page"
	"github.com/goliatone/go-fragments/pkg/placeholder"
)

var (
	composeURL         string
	composeRoot        string
	composeOut         string
	composeSimple      bool
	composeInteractive bool

	// promptDriver is swapped in tests; nil means the survey terminal driver.
	promptDriver prompt.Driver
)

// composeCmd composes a single host page
var composeCmd = &cobra.Command{
	Use:   "compose PAGE",
	Short: "Compose a host page and print the result",
	Long: `Loads PAGE, fills its include elements and body container from the site
root, substitutes placeholders from the location query and prints the page.

Examples:
  fragments compose members/signIn_ko.html --url '?name=Alice'
  fragments compose index.html --root site --out dist/index.html
  fragments compose members/signIn_ko.html --interactive`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func runCompose(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	root := siteRoot(composeRoot)
	location := pageLocation(args[0], root, composeURL)

	c, err := newComposer(root)
	if err != nil {
		return err
	}

	p, err := readPage(args[0], location)
	if err != nil {
		return err
	}

	if composeSimple {
		results := c.IncludeHTML(ctx, p)
		logger.Info("includes inserted",
			zap.String("page", args[0]),
			zap.Int("includes", len(results)),
			zap.Int("failed", countFailed(results)))
		return writePage(cmd, p)
	}

	report := c.Compose(ctx, p)

	if composeInteractive {
		keys := placeholder.Unresolved(p.Document)
		values, err := prompt.AskValues(ctx, driver(), keys)
		if err != nil {
			return err
		}
		if len(values) > 0 {
			location = withValues(location, values)
			if p, err = readPage(args[0], location); err != nil {
				return err
			}
			report = c.Compose(ctx, p)
		}
	}

	logger.Info("page composed",
		zap.String("page", args[0]),
		zap.String("location", location),
		zap.String("code", report.Code),
		zap.Int("includes", len(report.Includes)),
		zap.Int("failed", len(report.Failed())))
	return writePage(cmd, p)
}

func newComposer(root string) (*composer.Composer, error) {
	return composer.New(
		composer.WithConfig(cfg),
		composer.WithLogger(logger),
		composer.WithLoaderOptions(fragment.WithFileSystem(os.DirFS(root))),
	)
}

func readPage(path, location string) (*page.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	return page.Parse(f, location)
}

func writePage(cmd *cobra.Command, p *page.Page) error {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return err
	}
	if composeOut == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if dir := filepath.Dir(composeOut); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := atomic.WriteFile(composeOut, &buf); err != nil {
		return fmt.Errorf("write %s: %w", composeOut, err)
	}
	logger.Debug("page written", zap.String("path", composeOut))
	return nil
}

// pageLocation returns the location a page is composed against. A full
// location is used as given; a bare query string is appended to the page
// path relative to root.
func pageLocation(pagePath, root, rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL != "" && !strings.HasPrefix(rawURL, "?") {
		return rawURL
	}

	rel := filepath.Base(pagePath)
	absRoot, errRoot := filepath.Abs(root)
	absPage, errPage := filepath.Abs(pagePath)
	if errRoot == nil && errPage == nil {
		if r, err := filepath.Rel(absRoot, absPage); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	return "/" + filepath.ToSlash(rel) + rawURL
}

func withValues(location string, values []prompt.Value) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	u.RawQuery = prompt.AppendQuery(u.RawQuery, values)
	return u.String()
}

func siteRoot(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil && cfg.Server.Root != "" {
		return cfg.Server.Root
	}
	return "."
}

func driver() prompt.Driver {
	if promptDriver != nil {
		return promptDriver
	}
	return prompt.NewSurveyDriver(os.Stderr)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func countFailed(results []composer.Result) int {
	n := 0
	for _, res := range results {
		if !res.OK() {
			n++
		}
	}
	return n
}
