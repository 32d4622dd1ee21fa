package composer

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/goliatone/go-fragments/internal/fragment/loader"
	"github.com/goliatone/go-fragments/internal/notice"
	"github.com/goliatone/go-fragments/pkg/config"
	"github.com/goliatone/go-fragments/pkg/fragment"
	"github.com/goliatone/go-fragments/pkg/page"
	"github.com/goliatone/go-fragments/pkg/placeholder"
)

// Diagnostics is the inspection surface of a Composer: the two pure lookups
// that decide what a page will be composed from.
type Diagnostics interface {
	DetectCode(p *page.Page) string
	BuildData(p *page.Page) *placeholder.Data
}

// Option customises the composer configuration.
type Option func(*Composer)

// WithConfig replaces the built-in configuration. The composer copies what it
// needs, so later edits to cfg have no effect.
func WithConfig(cfg *config.Config) Option {
	return func(c *Composer) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithLoader injects a custom fragment loader. It takes precedence over
// WithLoaderOptions.
func WithLoader(l fragment.Loader) Option {
	return func(c *Composer) {
		c.loader = l
	}
}

// WithLoaderOptions configures the built-in loader. Options apply after the
// fetch settings from the configuration.
func WithLoaderOptions(options ...fragment.LoaderOption) Option {
	return func(c *Composer) {
		c.loaderOptions = append(c.loaderOptions, options...)
	}
}

// WithLogger sets the logger used to report fragment failures.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Composer loads fragments into a page and substitutes placeholders. It holds
// only configuration fixed at construction and is safe for concurrent use on
// distinct pages.
type Composer struct {
	cfg           *config.Config
	loader        fragment.Loader
	loaderOptions []fragment.LoaderOption
	logger        *zap.Logger
	notices       *notice.Renderer
	replacer      *placeholder.Replacer

	pageCfg       config.PageConfig
	bodyCfg       config.BodyConfig
	footerClass   string
	defaultCode   string
	codeFiles     map[string]string
	filenameCodes map[string]string
}

var _ Diagnostics = (*Composer)(nil)

// New constructs a Composer. It fails when the notice templates in the
// configuration do not compile.
func New(options ...Option) (*Composer, error) {
	c := &Composer{
		cfg:    config.Default(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("composer: %w", err)
	}
	notices, err := notice.New(c.cfg.Notices)
	if err != nil {
		return nil, fmt.Errorf("composer: %w", err)
	}
	c.notices = notices

	c.pageCfg = c.cfg.Page
	c.pageCfg.PlaceholderAttributes = append([]string(nil), c.cfg.Page.PlaceholderAttributes...)
	c.bodyCfg = c.cfg.Body
	c.footerClass = c.cfg.Includes.FooterClass
	c.defaultCode = c.cfg.Codes.Default
	c.codeFiles = copyMap(c.cfg.Codes.Files)
	c.filenameCodes = copyMap(c.cfg.Codes.Filenames)
	c.replacer = placeholder.NewReplacer(c.pageCfg.PlaceholderAttributes...)

	if c.loader == nil {
		opts := []fragment.LoaderOption{
			fragment.WithUserAgent(c.cfg.Fetch.UserAgent),
		}
		if c.cfg.Fetch.AllowHTTP {
			opts = append(opts, fragment.WithHTTPFallback(c.cfg.Fetch.Timeout))
		}
		opts = append(opts, c.loaderOptions...)
		c.loader = loader.New(fragment.NewLoaderOptions(opts...))
	}
	return c, nil
}

// DetectCode resolves the template code of p. The first non-empty answer wins:
// the content root's code attribute, the code query parameter, the filename
// table entry for the last path segment (extension stripped), the uppercased
// segment itself, and finally the configured default code.
func (c *Composer) DetectCode(p *page.Page) string {
	if root := p.FirstElement(c.pageCfg.ContentRoot, c.pageCfg.CodeAttribute); root != nil {
		if code, _ := page.Attr(root, c.pageCfg.CodeAttribute); code != "" {
			return code
		}
	}

	if c.pageCfg.CodeParam != "" {
		if code, ok := placeholder.Lookup(p.RawQuery(), c.pageCfg.CodeParam); ok && code != "" {
			return code
		}
	}

	name := lastSegment(p.Path())
	if code, ok := c.filenameCodes[name]; ok && code != "" {
		return code
	}
	if name != "" {
		return strings.ToUpper(name)
	}
	return c.defaultCode
}

// BuildData parses the page query string into placeholder data. Every caller
// gets a fresh value.
func (c *Composer) BuildData(p *page.Page) *placeholder.Data {
	return placeholder.BuildData(p.RawQuery())
}

// ReplacePlaceholdersInNode substitutes data into node and its subtree using
// the configured attribute list.
func (c *Composer) ReplacePlaceholdersInNode(node *html.Node, data *placeholder.Data) {
	c.replacer.ReplaceInNode(node, data)
}

// BodyPath returns the relative path of the body fragment for code.
func (c *Composer) BodyPath(code string) string {
	file, ok := c.codeFiles[code]
	if !ok {
		file = strings.ToLower(code)
	}
	return strings.TrimSuffix(c.bodyCfg.Directory, "/") + "/" + file + c.bodyCfg.Extension
}

// ReplaceHeaderPlaceholders substitutes query data into the title and
// description elements when the page has them.
func (c *Composer) ReplaceHeaderPlaceholders(p *page.Page) {
	data := c.BuildData(p)
	for _, id := range []string{c.pageCfg.TitleID, c.pageCfg.DescriptionID} {
		if el := p.ElementByID(id); el != nil {
			c.ReplacePlaceholdersInNode(el, data)
		}
	}
}

// LoadBodyFragment loads the body fragment for code into the body target. It
// returns nil when the page has no body target. A failed load leaves a notice
// in the target; the error is logged and recorded in the Result only.
func (c *Composer) LoadBodyFragment(ctx context.Context, p *page.Page, code string) *Result {
	target := p.ElementByID(c.bodyCfg.TargetID)
	if target == nil {
		return nil
	}

	bodyPath := c.BodyPath(code)
	res := &Result{Target: TargetBody, Path: bodyPath}

	frag, location, err := c.fetch(ctx, p, bodyPath)
	res.Location = location
	if err == nil {
		err = page.SetInnerHTML(target, frag.Markup())
	}
	if err != nil {
		res.Err = err
		message := err.Error()
		if fragment.IsUnavailable(err) {
			message = "Fragment not found: " + bodyPath
		}
		c.logger.Error("body fragment load failed",
			zap.String("code", code),
			zap.String("path", bodyPath),
			zap.String("location", location),
			zap.Error(err))
		c.renderNotice(target, notice.BodyFailed, notice.Notice{Path: bodyPath, Message: message})
		return res
	}

	c.ReplacePlaceholdersInNode(target, c.BuildData(p))
	c.logger.Debug("body fragment loaded", zap.String("code", code), zap.String("path", bodyPath))
	return res
}

// LoadIncludes loads every include element, one at a time in document order.
// The element list is captured before the first fetch, so includes nested in
// loaded fragments are not expanded. A failure only affects its own element.
func (c *Composer) LoadIncludes(ctx context.Context, p *page.Page) []Result {
	attr := c.pageCfg.IncludeAttribute
	elements := p.ElementsWithAttr(attr)
	data := c.BuildData(p)

	results := make([]Result, 0, len(elements))
	for _, el := range elements {
		file, _ := page.Attr(el, attr)
		res := Result{Target: TargetInclude, Path: file}

		frag, location, err := c.fetch(ctx, p, file)
		res.Location = location
		if err == nil {
			err = page.SetInnerHTML(el, frag.Markup())
		}

		switch {
		case fragment.IsUnavailable(err):
			res.Err = err
			c.logger.Warn("include not found", zap.String("path", file), zap.String("location", location))
			c.renderNotice(el, notice.IncludeMissing, notice.Notice{Path: file, Message: err.Error()})
		case err != nil:
			res.Err = err
			c.logger.Error("include load error", zap.String("path", file), zap.String("location", location), zap.Error(err))
			c.renderNotice(el, notice.IncludeFailed, notice.Notice{Path: file, Message: err.Error()})
		default:
			c.ReplacePlaceholdersInNode(el, data)
			c.fixFooter(el)
			c.logger.Debug("include loaded", zap.String("path", file))
		}
		results = append(results, res)
	}
	return results
}

// IncludeHTML is the plain include pass: raw markup goes into every include
// element with no substitution and no post-processing. Failures leave a short
// literal message in the element.
func (c *Composer) IncludeHTML(ctx context.Context, p *page.Page) []Result {
	attr := c.pageCfg.IncludeAttribute
	elements := p.ElementsWithAttr(attr)

	results := make([]Result, 0, len(elements))
	for _, el := range elements {
		file, _ := page.Attr(el, attr)
		res := Result{Target: TargetInclude, Path: file}

		frag, location, err := c.fetch(ctx, p, file)
		res.Location = location
		if err == nil {
			err = page.SetInnerHTML(el, frag.Markup())
		}

		switch {
		case fragment.IsUnavailable(err):
			res.Err = err
			c.renderNotice(el, notice.ComponentMissing, notice.Notice{Path: file, Message: err.Error()})
		case err != nil:
			res.Err = err
			c.logger.Error("error loading component", zap.String("path", file), zap.Error(err))
			c.renderNotice(el, notice.ComponentFailed, notice.Notice{Path: file, Message: err.Error()})
		}
		results = append(results, res)
	}
	return results
}

// Compose runs the full sequence on p: detect the code, substitute the header
// elements, load all includes, then load the body fragment. Includes finish
// before the body starts. Failures are reported in the Report, never returned.
func (c *Composer) Compose(ctx context.Context, p *page.Page) Report {
	if ctx == nil {
		ctx = context.Background()
	}
	code := c.DetectCode(p)
	c.ReplaceHeaderPlaceholders(p)
	includes := c.LoadIncludes(ctx, p)
	body := c.LoadBodyFragment(ctx, p, code)

	report := Report{
		Code:     code,
		Data:     c.BuildData(p),
		Includes: includes,
		Body:     body,
	}
	c.logger.Debug("page composed",
		zap.String("code", code),
		zap.Int("includes", len(includes)),
		zap.Int("failed", len(report.Failed())))
	return report
}

func (c *Composer) fetch(ctx context.Context, p *page.Page, ref string) (fragment.Fragment, string, error) {
	loc, err := p.Resolve(ref)
	if err != nil {
		return fragment.Fragment{}, "", err
	}
	if err := ctx.Err(); err != nil {
		return fragment.Fragment{}, loc.String(), err
	}
	frag, err := c.loader.Load(ctx, fragment.SourceFromLocation(loc))
	return frag, loc.String(), err
}

func (c *Composer) renderNotice(el *html.Node, kind notice.Kind, n notice.Notice) {
	markup, err := c.notices.Render(kind, n)
	if err != nil {
		c.logger.Warn("notice render failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	if err := page.SetInnerHTML(el, markup); err != nil {
		c.logger.Warn("notice insert failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

func (c *Composer) fixFooter(el *html.Node) {
	if c.footerClass == "" {
		return
	}
	if footer := page.FirstWithClass(el, c.footerClass); footer != nil {
		page.SetStyle(footer, "width", "100%")
		page.SetStyle(footer, "box-sizing", "border-box")
	}
}

func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return strings.TrimSuffix(p, path.Ext(p))
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
