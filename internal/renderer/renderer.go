// Package renderer turns manual content into HTML.
//
// Every building block is a templ.Component: callouts, field reference
// tables, business rules, step-by-step guides, workflow diagrams, navigation
// breadcrumbs and related topics. Components are pure functions of their
// inputs and of the registries injected into the Renderer, so rendering the
// same content twice produces byte-identical output.
//
// Blocks that fail to render never abort a page. Block and Blocks render each
// block into a buffer first and substitute a marked content-error placeholder
// when a block returns an error, logging the failure at warn level.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/conneroisu/manualkit/internal/logging"
	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/theme"
)

const (
	// DefaultLinkPattern maps a section id to its page.
	DefaultLinkPattern = "%s.html"
	DefaultManualTitle = "Manual"
)

// Options configures a Renderer.
type Options struct {
	// Theme resolves callout variants and enforcement badges. Defaults to
	// theme.New().
	Theme *theme.Registry
	// Sections resolves navigation breadcrumbs and related topics. Optional;
	// without it NavigationFor renders nothing and related topics are not
	// checked.
	Sections *registry.Registry
	// LinkPattern is a fmt pattern with one %s for the section id.
	LinkPattern string
	// MermaidURL is the ES module loaded on pages that contain diagrams.
	// Empty disables the script tag.
	MermaidURL string
	// Stylesheet is linked from every page. Empty omits the link.
	Stylesheet string
	// ManualTitle heads the index page and suffixes page titles.
	ManualTitle string
	Logger      logging.Logger
}

// Renderer builds HTML components from manual content.
type Renderer struct {
	theme       *theme.Registry
	sections    *registry.Registry
	linkPattern string
	mermaidURL  string
	stylesheet  string
	manualTitle string
	logger      logging.Logger
	md          goldmark.Markdown
}

// New creates a renderer.
func New(opts Options) *Renderer {
	if opts.Theme == nil {
		opts.Theme = theme.New()
	}
	if opts.LinkPattern == "" {
		opts.LinkPattern = DefaultLinkPattern
	}
	if opts.ManualTitle == "" {
		opts.ManualTitle = DefaultManualTitle
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Renderer{
		theme:       opts.Theme,
		sections:    opts.Sections,
		linkPattern: opts.LinkPattern,
		mermaidURL:  opts.MermaidURL,
		stylesheet:  opts.Stylesheet,
		manualTitle: opts.ManualTitle,
		logger:      opts.Logger.WithComponent("renderer"),
		md:          goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Href returns the link to a section page.
func (r *Renderer) Href(sectionID string) templ.SafeURL {
	return templ.URL(fmt.Sprintf(r.linkPattern, url.PathEscape(sectionID)))
}

// Markdown renders markdown source. Raw HTML in the source is not passed
// through.
func (r *Renderer) Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(src), &buf); err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render renders c to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// out is a sticky-error writer: after the first failed write every call is a
// no-op and err holds the failure.
type out struct {
	w   io.Writer
	err error
}

func (o *out) raw(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// text writes s HTML-escaped.
func (o *out) text(s string) {
	o.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (o *out) attr(name, value string) {
	o.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (o *out) printf(format string, args ...interface{}) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

func (o *out) component(ctx context.Context, c templ.Component) {
	if o.err != nil || c == nil {
		return
	}
	o.err = c.Render(ctx, o.w)
}

// heading writes <hN class="cls">title</hN> when title is not empty.
func (o *out) heading(level int, class, title string) {
	if title == "" {
		return
	}
	o.printf("<h%d", level)
	o.attr("class", class)
	o.raw(">")
	o.text(title)
	o.printf("</h%d>", level)
}
