package renderer

import (
	"context"
	_ "embed"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/conneroisu/manualkit/internal/types"
)

// DefaultStylesheet is the stylesheet shipped with the renderer.
//
//go:embed manual.css
var DefaultStylesheet []byte

// Section renders a section as an <article>: breadcrumb, heading, metadata,
// summary, blocks and the section-level related topics.
func (r *Renderer) Section(s *types.Section) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := &out{w: w}
		o.raw(`<article class="section"`)
		o.attr("id", s.ID)
		o.raw("><header>")
		if len(s.Navigation) > 0 {
			o.component(ctx, r.NavigationPath(s.Navigation))
		} else {
			o.component(ctx, r.NavigationFor(s.ID))
		}
		o.heading(1, "section-title", s.Title)
		if s.Audience != "" || s.ReadingTime > 0 {
			o.raw(`<p class="section-meta">`)
			if s.Audience != "" {
				o.raw(`<span class="audience">Audience: `)
				o.text(s.Audience)
				o.raw("</span>")
			}
			if s.ReadingTime > 0 {
				o.raw(`<span class="reading-time">`)
				o.raw(strconv.Itoa(s.ReadingTime))
				o.raw(" min read</span>")
			}
			o.raw("</p>")
		}
		if s.Summary != "" {
			o.raw(`<p class="section-summary">`)
			o.text(s.Summary)
			o.raw("</p>")
		}
		o.raw(`</header><div class="section-body">`)
		o.component(ctx, r.Blocks(s.Blocks))
		o.raw("</div>")
		o.component(ctx, r.RelatedTopics("", s.Related))
		o.raw("</article>")
		return o.err
	})
}

// Page renders a complete HTML document for a section.
func (r *Renderer) Page(s *types.Section) templ.Component {
	return r.document(s.Title+" | "+r.manualTitle, hasDiagram(s.Blocks), r.Section(s))
}

// Index renders the manual's table of contents in the given order.
func (r *Renderer) Index(sections []*types.Section) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := &out{w: w}
		o.raw(`<main class="manual-index">`)
		o.heading(1, "manual-title", r.manualTitle)
		o.raw(`<ol class="section-index">`)
		for _, s := range sections {
			o.raw("<li><a")
			o.attr("href", string(r.Href(s.ID)))
			o.raw(">")
			o.text(s.Title)
			o.raw(`</a> <span class="section-id">`)
			o.text(s.ID)
			o.raw("</span>")
			if s.Summary != "" {
				o.raw(`<p class="section-summary">`)
				o.text(s.Summary)
				o.raw("</p>")
			}
			o.raw("</li>")
		}
		o.raw("</ol></main>")
		return o.err
	})
	return r.document(r.manualTitle, false, body)
}

func (r *Renderer) document(title string, diagrams bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := &out{w: w}
		o.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		o.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		o.raw("<title>")
		o.text(title)
		o.raw("</title>")
		if r.stylesheet != "" {
			o.raw(`<link rel="stylesheet"`)
			o.attr("href", r.stylesheet)
			o.raw(">")
		}
		if diagrams && r.mermaidURL != "" {
			o.raw(`<script type="module">import mermaid from `)
			o.raw(strconv.Quote(string(templ.URL(r.mermaidURL))))
			o.raw(`; mermaid.initialize({ startOnLoad: true });</script>`)
		}
		o.raw("</head><body>")
		o.component(ctx, body)
		o.raw("</body></html>\n")
		return o.err
	})
}

func hasDiagram(blocks []types.Block) bool {
	found := false
	types.Walk(blocks, func(_ []int, b types.Block) {
		if _, ok := b.(types.Diagram); ok {
			found = true
		}
	})
	return found
}
