package renderer

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/conneroisu/manualkit/internal/types"
)

// BreadcrumbSeparator is placed between breadcrumb labels.
const BreadcrumbSeparator = "›"

// NavigationPath renders a breadcrumb trail. An empty trail renders nothing.
func (r *Renderer) NavigationPath(labels types.NavigationPath) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(labels) == 0 {
			return nil
		}
		o := &out{w: w}
		o.raw(`<nav class="breadcrumb" aria-label="Breadcrumb"><ol>`)
		for i, label := range labels {
			if i == len(labels)-1 {
				o.raw(`<li aria-current="page">`)
			} else {
				o.raw("<li>")
			}
			if i > 0 {
				o.raw(`<span class="breadcrumb-separator" aria-hidden="true">` + BreadcrumbSeparator + "</span>")
			}
			o.text(label)
			o.raw("</li>")
		}
		o.raw("</ol></nav>")
		return o.err
	})
}

// NavigationFor renders the breadcrumb of a section: its inline navigation,
// else its entry in the navigation registry. An id with neither renders
// nothing; the linter reports those.
func (r *Renderer) NavigationFor(sectionID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if r.sections == nil {
			return nil
		}
		path := r.sections.Breadcrumb(sectionID)
		if len(path) == 0 {
			r.logger.Debug(ctx, "no breadcrumb for section", "section", sectionID)
		}
		return r.NavigationPath(path).Render(ctx, w)
	})
}

// Navigation renders a navigation block. Explicit labels win over the
// section lookup.
func (r *Renderer) Navigation(nav types.Navigation) templ.Component {
	if len(nav.Labels) > 0 {
		return r.NavigationPath(nav.Labels)
	}
	return r.NavigationFor(nav.SectionID)
}

// DefaultRelatedTitle heads a related-topics list without its own title.
const DefaultRelatedTitle = "Related topics"

// RelatedTopics renders cross-references in the given order. When the
// renderer has a section registry, a topic naming an unknown section is
// rendered as plain text marked "unresolved" instead of a dead link. An empty
// list renders nothing.
func (r *Renderer) RelatedTopics(title string, topics []types.RelatedTopic) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(topics) == 0 {
			return nil
		}
		if title == "" {
			title = DefaultRelatedTitle
		}
		o := &out{w: w}
		o.raw(`<section class="related-topics">`)
		o.heading(3, "related-topics-title", title)
		o.raw("<ul>")
		for _, topic := range topics {
			label := topic.Title
			if label == "" {
				label = topic.SectionID
			}
			o.raw("<li>")
			if r.sections != nil && !r.sections.Has(topic.SectionID) {
				r.logger.Warn(ctx, nil, "related topic points to unknown section",
					"section", topic.SectionID, "title", topic.Title)
				o.raw(`<span class="related-topic unresolved"`)
				o.attr("data-section", topic.SectionID)
				o.raw(">")
				o.text(label)
				o.raw("</span>")
			} else {
				o.raw(`<a class="related-topic"`)
				o.attr("href", string(r.Href(topic.SectionID)))
				o.attr("data-section", topic.SectionID)
				o.raw(">")
				o.text(label)
				o.raw("</a>")
			}
			o.raw("</li>")
		}
		o.raw("</ul></section>")
		return o.err
	})
}
