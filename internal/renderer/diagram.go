package renderer

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/conneroisu/manualkit/internal/diagram"
	"github.com/conneroisu/manualkit/internal/errors"
)

// WorkflowDiagram renders a titled diagram panel. The source is parsed and
// validated first; a malformed source is returned as a render error wrapping
// a *diagram.SyntaxError or *diagram.ValidationError and nothing is written.
// Valid sources are emitted for Mermaid to lay out, followed by a text
// outline of the edges for readers without scripts.
func (r *Renderer) WorkflowDiagram(title, description, source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		graph, err := diagram.Parse(source)
		if err != nil {
			return errors.NewRenderError(errors.ErrCodeRenderFailed, "invalid workflow diagram", err)
		}

		o := &out{w: w}
		o.raw(`<figure class="workflow-diagram">`)
		if title != "" || description != "" {
			o.raw("<figcaption>")
			if title != "" {
				o.raw(`<strong class="diagram-title">`)
				o.text(title)
				o.raw("</strong>")
			}
			if description != "" {
				o.raw(`<span class="diagram-description">`)
				o.text(description)
				o.raw("</span>")
			}
			o.raw("</figcaption>")
		}
		o.raw(`<pre class="mermaid">`)
		o.text(source)
		o.raw("</pre>")
		if lines := graph.Outline(); len(lines) > 0 {
			o.raw(`<details class="diagram-outline"><summary>Text outline</summary><ul>`)
			for _, line := range lines {
				o.raw("<li>")
				o.text(line)
				o.raw("</li>")
			}
			o.raw("</ul></details>")
		}
		o.raw("</figure>")
		return o.err
	})
}
