package renderer

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/conneroisu/manualkit/internal/types"
)

// StepByStep renders a numbered guide. The displayed number is the step's
// 1-based position in steps.
func (r *Renderer) StepByStep(title string, steps []types.WorkflowStep) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := &out{w: w}
		o.raw(`<section class="step-by-step">`)
		o.heading(3, "step-by-step-title", title)
		o.raw(`<ol class="steps">`)
		for i, step := range steps {
			n := strconv.Itoa(i + 1)
			o.raw(`<li class="step"`)
			o.attr("data-step", n)
			o.raw(`><span class="step-number" aria-hidden="true">`)
			o.raw(n)
			o.raw(`</span><div class="step-content"><h4 class="step-title">`)
			o.text(step.Title)
			o.raw("</h4>")
			if step.Description != "" {
				o.raw(`<p class="step-description">`)
				o.text(step.Description)
				o.raw("</p>")
			}
			if len(step.Substeps) > 0 {
				o.raw(`<ul class="substeps">`)
				for _, sub := range step.Substeps {
					o.raw("<li>")
					o.text(sub)
					o.raw("</li>")
				}
				o.raw("</ul>")
			}
			if step.ExpectedResult != "" {
				o.raw(`<p class="step-expected"><strong>Expected result:</strong> `)
				o.text(step.ExpectedResult)
				o.raw("</p>")
			}
			o.raw("</div></li>")
		}
		o.raw("</ol></section>")
		return o.err
	})
}

// List renders a bullet, numbered or checklist list.
func (r *Renderer) List(list types.List) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tag, class := "ul", "list"
		switch {
		case list.Checklist:
			class = "list checklist"
		case list.Ordered:
			tag = "ol"
		}
		o := &out{w: w}
		o.heading(3, "list-title", list.Title)
		o.raw("<" + tag)
		o.attr("class", class)
		o.raw(">")
		for _, item := range list.Items {
			if list.Checklist {
				o.raw(`<li><span class="check" aria-hidden="true">☐</span> `)
			} else {
				o.raw("<li>")
			}
			o.text(item)
			o.raw("</li>")
		}
		o.raw("</" + tag + ">")
		return o.err
	})
}
