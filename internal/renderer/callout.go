package renderer

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/types"
)

// CalloutProps are the inputs of a callout. The zero Variant is Info.
type CalloutProps struct {
	Variant types.Variant
	Title   string
	// Class is appended to the container's class list.
	Class string
}

// Callout renders a tinted, icon-prefixed block around body. An unknown
// variant is an error; nothing is written in that case.
func (r *Renderer) Callout(props CalloutProps, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		style, err := r.theme.Variant(props.Variant)
		if err != nil {
			return errors.NewRenderError(errors.ErrCodeRenderFailed, "resolving callout variant", err)
		}

		class := "callout callout-" + props.Variant.String()
		if extra := strings.TrimSpace(props.Class); extra != "" {
			class += " " + extra
		}

		o := &out{w: w}
		o.raw("<aside")
		o.attr("class", class)
		o.attr("role", "note")
		o.attr("aria-label", style.Label)
		o.attr("style", "border-left-color:"+style.BorderAccent+";background-color:"+style.Background)
		o.raw(`><div class="callout-header"><span class="callout-icon"`)
		o.attr("data-icon", style.Icon)
		o.attr("style", "color:"+style.IconColor)
		o.raw(` aria-hidden="true">`)
		o.text(style.Glyph)
		o.raw("</span>")
		if props.Title != "" {
			o.raw(`<strong class="callout-title">`)
			o.text(props.Title)
			o.raw("</strong>")
		}
		o.raw(`</div><div class="callout-body">`)
		for _, c := range body {
			o.component(ctx, c)
		}
		o.raw("</div></aside>")
		return o.err
	})
}

func (r *Renderer) calloutOf(v types.Variant, title string, body []templ.Component) templ.Component {
	return r.Callout(CalloutProps{Variant: v, Title: title}, body...)
}

// Info renders an info callout.
func (r *Renderer) Info(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantInfo, title, body)
}

// Warning renders a warning callout.
func (r *Renderer) Warning(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantWarning, title, body)
}

// Tip renders a tip callout.
func (r *Renderer) Tip(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantTip, title, body)
}

// Note renders a note callout.
func (r *Renderer) Note(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantNote, title, body)
}

// Prerequisite renders a prerequisite callout.
func (r *Renderer) Prerequisite(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantPrerequisite, title, body)
}

// Success renders a success callout.
func (r *Renderer) Success(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantSuccess, title, body)
}

// Critical renders a critical callout.
func (r *Renderer) Critical(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantCritical, title, body)
}

// Compliance renders a compliance callout.
func (r *Renderer) Compliance(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantCompliance, title, body)
}

// Industry renders an industry callout.
func (r *Renderer) Industry(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantIndustry, title, body)
}

// Integration renders an integration callout.
func (r *Renderer) Integration(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantIntegration, title, body)
}

// Security renders a security callout.
func (r *Renderer) Security(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantSecurity, title, body)
}

// Future renders a callout for planned functionality.
func (r *Renderer) Future(title string, body ...templ.Component) templ.Component {
	return r.calloutOf(types.VariantFuture, title, body)
}
