package renderer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/theme"
	"github.com/conneroisu/manualkit/internal/types"
)

var fieldColumns = []string{"Field", "Required", "Type", "Description", "Default", "Validation"}

// FieldReferenceTable renders one row per field in the given order. An empty
// list renders the header row only.
func (r *Renderer) FieldReferenceTable(title string, fields []types.FieldDefinition) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := &out{w: w}
		o.raw(`<section class="field-reference">`)
		o.heading(3, "field-reference-title", title)
		o.raw(`<table class="field-table"><thead><tr>`)
		for _, col := range fieldColumns {
			o.raw(`<th scope="col">`)
			o.text(col)
			o.raw("</th>")
		}
		o.raw("</tr></thead><tbody>")
		for _, f := range fields {
			o.raw("<tr")
			o.attr("data-field", f.Name)
			o.raw("><td><code>")
			o.text(f.Name)
			o.raw("</code></td><td>")
			requiredBadge(o, f.Required)
			o.raw("</td><td>")
			o.text(string(f.Type))
			o.raw("</td><td>")
			o.text(f.Description)
			o.raw("</td><td>")
			o.text(f.DefaultValue)
			o.raw("</td><td>")
			o.text(f.Validation)
			o.raw("</td></tr>")
		}
		o.raw("</tbody></table></section>")
		return o.err
	})
}

func requiredBadge(o *out, required bool) {
	class := "badge badge-optional"
	if required {
		class = "badge badge-required"
	}
	o.raw("<span")
	o.attr("class", class)
	o.raw(">")
	o.text(theme.RequiredBadge(required))
	o.raw("</span>")
}

// BusinessRules renders each rule with its enforcement badge. Any rule with
// an enforcement level outside System, Policy and Advisory fails the whole
// list before anything is written.
func (r *Renderer) BusinessRules(title string, rules []types.BusinessRule) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		badges := make([]theme.Badge, len(rules))
		for i, rule := range rules {
			b, err := r.theme.Badge(rule.Enforcement)
			if err != nil {
				return errors.NewRenderError(errors.ErrCodeRenderFailed,
					fmt.Sprintf("resolving badge of rule %d", i+1), err)
			}
			badges[i] = b
		}

		o := &out{w: w}
		o.raw(`<section class="business-rules">`)
		o.heading(3, "business-rules-title", title)
		o.raw(`<ul class="rule-list">`)
		for i, rule := range rules {
			b := badges[i]
			o.raw("<li")
			o.attr("class", "rule rule-"+strings.ToLower(rule.Enforcement.String()))
			o.attr("data-weight", strconv.Itoa(b.Weight))
			o.raw("><span")
			o.attr("class", "badge "+b.Class)
			o.attr("style", "color:"+b.Foreground+";background-color:"+b.Background)
			o.raw(">")
			o.text(b.Label)
			o.raw(`</span><p class="rule-statement">`)
			o.text(rule.Rule)
			o.raw("</p>")
			if rule.Description != "" {
				o.raw(`<p class="rule-description">`)
				o.text(rule.Description)
				o.raw("</p>")
			}
			o.raw("</li>")
		}
		o.raw("</ul></section>")
		return o.err
	})
}
