//go:build property

package renderer

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/net/html"

	"github.com/conneroisu/manualkit/internal/types"
)

// TestRendererProperties checks ordering, numbering and idempotency over
// generated content.
func TestRendererProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	r := New(Options{})
	ctx := context.Background()

	properties.Property("field rows follow input order", prop.ForAll(
		func(names []string) bool {
			fields := make([]types.FieldDefinition, len(names))
			for i, n := range names {
				fields[i] = types.FieldDefinition{Name: n, Type: types.FieldText}
			}
			out, err := Render(ctx, r.FieldReferenceTable("", fields))
			if err != nil {
				return false
			}
			doc, err := html.Parse(strings.NewReader(out))
			if err != nil {
				return false
			}
			got := texts(byTag(doc, "code"))
			if len(got) != len(names) {
				return false
			}
			for i := range names {
				if got[i] != strings.TrimSpace(names[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("step numbers are 1..n", prop.ForAll(
		func(titles []string) bool {
			steps := make([]types.WorkflowStep, len(titles))
			for i, title := range titles {
				steps[i] = types.WorkflowStep{Title: title}
			}
			out, err := Render(ctx, r.StepByStep("", steps))
			if err != nil {
				return false
			}
			doc, err := html.Parse(strings.NewReader(out))
			if err != nil {
				return false
			}
			numbers := texts(byClass(doc, "step-number"))
			for i, n := range numbers {
				if n != strconv.Itoa(i+1) {
					return false
				}
			}
			return len(numbers) == len(titles)
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("callouts render identically twice", prop.ForAll(
		func(variant int, title, body string) bool {
			c := r.Callout(CalloutProps{Variant: types.Variant(variant), Title: title}, r.Markdown(body))
			first, err1 := Render(ctx, c)
			second, err2 := Render(ctx, c)
			return err1 == nil && err2 == nil && first == second
		},
		gen.IntRange(0, int(types.VariantCount)-1),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("labels never escape into markup", prop.ForAll(
		func(label string) bool {
			out, err := Render(ctx, r.NavigationPath(types.NavigationPath{"Home", label}))
			return err == nil && !strings.Contains(out, label)
		},
		gen.AlphaString().Map(func(s string) string { return "<" + s + ">" }),
	))

	properties.TestingRun(t)
}
