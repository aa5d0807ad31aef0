package console

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/testutils"
	"github.com/conneroisu/manualkit/internal/types"
)

func newRenderer(t *testing.T, sections ...*types.Section) *Renderer {
	t.Helper()
	var reg *registry.Registry
	if len(sections) > 0 {
		reg = testutils.BuildRegistry(t, sections...)
	}
	r, err := New(Options{Sections: reg})
	require.NoError(t, err)
	return r
}

func TestCalloutPlainText(t *testing.T) {
	r := newRenderer(t)

	out, err := r.Callout(types.VariantWarning, "", "Check the dates.")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "⚠", strings.TrimSpace(strings.TrimPrefix(lines[0], "┃")), "no title without a title")
	assert.Contains(t, out, "Check the dates.")
	assert.Contains(t, out, "┃", "thick left border")
	assert.NotContains(t, out, "\x1b[", "no ANSI sequences without color")

	out, err = r.Callout(types.VariantCompliance, "GDPR", "")
	require.NoError(t, err)
	assert.Contains(t, out, "§ GDPR")

	out, err = r.Callout(types.VariantTip, "Heads up", "x")
	require.NoError(t, err)
	assert.Contains(t, out, "✦ Heads up")
}

func TestCalloutUnknownVariant(t *testing.T) {
	r := newRenderer(t)
	out, err := r.Callout(types.VariantCount, "x", "y")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestFieldReferenceTable(t *testing.T) {
	r := newRenderer(t)
	out := r.FieldReferenceTable("Cycle fields", []types.FieldDefinition{
		{Name: "name", Required: true, Type: types.FieldText, Description: "Cycle name"},
		{Name: "sla_hours", Type: types.FieldNumber, DefaultValue: "72", Validation: "1-720"},
	})

	lines := strings.Split(out, "\n")
	assert.Equal(t, "Cycle fields", lines[0])
	assert.Contains(t, out, "Validation")

	var nameRow, slaRow int
	for i, line := range lines {
		if strings.Contains(line, "sla_hours") {
			slaRow = i
			assert.Contains(t, line, "No")
			assert.Contains(t, line, "number")
			assert.Contains(t, line, "72")
			assert.Contains(t, line, "1-720")
		}
		if strings.Contains(line, "Cycle name") {
			nameRow = i
			assert.Contains(t, line, "Yes")
		}
	}
	require.NotZero(t, slaRow)
	assert.Less(t, nameRow, slaRow, "rows keep input order")
}

func TestBusinessRules(t *testing.T) {
	r := newRenderer(t)
	out, err := r.BusinessRules("", []types.BusinessRule{
		{Rule: "Weights total 100%", Enforcement: types.EnforcementSystem},
		{Rule: "Review quarterly", Enforcement: types.EnforcementAdvisory, Description: "Managers decide."},
	})
	require.NoError(t, err)
	assert.Equal(t, "[System] Weights total 100%\n[Advisory] Review quarterly\n    Managers decide.", out)

	_, err = r.BusinessRules("", []types.BusinessRule{{Rule: "x", Enforcement: types.EnforcementCount}})
	assert.Error(t, err)
}

func TestStepByStepNumbersByPosition(t *testing.T) {
	r := newRenderer(t)
	out := r.StepByStep("Launch", []types.WorkflowStep{
		{Title: "Open settings", Substeps: []string{"Choose Cycles"}},
		{Title: "Publish", ExpectedResult: "Participants are notified."},
	})
	assert.Equal(t, "Launch\n1. Open settings\n   • Choose Cycles\n2. Publish\n   ✓ Expected result: Participants are notified.", out)
}

func TestWorkflowDiagram(t *testing.T) {
	r := newRenderer(t)
	out, err := r.WorkflowDiagram("Approval", "", "flowchart LR\n  A[Draft] -->|submit| B[Approved]\n")
	require.NoError(t, err)
	assert.Equal(t, "Approval\n  Draft → Approved [submit]", out)

	_, err = r.WorkflowDiagram("", "", "sequenceDiagram\n  A->>B: hi\n")
	assert.Error(t, err)
}

func TestNavigationAndRelated(t *testing.T) {
	goals := &types.Section{ID: "sec-4-1", Title: "Goals", Navigation: []string{"Home", "Goals"}}
	r := newRenderer(t, goals)

	assert.Equal(t, "Home → Goals", r.NavigationFor("sec-4-1"))
	assert.Empty(t, r.NavigationFor("sec-9-9"))
	assert.Empty(t, r.NavigationPath(nil))

	out := r.RelatedTopics("", []types.RelatedTopic{
		{SectionID: "sec-4-1", Title: "Goals"},
		{SectionID: "sec-9-9"},
	})
	assert.Equal(t, "Related topics\n→ Goals (sec-4-1)\n→ sec-9-9 (sec-9-9) [unresolved]", out)
	assert.Empty(t, r.RelatedTopics("", nil))
}

func TestBlockPlaceholder(t *testing.T) {
	r := newRenderer(t)
	out := r.Blocks(context.Background(), []types.Block{
		types.List{Items: []string{"kept"}},
		types.Diagram{Source: "not a diagram"},
	})
	assert.Contains(t, out, "• kept")
	assert.Contains(t, out, "[content error] diagram block could not be rendered")
}

func TestSection(t *testing.T) {
	s := &types.Section{
		ID:          "sec-6-3",
		Title:       "Review cycles",
		Audience:    "HR administrators",
		ReadingTime: 8,
		Navigation:  []string{"Home", "Reviews"},
		Blocks: []types.Block{
			types.Paragraph{Markdown: "Cycles group reviews."},
			types.Callout{Variant: types.VariantTip, Body: []types.Block{types.Paragraph{Markdown: "Start early."}}},
		},
	}
	r := newRenderer(t, s)
	ctx := context.Background()

	out := r.Section(ctx, s)
	assert.True(t, strings.HasPrefix(out, "Home → Reviews\n\nReview cycles\n\nAudience: HR administrators · 8 min read"))
	assert.Contains(t, out, "Cycles group reviews.")
	assert.Contains(t, out, "✦")
	assert.NotContains(t, out, "✦ Tip")
	assert.Contains(t, out, "Start early.")
	assert.NotContains(t, out, "content error")
	assert.Equal(t, out, r.Section(ctx, s), "rendering is deterministic")
}
