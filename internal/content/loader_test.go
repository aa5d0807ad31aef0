package content

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/testutils"
	"github.com/conneroisu/manualkit/internal/types"
)

func loadFixtures(t *testing.T) *Result {
	t.Helper()
	loader := NewLoader(Options{
		Paths:          []string{filepath.Join("testdata", "manual")},
		NavigationFile: filepath.Join("testdata", "navigation.yaml"),
		Exclude:        []string{"draft.*"},
	}, nil)
	res, err := loader.Load(context.Background())
	require.NoError(t, err)
	return res
}

func TestLoadMixedFormats(t *testing.T) {
	res := loadFixtures(t)

	assert.Empty(t, res.Findings.Findings())
	assert.Len(t, res.Files, 3)

	ids := make([]string, 0)
	for _, s := range res.Registry.All() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"sec-6-4", "sec-4-1", "sec-6-3"}, ids, "sections keep lexical file order")
	assert.False(t, res.Registry.Has("sec-draft"), "excluded files are not loaded")

	assert.Equal(t, types.NavigationPath{"Performance", "Reviews", "Calibration"},
		res.Registry.Breadcrumb("sec-6-4"))
	assert.Equal(t, types.NavigationPath{"Performance", "Goals", "Setting goals"},
		res.Registry.Breadcrumb("sec-4-1"), "inline navigation from TOML")
}

func TestLoadDecodesEveryBlockKind(t *testing.T) {
	res := loadFixtures(t)
	s, ok := res.Registry.Get("sec-6-3")
	require.True(t, ok)

	assert.Equal(t, "HR administrators", s.Audience)
	assert.Equal(t, 6, s.ReadingTime)
	assert.Equal(t, filepath.Join("testdata", "manual", "review-cycle.yaml"), s.Source)
	require.Len(t, s.Related, 2)
	assert.Equal(t, types.RelatedTopic{SectionID: "sec-6-4", Title: "Calibration sessions"}, s.Related[0])

	kinds := make([]types.BlockKind, len(s.Blocks))
	for i, b := range s.Blocks {
		kinds[i] = b.Kind()
	}
	assert.Equal(t, []types.BlockKind{
		types.KindParagraph, types.KindCallout, types.KindFieldTable,
		types.KindBusinessRules, types.KindSteps, types.KindDiagram,
	}, kinds)

	callout := s.Blocks[1].(types.Callout)
	assert.Equal(t, types.VariantWarning, callout.Variant)
	require.Len(t, callout.Body, 1)

	fields := s.Blocks[2].(types.FieldTable)
	require.Len(t, fields.Fields, 2)
	assert.Equal(t, types.FieldDefinition{
		Name:         "sla_hours",
		Required:     false,
		Type:         types.FieldNumber,
		Description:  "Hours before an overdue review escalates",
		DefaultValue: "72",
		Validation:   "1-720",
	}, fields.Fields[1])

	rules := s.Blocks[3].(types.BusinessRules)
	require.Len(t, rules.Rules, 2)
	assert.Equal(t, types.EnforcementSystem, rules.Rules[0].Enforcement)
	assert.Equal(t, types.EnforcementAdvisory, rules.Rules[1].Enforcement)

	steps := s.Blocks[4].(types.Steps)
	require.Len(t, steps.Steps, 2)
	assert.Equal(t, []string{"Pick the start date", "Pick the close date"}, steps.Steps[1].Substeps)
	assert.Equal(t, "The cycle shows as Scheduled.", steps.Steps[1].ExpectedResult)

	diagram := s.Blocks[5].(types.Diagram)
	assert.Contains(t, diagram.Source, "A[Draft] --> B[Submitted]")
}

func TestCalloutWithoutVariantDefaultsToInfo(t *testing.T) {
	findings := errors.NewErrorCollector()
	s := Decode("c.yaml", []byte(`
id: sec-1
title: One
blocks:
  - type: callout
    body: [{type: paragraph, text: hi}]
`), findings)
	require.NotNil(t, s)
	assert.Equal(t, 0, findings.Len())
	assert.Equal(t, types.VariantInfo, s.Blocks[0].(types.Callout).Variant)
}

func TestUnknownVariantIsReported(t *testing.T) {
	file := filepath.Join("testdata", "broken", "unknown-variant.yaml")
	loader := NewLoader(Options{Paths: []string{file}}, nil)
	res, err := loader.Load(context.Background())
	require.NoError(t, err)

	got := res.Findings.Findings()
	require.Len(t, got, 1)
	assert.Equal(t, CodeUnknownVariant, got[0].Code)
	assert.Equal(t, errors.ErrorSeverityError, got[0].Severity)
	assert.Equal(t, "/blocks/0/variant", got[0].Pointer)
	assert.Equal(t, "sec-bad", got[0].Section)
	assert.Equal(t, file, got[0].File)

	s, ok := res.Registry.Get("sec-bad")
	require.True(t, ok, "the rest of the section still loads")
	require.Len(t, s.Blocks, 1)
	assert.Equal(t, types.KindParagraph, s.Blocks[0].Kind())
}

func TestSchemaViolationsCarryPointers(t *testing.T) {
	findings := errors.NewErrorCollector()
	s := Decode("missing-title.json",
		[]byte(`{"id": "sec-untitled", "blocks": [{"type": "steps", "steps": [{"description": "no title"}]}]}`),
		findings)
	assert.Nil(t, s)

	got := findings.Findings()
	require.NotEmpty(t, got)
	pointers := make([]string, 0, len(got))
	for _, f := range got {
		assert.Equal(t, CodeSchema, f.Code)
		assert.Equal(t, "missing-title.json", f.File)
		pointers = append(pointers, f.Pointer)
	}
	assert.Contains(t, pointers, "/blocks/0/steps/0")
}

func TestSchemaRejectsUnknownBlockType(t *testing.T) {
	findings := errors.NewErrorCollector()
	s := Decode("x.yaml", []byte("id: a\ntitle: A\nblocks:\n  - type: carousel\n"), findings)
	assert.Nil(t, s)
	require.True(t, findings.HasErrors())
	assert.Equal(t, "/blocks/0/type", findings.Findings()[0].Pointer)
}

func TestUnknownEnforcementAndFieldType(t *testing.T) {
	findings := errors.NewErrorCollector()
	s := Decode("r.toml", []byte(`
id = "sec-r"
title = "Rules"

[[blocks]]
type = "rules"
rules = [
  { rule = "Keep it", enforcement = "mandatory" },
  { rule = "Also keep it", enforcement = "Policy" },
]

[[blocks]]
type = "fields"
fields = [{ name = "x", type = "decimal" }]
`), findings)
	require.NotNil(t, s)

	rules := s.Blocks[0].(types.BusinessRules)
	require.Len(t, rules.Rules, 1, "rules with an unknown level are dropped")
	assert.Equal(t, types.EnforcementPolicy, rules.Rules[0].Enforcement)

	fields := s.Blocks[1].(types.FieldTable)
	assert.Equal(t, types.FieldType("decimal"), fields.Fields[0].Type, "unknown field types are kept")

	got := findings.Findings()
	require.Len(t, got, 2)
	assert.Equal(t, CodeUnknownEnforcement, got[0].Code)
	assert.Equal(t, "/blocks/0/rules/0/enforcement", got[0].Pointer)
	assert.Equal(t, CodeUnknownFieldType, got[1].Code)
	assert.Equal(t, errors.ErrorSeverityWarning, got[1].Severity)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{name: "broken yaml", file: "a.yaml", data: "id: [unclosed"},
		{name: "broken toml", file: "a.toml", data: "id = "},
		{name: "broken json", file: "a.json", data: "{"},
		{name: "empty file", file: "a.yaml", data: ""},
		{name: "unsupported extension", file: "a.txt", data: "id: a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := errors.NewErrorCollector()
			assert.Nil(t, Decode(tt.file, []byte(tt.data), findings))
			require.Equal(t, 1, findings.Len())
			assert.Equal(t, CodeDecode, findings.Findings()[0].Code)
		})
	}
}

func TestDuplicateSectionsAcrossFiles(t *testing.T) {
	dir := testutils.CreateTempManual(t, map[string]string{
		"a.yaml": "id: dup\ntitle: A\n",
		"b.json": `{"id": "dup", "title": "B"}`,
	})

	res, err := NewLoader(Options{Paths: []string{dir}}, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Registry.Count())
	got := res.Findings.Findings()
	require.Len(t, got, 1)
	assert.Equal(t, "duplicate-section", got[0].Code)
	assert.Equal(t, filepath.Join(dir, "b.json"), got[0].File)
}

func TestNavigationSchema(t *testing.T) {
	findings := errors.NewErrorCollector()
	paths := DecodeNavigation("nav.yaml", []byte("sec-1: []\nsec-2: [A]\n"), findings)
	assert.Nil(t, paths)
	require.Equal(t, 1, findings.Len())
	assert.Equal(t, "/sec-1", findings.Findings()[0].Pointer)
}

func TestMissingContentPathIsAnError(t *testing.T) {
	_, err := NewLoader(Options{Paths: []string{"testdata/nope"}}, nil).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeIO, err.(*errors.ManualError).Type)
}

func TestLoadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(Options{Paths: []string{filepath.Join("testdata", "manual")}}, nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPointerEscaping(t *testing.T) {
	assert.Equal(t, "", pointer(nil))
	assert.Equal(t, "/a~1b/c~0d/0", pointer([]string{"a/b", "c~d", "0"}))
}
