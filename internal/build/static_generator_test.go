package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/manualkit/internal/logging"
	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/renderer"
	"github.com/conneroisu/manualkit/internal/testutils"
	"github.com/conneroisu/manualkit/internal/types"
)

func newGenerator(reg *registry.Registry, opts Options) *StaticSiteGenerator {
	r := renderer.New(renderer.Options{Sections: reg, Stylesheet: StylesheetFile})
	return NewStaticSiteGenerator(r, reg, opts, nil)
}

func TestGenerateWritesPagesAndSkipsUnchanged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	goals := &types.Section{ID: "sec-4-1", Title: "Goals"}
	reviews := &types.Section{
		ID:      "sec-6-3",
		Title:   "Review cycles",
		Related: []types.RelatedTopic{{SectionID: "sec-4-1", Title: "Goals"}},
	}
	reg := testutils.BuildRegistry(t, goals, reviews)
	ctx := context.Background()

	res, err := newGenerator(reg, Options{OutputDir: dir, Workers: 2}).Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, []string{"index.html", "manual.css", "sec-4-1.html", "sec-6-3.html"}, res.Written)
	assert.Empty(t, res.Unchanged)

	page, err := os.ReadFile(filepath.Join(dir, "sec-6-3.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `href="sec-4-1.html"`)
	assert.FileExists(t, filepath.Join(dir, manifestFile))

	res, err = newGenerator(reg, Options{OutputDir: dir}).Generate(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.Len(t, res.Unchanged, 4)
}

func TestGenerateRewritesChangedAndRemovesStale(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := testutils.BuildRegistry(t,
		&types.Section{ID: "sec-1-1", Title: "Overview"},
		&types.Section{ID: "sec-9-9", Title: "Retired"},
	)
	_, err := newGenerator(first, Options{OutputDir: dir}).Generate(ctx)
	require.NoError(t, err)

	second := testutils.BuildRegistry(t, &types.Section{ID: "sec-1-1", Title: "Overview (revised)"})
	res, err := newGenerator(second, Options{OutputDir: dir}).Generate(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"index.html", "sec-1-1.html"}, res.Written)
	assert.Equal(t, []string{"manual.css"}, res.Unchanged)
	assert.Equal(t, []string{"sec-9-9.html"}, res.Removed)
	assert.NoFileExists(t, filepath.Join(dir, "sec-9-9.html"))
}

func TestGenerateRestoresDeletedFile(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	reg := testutils.BuildRegistry(t, &types.Section{ID: "sec-1-1", Title: "Overview"})

	_, err := newGenerator(reg, Options{OutputDir: dir}).Generate(ctx)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "sec-1-1.html")))

	res, err := newGenerator(reg, Options{OutputDir: dir}).Generate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sec-1-1.html"}, res.Written)
}

func TestGenerateClean(t *testing.T) {
	dir := t.TempDir()
	leftover := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(leftover, []byte("x"), 0o644))

	reg := testutils.BuildRegistry(t, &types.Section{ID: "sec-1-1", Title: "Overview"})
	res, err := newGenerator(reg, Options{OutputDir: dir, Clean: true}).Generate(context.Background())
	require.NoError(t, err)
	assert.NoFileExists(t, leftover)
	assert.Len(t, res.Written, 3)
}

func TestGenerateLinkPatternDirectories(t *testing.T) {
	dir := t.TempDir()
	reg := testutils.BuildRegistry(t, &types.Section{ID: "sec-1-1", Title: "Overview"})

	_, err := newGenerator(reg, Options{OutputDir: dir, LinkPattern: "sections/%s/index.html"}).
		Generate(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "sections", "sec-1-1", "index.html"))
}

func TestGenerateRejectsUnsafeNames(t *testing.T) {
	dir := t.TempDir()
	reg := testutils.BuildRegistry(t, &types.Section{ID: "sec-1-1", Title: "Overview"})

	_, err := newGenerator(reg, Options{OutputDir: dir, LinkPattern: "../%s.html"}).Generate(context.Background())
	assert.Error(t, err)

	_, err = newGenerator(reg, Options{}).Generate(context.Background())
	assert.Error(t, err)
}

func TestGenerateLogsTiming(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LevelInfo, Format: "text", Output: &logs})
	reg := testutils.BuildRegistry(t, &types.Section{ID: "sec-1-1", Title: "Overview"})
	r := renderer.New(renderer.Options{Sections: reg})

	_, err := NewStaticSiteGenerator(r, reg, Options{OutputDir: t.TempDir()}, logger).Generate(context.Background())
	require.NoError(t, err)
	out := logs.String()
	assert.Contains(t, out, "operation=build")
	assert.Contains(t, out, "written=3")
	assert.Contains(t, out, "duration_ms=")

	logs.Reset()
	_, err = NewStaticSiteGenerator(r, reg, Options{}, logger).Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reg := testutils.BuildRegistry(t, &types.Section{ID: "sec-1-1", Title: "Overview"})

	_, err := newGenerator(reg, Options{OutputDir: t.TempDir()}).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateSectionPath(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"sec-6-3", false},
		{"overview", false},
		{"", true},
		{"..", true},
		{"a/b", true},
		{`a\b`, true},
		{"a;rm", true},
		{"<script>", true},
		{string(make([]byte, maxPageName+1)), true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := validateSectionPath(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunJobsKeepsOrder(t *testing.T) {
	jobs := make([]job, 20)
	for i := range jobs {
		jobs[i] = job{name: string(rune('a' + i))}
	}
	results := runJobs(context.Background(), 4, jobs, func(_ context.Context, j job) jobResult {
		return jobResult{name: j.name}
	})
	for i, r := range results {
		assert.Equal(t, jobs[i].name, r.name)
	}
}
