// Package build generates the static HTML manual.
//
// A build renders one page per section plus an index page and the default
// stylesheet into an output directory. Every written file is recorded in a
// blake3 manifest; on the next build a file whose digest has not changed is
// not rewritten, and files the previous build wrote that are no longer
// produced are removed.
package build

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/logging"
	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/renderer"
)

const (
	// IndexFile is the table of contents page.
	IndexFile = "index.html"
	// StylesheetFile is where the default stylesheet is written.
	StylesheetFile = "manual.css"
)

// Options configures a static build.
type Options struct {
	OutputDir string
	// LinkPattern must match the renderer's so links resolve to pages.
	LinkPattern string
	// Clean removes the output directory before building.
	Clean bool
	// Workers bounds concurrent page rendering. Zero means GOMAXPROCS.
	Workers int
}

// Result summarizes a build.
type Result struct {
	OutputDir string   `json:"output_dir"`
	Pages     int      `json:"pages"`
	Written   []string `json:"written"`
	Unchanged []string `json:"unchanged"`
	Removed   []string `json:"removed"`
}

// StaticSiteGenerator writes the manual as static HTML.
type StaticSiteGenerator struct {
	renderer *renderer.Renderer
	sections *registry.Registry
	opts     Options
	logger   logging.Logger
}

// NewStaticSiteGenerator creates a generator for the sections of reg.
func NewStaticSiteGenerator(r *renderer.Renderer, reg *registry.Registry, opts Options, logger logging.Logger) *StaticSiteGenerator {
	if opts.LinkPattern == "" {
		opts.LinkPattern = renderer.DefaultLinkPattern
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StaticSiteGenerator{
		renderer: r,
		sections: reg,
		opts:     opts,
		logger:   logger.WithComponent("build"),
	}
}

// Generate renders and writes the manual.
func (s *StaticSiteGenerator) Generate(ctx context.Context) (*Result, error) {
	op := logging.StartOperation(s.logger, "build")
	res, err := s.generate(ctx)
	if err != nil {
		op.EndWithError(ctx, err)
		return nil, err
	}
	op.End(ctx,
		"dir", res.OutputDir,
		"pages", res.Pages,
		"written", len(res.Written),
		"unchanged", len(res.Unchanged),
		"removed", len(res.Removed))
	return res, nil
}

func (s *StaticSiteGenerator) generate(ctx context.Context) (*Result, error) {
	dir := s.opts.OutputDir
	if dir == "" {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "output directory is empty")
	}

	if s.opts.Clean {
		if err := os.RemoveAll(dir); err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeWriteFailed, "cleaning output directory").
				WithLocation(dir, "")
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeWriteFailed, "creating output directory").
			WithLocation(dir, "")
	}

	previous, err := readManifest(dir)
	if err != nil {
		s.logger.Warn(ctx, err, "ignoring unreadable build manifest", "dir", dir)
	}

	jobs, err := s.jobs()
	if err != nil {
		return nil, err
	}

	results := runJobs(ctx, s.opts.Workers, jobs, func(ctx context.Context, j job) jobResult {
		return s.write(ctx, dir, previous, j)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next := &manifest{Files: make(map[string]string, len(results))}
	res := &Result{OutputDir: dir, Pages: s.sections.Count()}
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		next.Files[r.name] = r.digest
		if r.written {
			res.Written = append(res.Written, r.name)
		} else {
			res.Unchanged = append(res.Unchanged, r.name)
		}
	}

	for _, name := range previous.stale(next) {
		err := os.Remove(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.WrapIO(err, errors.ErrCodeWriteFailed, "removing stale page").
				WithLocation(name, "")
		}
		res.Removed = append(res.Removed, name)
	}

	if err := next.write(dir); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeWriteFailed, "writing build manifest").
			WithLocation(filepath.Join(dir, manifestFile), "")
	}

	sort.Strings(res.Written)
	sort.Strings(res.Unchanged)
	return res, nil
}

// jobs lists every file of the build: the stylesheet, the index and one page
// per section.
func (s *StaticSiteGenerator) jobs() ([]job, error) {
	jobs := []job{
		{name: StylesheetFile, static: renderer.DefaultStylesheet},
		{name: IndexFile, render: func(ctx context.Context, buf *bytes.Buffer) error {
			return s.renderer.Index(s.sections.All()).Render(ctx, buf)
		}},
	}
	seen := map[string]string{}
	for _, section := range s.sections.All() {
		name, err := pageFile(s.opts.LinkPattern, section.ID)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeValidation, errors.ErrCodeConfigInvalid,
				"cannot derive page file name").WithSection(section.ID).WithLocation(section.Source, "/id")
		}
		name = filepath.ToSlash(filepath.Clean(filepath.FromSlash(name)))
		if other, dup := seen[name]; dup {
			return nil, errors.NewValidationError(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("sections %s and %s map to the same page %s", other, section.ID, name))
		}
		seen[name] = section.ID

		page := section
		jobs = append(jobs, job{name: name, render: func(ctx context.Context, buf *bytes.Buffer) error {
			return s.renderer.Page(page).Render(ctx, buf)
		}})
	}
	return jobs, nil
}

func (s *StaticSiteGenerator) write(ctx context.Context, dir string, previous *manifest, j job) jobResult {
	data := j.static
	if j.render != nil {
		var buf bytes.Buffer
		if err := j.render(ctx, &buf); err != nil {
			return jobResult{name: j.name, err: errors.NewRenderError(errors.ErrCodeRenderFailed,
				"rendering "+j.name, err)}
		}
		data = buf.Bytes()
	}

	sum := digest(data)
	if previous.unchanged(dir, j.name, sum) {
		s.logger.Debug(ctx, "page unchanged", "file", j.name)
		return jobResult{name: j.name, digest: sum}
	}

	path := filepath.Join(dir, filepath.FromSlash(j.name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return jobResult{name: j.name, err: errors.WrapIO(err, errors.ErrCodeWriteFailed,
			"creating page directory").WithLocation(path, "")}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return jobResult{name: j.name, err: errors.WrapIO(err, errors.ErrCodeWriteFailed,
			"writing page").WithLocation(path, "")}
	}
	s.logger.Debug(ctx, "page written", "file", j.name, "bytes", len(data))
	return jobResult{name: j.name, digest: sum, written: true}
}
