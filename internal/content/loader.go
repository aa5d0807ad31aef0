// Package content loads manual sections and the navigation registry from
// YAML, TOML and JSON files.
//
// Every file is decoded to a generic document, checked against an embedded
// JSON Schema and only then converted to the typed model. Problems with a
// single file are reported as findings and never stop the rest of the manual
// from loading; only I/O failures are returned as errors.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/logging"
	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/types"
)

// Options selects the content to load.
type Options struct {
	// Paths are files or directories scanned recursively for content files.
	Paths []string
	// NavigationFile maps section ids to breadcrumbs. Optional.
	NavigationFile string
	// Exclude holds glob patterns matched against the base name and the
	// slash-separated path of each candidate file.
	Exclude []string
}

// Result is a loaded manual.
type Result struct {
	Registry *registry.Registry
	// Files lists the section files in load order.
	Files    []string
	Findings *errors.ErrorCollector
}

// Loader reads content from disk.
type Loader struct {
	opts   Options
	logger logging.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(opts Options, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{opts: opts, logger: logger.WithComponent("content")}
}

// Load scans the configured paths, decodes every section and builds the
// registries.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	if _, _, err := compileSchemas(); err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "compiling content schema", err)
	}

	files, err := l.scan()
	if err != nil {
		return nil, err
	}

	findings := errors.NewErrorCollector()
	builder := registry.NewBuilder()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "reading "+file)
		}
		section := Decode(file, data, findings)
		if section == nil {
			continue
		}
		if err := builder.Add(section); err != nil {
			findings.AddError(err)
			continue
		}
		l.logger.Debug(ctx, "loaded section", "section", section.ID, "file", file, "blocks", len(section.Blocks))
	}

	if l.opts.NavigationFile != "" {
		if err := l.loadNavigation(builder, findings); err != nil {
			return nil, err
		}
	}

	reg := builder.Build()
	l.logger.Info(ctx, "content loaded",
		"sections", reg.Count(),
		"navigation_paths", reg.Navigation().Len(),
		"findings", findings.Len())
	return &Result{Registry: reg, Files: files, Findings: findings}, nil
}

// scan returns the candidate section files in lexical order per path.
func (l *Loader) scan() ([]string, error) {
	nav := ""
	if l.opts.NavigationFile != "" {
		nav = filepath.Clean(l.opts.NavigationFile)
	}
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if path == nav || seen[path] || l.excluded(path) {
			return
		}
		if _, ok := FormatOf(path); !ok {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, root := range l.opts.Paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeFileNotFound, "content path "+root)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && (strings.HasPrefix(d.Name(), ".") || l.excluded(path)) {
					return filepath.SkipDir
				}
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeReadFailed, "scanning "+root)
		}
	}
	return files, nil
}

func (l *Loader) excluded(path string) bool {
	base := filepath.Base(path)
	slashed := filepath.ToSlash(path)
	for _, pattern := range l.opts.Exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

func (l *Loader) loadNavigation(builder *registry.Builder, findings *errors.ErrorCollector) error {
	file := l.opts.NavigationFile
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.WrapIO(err, errors.ErrCodeFileNotFound, "reading navigation file "+file)
	}
	paths := DecodeNavigation(file, data, findings)
	for _, id := range sortedKeys(paths) {
		if err := builder.SetNavigation(id, paths[id]); err != nil {
			findings.AddError(errors.Wrap(err, errors.ErrorTypeContent, registry.CodeDuplicateNavigationKey,
				"navigation key defined twice").WithLocation(file, pointer([]string{id})))
		}
	}
	return nil
}

// Decode converts one content file to a section, reporting problems to
// findings. It returns nil when the file cannot be used at all.
func Decode(file string, data []byte, findings *errors.ErrorCollector) *types.Section {
	doc, ok := decodeChecked(file, data, false, findings)
	if !ok {
		return nil
	}
	var sd sectionDoc
	if err := json.Unmarshal(doc, &sd); err != nil {
		findings.AddError(errors.WrapContent(err, CodeDecode, "decoding section", file, ""))
		return nil
	}
	c := &converter{file: file, findings: findings}
	return c.section(&sd)
}

// DecodeNavigation converts a navigation registry file to breadcrumbs keyed
// by section id.
func DecodeNavigation(file string, data []byte, findings *errors.ErrorCollector) map[string]types.NavigationPath {
	doc, ok := decodeChecked(file, data, true, findings)
	if !ok {
		return nil
	}
	var raw map[string][]string
	if err := json.Unmarshal(doc, &raw); err != nil {
		findings.AddError(errors.WrapContent(err, CodeDecode, "decoding navigation", file, ""))
		return nil
	}
	paths := make(map[string]types.NavigationPath, len(raw))
	for id, labels := range raw {
		paths[id] = types.NavigationPath(labels)
	}
	return paths
}

// decodeChecked normalizes data to JSON and validates it against the section
// or navigation schema.
func decodeChecked(file string, data []byte, navigation bool, findings *errors.ErrorCollector) ([]byte, bool) {
	format, ok := FormatOf(file)
	if !ok {
		findings.AddError(errors.NewContentError(CodeDecode,
			fmt.Sprintf("unsupported content file extension %q", filepath.Ext(file)), nil).
			WithLocation(file, ""))
		return nil, false
	}
	doc, err := toJSON(format, data)
	if err != nil {
		findings.AddError(errors.WrapContent(err, CodeDecode, "decoding "+string(format), file, ""))
		return nil, false
	}

	sections, nav, err := compileSchemas()
	if err != nil {
		findings.AddError(errors.NewInternalError(errors.ErrCodeInternalError, "compiling content schema", err))
		return nil, false
	}
	schema := sections
	if navigation {
		schema = nav
	}
	violations, err := validate(schema, doc)
	if err != nil {
		findings.AddError(errors.WrapContent(err, CodeDecode, "validating", file, ""))
		return nil, false
	}
	for _, v := range violations {
		findings.AddError(errors.NewContentError(CodeSchema, v.Message, nil).WithLocation(file, v.Pointer))
	}
	return doc, len(violations) == 0
}

func sortedKeys(m map[string]types.NavigationPath) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
