// Package lint checks a loaded manual for broken cross-references and
// invalid embedded content.
//
// The section identifier space is closed: every related topic, navigation
// block and navigation registry key must name a loaded section. Diagrams are
// parsed and validated here so that malformed sources fail the build instead
// of reaching readers.
package lint

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/conneroisu/manualkit/internal/diagram"
	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/logging"
	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/types"
)

// Finding codes.
const (
	CodeUnknownVariant           = "unknown-variant"
	CodeUnknownEnforcement       = "unknown-enforcement"
	CodeDanglingRelatedTopic     = "dangling-related-topic"
	CodeDanglingNavigationKey    = "dangling-navigation-key"
	CodeDanglingInlineNavigation = "dangling-inline-navigation"
	CodeDiagramSyntax            = "diagram-syntax"
	CodeDiagramInvalid           = "diagram-invalid"
	CodeOrphanSection            = "orphan-section"
	CodeEmptySection             = "empty-section"
)

// Options configures a lint run.
type Options struct {
	// NavigationFile is reported as the location of navigation key findings.
	NavigationFile string
	// Orphans reports sections nothing links to.
	Orphans bool
	// Strict promotes warnings to errors.
	Strict bool
}

// Linter checks registries. It holds no state between runs.
type Linter struct {
	opts   Options
	logger logging.Logger
}

// New creates a linter. A nil logger discards output.
func New(opts Options, logger logging.Logger) *Linter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Linter{opts: opts, logger: logger.WithComponent("lint")}
}

// Lint runs every check against reg and returns the findings.
func (l *Linter) Lint(ctx context.Context, reg *registry.Registry) *errors.ErrorCollector {
	r := &run{opts: l.opts, reg: reg, findings: errors.NewErrorCollector()}

	for _, s := range reg.All() {
		r.section(s)
	}
	r.navigationKeys()
	if l.opts.Orphans {
		r.orphans()
	}

	l.logger.Info(ctx, "lint finished",
		"sections", reg.Count(),
		"errors", r.findings.Count(errors.ErrorSeverityError),
		"warnings", r.findings.Count(errors.ErrorSeverityWarning))
	return r.findings
}

// Failed reports whether findings should fail a build. In strict mode
// warnings count as failures.
func Failed(findings *errors.ErrorCollector, strict bool) bool {
	if findings.HasErrors() {
		return true
	}
	return strict && findings.Count(errors.ErrorSeverityWarning) > 0
}

type run struct {
	opts     Options
	reg      *registry.Registry
	findings *errors.ErrorCollector
}

func (r *run) report(sev errors.ErrorSeverity, code string, s *types.Section, ptr, msg string) {
	if r.opts.Strict && sev == errors.ErrorSeverityWarning {
		sev = errors.ErrorSeverityError
	}
	f := errors.Finding{Code: code, Severity: sev, Message: msg, Pointer: ptr}
	if s != nil {
		f.Section = s.ID
		f.File = s.Source
	}
	r.findings.Add(f)
}

func (r *run) section(s *types.Section) {
	if len(s.Blocks) == 0 && strings.TrimSpace(s.Summary) == "" {
		r.report(errors.ErrorSeverityWarning, CodeEmptySection, s, "",
			fmt.Sprintf("section %q has no content", s.ID))
	}
	for i, topic := range s.Related {
		r.related(s, fmt.Sprintf("/related/%d/section", i), topic)
	}
	types.Walk(s.Blocks, func(path []int, b types.Block) {
		ptr := s.SourcePointer(BlockPointer(path))
		switch b := b.(type) {
		case types.Callout:
			if !b.Variant.Valid() {
				r.report(errors.ErrorSeverityError, CodeUnknownVariant, s, ptr+"/variant",
					fmt.Sprintf("callout variant %d has no style", int(b.Variant)))
			}
		case types.BusinessRules:
			for i, rule := range b.Rules {
				if !rule.Enforcement.Valid() {
					r.report(errors.ErrorSeverityError, CodeUnknownEnforcement, s,
						fmt.Sprintf("%s/rules/%d/enforcement", ptr, i),
						fmt.Sprintf("enforcement level %d has no badge", int(rule.Enforcement)))
				}
			}
		case types.RelatedTopics:
			for i, topic := range b.Topics {
				r.related(s, fmt.Sprintf("%s/topics/%d/section", ptr, i), topic)
			}
		case types.Navigation:
			r.navigationBlock(s, ptr, b)
		case types.Diagram:
			r.diagram(s, ptr+"/source", b.Source)
		}
	})
}

func (r *run) related(s *types.Section, ptr string, topic types.RelatedTopic) {
	if r.reg.Has(topic.SectionID) {
		return
	}
	r.report(errors.ErrorSeverityError, CodeDanglingRelatedTopic, s, ptr,
		fmt.Sprintf("related topic %q points to unknown section %q", topic.Title, topic.SectionID))
}

func (r *run) navigationBlock(s *types.Section, ptr string, b types.Navigation) {
	if len(b.Labels) > 0 || b.SectionID == "" {
		return
	}
	if !r.reg.Has(b.SectionID) {
		r.report(errors.ErrorSeverityError, CodeDanglingInlineNavigation, s, ptr+"/section",
			fmt.Sprintf("navigation block points to unknown section %q", b.SectionID))
		return
	}
	if len(r.reg.Breadcrumb(b.SectionID)) == 0 {
		r.report(errors.ErrorSeverityWarning, CodeDanglingInlineNavigation, s, ptr+"/section",
			fmt.Sprintf("section %q has no navigation path", b.SectionID))
	}
}

func (r *run) diagram(s *types.Section, ptr, src string) {
	err := diagram.Validate(src)
	if err == nil {
		return
	}
	var syn *diagram.SyntaxError
	if stderrors.As(err, &syn) {
		r.findings.Add(errors.Finding{
			Code:     CodeDiagramSyntax,
			Severity: errors.ErrorSeverityError,
			Section:  s.ID,
			File:     s.Source,
			Pointer:  ptr,
			Line:     syn.Line,
			Column:   syn.Column,
			Message:  syn.Message,
		})
		return
	}
	var inv *diagram.ValidationError
	if stderrors.As(err, &inv) {
		for _, issue := range inv.Issues {
			r.findings.Add(errors.Finding{
				Code:     CodeDiagramInvalid,
				Severity: errors.ErrorSeverityError,
				Section:  s.ID,
				File:     s.Source,
				Pointer:  ptr,
				Line:     issue.Line,
				Column:   issue.Column,
				Message:  issue.Message,
			})
		}
		return
	}
	r.report(errors.ErrorSeverityError, CodeDiagramInvalid, s, ptr, err.Error())
}

func (r *run) navigationKeys() {
	for _, key := range r.reg.Navigation().Keys() {
		if r.reg.Has(key) {
			continue
		}
		r.findings.Add(errors.Finding{
			Code:     CodeDanglingNavigationKey,
			Severity: errors.ErrorSeverityError,
			File:     r.opts.NavigationFile,
			Pointer:  "/" + escapeToken(key),
			Message:  fmt.Sprintf("navigation path registered for unknown section %q", key),
		})
	}
}

func (r *run) orphans() {
	for _, id := range r.reg.Links().Orphans() {
		s, _ := r.reg.Get(id)
		r.report(errors.ErrorSeverityWarning, CodeOrphanSection, s, "",
			fmt.Sprintf("no section links to %q", id))
	}
}

// BlockPointer renders a types.Walk path as a JSON pointer into the section
// document, e.g. [3 0] -> /blocks/3/body/0.
func BlockPointer(path []int) string {
	var b strings.Builder
	for i, idx := range path {
		if i == 0 {
			b.WriteString("/blocks/")
		} else {
			b.WriteString("/body/")
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

func escapeToken(tok string) string {
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~", "~0"), "/", "~1")
}
