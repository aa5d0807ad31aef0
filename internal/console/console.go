// Package console renders manual content for the terminal.
//
// It mirrors the HTML renderer unit for unit so that `manualkit render
// --format term` can show a section without a browser. Styling goes through a
// private lipgloss renderer with an explicit color profile, which keeps output
// deterministic: with Color disabled every style degrades to plain text and
// box-drawing characters.
package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/conneroisu/manualkit/internal/diagram"
	"github.com/conneroisu/manualkit/internal/errors"
	"github.com/conneroisu/manualkit/internal/logging"
	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/theme"
	"github.com/conneroisu/manualkit/internal/types"
)

// DefaultWidth is the wrap width used when Options.Width is zero.
const DefaultWidth = 80

// Options configures a console Renderer.
type Options struct {
	Theme    *theme.Registry
	Sections *registry.Registry
	Width    int
	// Color enables ANSI colors. Without it output is plain text.
	Color  bool
	Logger logging.Logger
}

// Renderer renders sections as terminal text.
type Renderer struct {
	theme    *theme.Registry
	sections *registry.Registry
	width    int
	logger   logging.Logger

	lg    *lipgloss.Renderer
	mdMu  sync.Mutex
	md    *glamour.TermRenderer
	title lipgloss.Style
	muted lipgloss.Style
	bold  lipgloss.Style
}

// New creates a console renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Theme == nil {
		opts.Theme = theme.New()
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	lg := lipgloss.NewRenderer(io.Discard)
	mdStyle := styles.NoTTYStyle
	if opts.Color {
		lg.SetColorProfile(termenv.TrueColor)
		mdStyle = styles.DarkStyle
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(mdStyle),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}

	return &Renderer{
		theme:    opts.Theme,
		sections: opts.Sections,
		width:    opts.Width,
		logger:   opts.Logger.WithComponent("console"),
		lg:       lg,
		md:       md,
		title:    lg.NewStyle().Bold(true).Underline(true),
		muted:    lg.NewStyle().Faint(true),
		bold:     lg.NewStyle().Bold(true),
	}, nil
}

// Markdown renders markdown for the terminal.
func (r *Renderer) Markdown(src string) (string, error) {
	r.mdMu.Lock()
	defer r.mdMu.Unlock()
	out, err := r.md.Render(src)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return trimLines(out), nil
}

// Callout renders body inside a left-bordered box headed by the variant
// glyph and, when given, the title.
func (r *Renderer) Callout(v types.Variant, title, body string) (string, error) {
	style, err := r.theme.Variant(v)
	if err != nil {
		return "", errors.NewRenderError(errors.ErrCodeRenderFailed, "resolving callout variant", err)
	}
	header := r.lg.NewStyle().Foreground(lipgloss.Color(style.IconColor)).Render(style.Glyph)
	if title != "" {
		header += " " + r.bold.Render(title)
	}

	box := r.lg.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(style.BorderAccent)).
		PaddingLeft(1)
	content := header
	if body != "" {
		content += "\n" + body
	}
	return box.Render(content), nil
}

// FieldReferenceTable renders fields as a bordered table in input order.
func (r *Renderer) FieldReferenceTable(title string, fields []types.FieldDefinition) string {
	rows := make([][]string, len(fields))
	for i, f := range fields {
		rows[i] = []string{
			f.Name,
			theme.RequiredBadge(f.Required),
			string(f.Type),
			f.Description,
			f.DefaultValue,
			f.Validation,
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.muted).
		Headers("Field", "Required", "Type", "Description", "Default", "Validation").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.bold.Padding(0, 1)
			}
			return r.lg.NewStyle().Padding(0, 1)
		})
	return r.titled(title, t.String())
}

// BusinessRules renders one line per rule prefixed by its badge.
func (r *Renderer) BusinessRules(title string, rules []types.BusinessRule) (string, error) {
	lines := make([]string, 0, len(rules))
	for i, rule := range rules {
		b, err := r.theme.Badge(rule.Enforcement)
		if err != nil {
			return "", errors.NewRenderError(errors.ErrCodeRenderFailed,
				fmt.Sprintf("resolving badge of rule %d", i+1), err)
		}
		badge := r.lg.NewStyle().
			Foreground(lipgloss.Color(b.Foreground)).
			Background(lipgloss.Color(b.Background)).
			Bold(b.Weight >= 3).
			Render("[" + b.Label + "]")
		line := badge + " " + rule.Rule
		if rule.Description != "" {
			line += "\n    " + r.muted.Render(rule.Description)
		}
		lines = append(lines, line)
	}
	return r.titled(title, strings.Join(lines, "\n")), nil
}

// StepByStep renders a numbered guide; the number is the step's position.
func (r *Renderer) StepByStep(title string, steps []types.WorkflowStep) string {
	var b strings.Builder
	for i, step := range steps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.bold.Render(strconv.Itoa(i+1) + ". " + step.Title))
		if step.Description != "" {
			b.WriteString("\n   " + step.Description)
		}
		for _, sub := range step.Substeps {
			b.WriteString("\n   • " + sub)
		}
		if step.ExpectedResult != "" {
			b.WriteString("\n   ✓ Expected result: " + step.ExpectedResult)
		}
	}
	return r.titled(title, b.String())
}

// WorkflowDiagram renders the diagram as a text outline of its edges.
func (r *Renderer) WorkflowDiagram(title, description, source string) (string, error) {
	graph, err := diagram.Parse(source)
	if err != nil {
		return "", errors.NewRenderError(errors.ErrCodeRenderFailed, "invalid workflow diagram", err)
	}
	lines := []string{}
	if description != "" {
		lines = append(lines, r.muted.Render(description))
	}
	for _, line := range graph.Outline() {
		lines = append(lines, "  "+line)
	}
	if title == "" {
		title = "Diagram"
	}
	return r.titled(title, strings.Join(lines, "\n")), nil
}

// NavigationPath joins labels with the breadcrumb separator.
func (r *Renderer) NavigationPath(labels types.NavigationPath) string {
	if len(labels) == 0 {
		return ""
	}
	return r.muted.Render(strings.Join(labels, " → "))
}

// NavigationFor renders the breadcrumb of a section, or "" when it has none.
func (r *Renderer) NavigationFor(sectionID string) string {
	if r.sections == nil {
		return ""
	}
	return r.NavigationPath(r.sections.Breadcrumb(sectionID))
}

// RelatedTopics lists cross-references with their section ids. Topics that
// do not resolve are marked.
func (r *Renderer) RelatedTopics(title string, topics []types.RelatedTopic) string {
	if len(topics) == 0 {
		return ""
	}
	if title == "" {
		title = "Related topics"
	}
	lines := make([]string, len(topics))
	for i, topic := range topics {
		label := topic.Title
		if label == "" {
			label = topic.SectionID
		}
		line := "→ " + label + " " + r.muted.Render("("+topic.SectionID+")")
		if r.sections != nil && !r.sections.Has(topic.SectionID) {
			line += " [unresolved]"
		}
		lines[i] = line
	}
	return r.titled(title, strings.Join(lines, "\n"))
}

// List renders a bullet, numbered or checklist list.
func (r *Renderer) List(list types.List) string {
	lines := make([]string, len(list.Items))
	for i, item := range list.Items {
		switch {
		case list.Checklist:
			lines[i] = "☐ " + item
		case list.Ordered:
			lines[i] = strconv.Itoa(i+1) + ". " + item
		default:
			lines[i] = "• " + item
		}
	}
	return r.titled(list.Title, strings.Join(lines, "\n"))
}

// Block renders one block. A failing block is replaced by a placeholder and
// logged.
func (r *Renderer) Block(ctx context.Context, b types.Block) string {
	out, err := r.unit(ctx, b)
	if err != nil {
		kind := "unknown"
		if b != nil {
			kind = string(b.Kind())
		}
		r.logger.Warn(ctx, err, "block rendered as placeholder", "block", kind)
		return r.lg.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626")).
			Render("[content error] " + kind + " block could not be rendered: " + err.Error())
	}
	return out
}

// Blocks renders blocks separated by blank lines, skipping empty output.
func (r *Renderer) Blocks(ctx context.Context, blocks []types.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := r.Block(ctx, b); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *Renderer) unit(ctx context.Context, b types.Block) (string, error) {
	switch b := b.(type) {
	case types.Paragraph:
		return r.Markdown(b.Markdown)
	case types.List:
		return r.List(b), nil
	case types.Callout:
		return r.Callout(b.Variant, b.Title, r.Blocks(ctx, b.Body))
	case types.FieldTable:
		return r.FieldReferenceTable(b.Title, b.Fields), nil
	case types.BusinessRules:
		return r.BusinessRules(b.Title, b.Rules)
	case types.Steps:
		return r.StepByStep(b.Title, b.Steps), nil
	case types.Diagram:
		return r.WorkflowDiagram(b.Title, b.Description, b.Source)
	case types.Navigation:
		if len(b.Labels) > 0 {
			return r.NavigationPath(b.Labels), nil
		}
		return r.NavigationFor(b.SectionID), nil
	case types.RelatedTopics:
		return r.RelatedTopics(b.Title, b.Topics), nil
	default:
		return "", fmt.Errorf("unsupported block type %T", b)
	}
}

// Section renders a whole section.
func (r *Renderer) Section(ctx context.Context, s *types.Section) string {
	parts := []string{}
	crumb := r.NavigationPath(s.Navigation)
	if crumb == "" {
		crumb = r.NavigationFor(s.ID)
	}
	if crumb != "" {
		parts = append(parts, crumb)
	}
	parts = append(parts, r.title.Render(s.Title))

	var meta []string
	if s.Audience != "" {
		meta = append(meta, "Audience: "+s.Audience)
	}
	if s.ReadingTime > 0 {
		meta = append(meta, strconv.Itoa(s.ReadingTime)+" min read")
	}
	if len(meta) > 0 {
		parts = append(parts, r.muted.Render(strings.Join(meta, " · ")))
	}
	if s.Summary != "" {
		parts = append(parts, s.Summary)
	}
	if body := r.Blocks(ctx, s.Blocks); body != "" {
		parts = append(parts, body)
	}
	if related := r.RelatedTopics("", s.Related); related != "" {
		parts = append(parts, related)
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func (r *Renderer) titled(title, body string) string {
	if title == "" {
		return body
	}
	if body == "" {
		return r.bold.Render(title)
	}
	return r.bold.Render(title) + "\n" + body
}

// trimLines drops the blank margin lines and trailing padding glamour adds.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
