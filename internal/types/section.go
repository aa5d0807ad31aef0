// Package types provides the content model shared by the loader, the
// registries, the linter and both rendering backends.
//
// Everything here is plain data. Values are built once when content is loaded
// and never mutated afterwards.
package types

// Section is one page of the manual, addressed by an identifier that is
// unique across the whole manual (e.g. "sec-6-3").
type Section struct {
	// ID is the key used by related topics and the navigation registry.
	ID    string
	Title string
	// Audience names the readers the section is written for.
	Audience string
	// ReadingTime is the estimated reading time in minutes. Zero means unknown.
	ReadingTime int
	Summary     string
	// Navigation is an inline breadcrumb. When empty the navigation registry
	// entry for ID is used.
	Navigation []string
	Related    []RelatedTopic
	Blocks     []Block
	// Source is the content file the section was loaded from.
	Source string
	// Origins maps the JSON pointer of a block in Blocks to its pointer in
	// the source document, for blocks whose position differs because an
	// earlier sibling was dropped while loading.
	Origins map[string]string
}

// SourcePointer returns the pointer into the source document of the block
// addressed by ptr, a pointer into Blocks such as "/blocks/2/body/0".
func (s *Section) SourcePointer(ptr string) string {
	if origin, ok := s.Origins[ptr]; ok {
		return origin
	}
	return ptr
}

// FieldDefinition describes one row of a field reference table.
type FieldDefinition struct {
	Name         string
	Required     bool
	Type         FieldType
	Description  string
	DefaultValue string
	Validation   string
}

// BusinessRule is a documented rule and how strictly the product enforces it.
type BusinessRule struct {
	Rule        string
	Enforcement Enforcement
	Description string
}

// WorkflowStep is one entry of a step-by-step guide. Its number is its
// position in the list.
type WorkflowStep struct {
	Title          string
	Description    string
	Substeps       []string
	ExpectedResult string
}

// RelatedTopic is a cross-reference to another section.
type RelatedTopic struct {
	SectionID string
	Title     string
}

// NavigationPath is an ordered breadcrumb of location labels.
type NavigationPath []string

// BlockKind names a block type as it appears in content files.
type BlockKind string

const (
	KindParagraph     BlockKind = "paragraph"
	KindList          BlockKind = "list"
	KindCallout       BlockKind = "callout"
	KindFieldTable    BlockKind = "fields"
	KindBusinessRules BlockKind = "rules"
	KindSteps         BlockKind = "steps"
	KindDiagram       BlockKind = "diagram"
	KindNavigation    BlockKind = "navigation"
	KindRelated       BlockKind = "related"
)

// Block is a content building block. The set of implementations is closed.
type Block interface {
	Kind() BlockKind
	isBlock()
}

// Paragraph is markdown text.
type Paragraph struct {
	Markdown string
}

// List is a bullet, numbered or checklist list of plain items.
type List struct {
	Title     string
	Ordered   bool
	Checklist bool
	Items     []string
}

// Callout is a titled, tinted block of nested content.
type Callout struct {
	Variant Variant
	Title   string
	// Class is an extra CSS class applied to the container.
	Class string
	Body  []Block
}

// FieldTable is a field reference table.
type FieldTable struct {
	Title  string
	Fields []FieldDefinition
}

// BusinessRules is a list of business rules.
type BusinessRules struct {
	Title string
	Rules []BusinessRule
}

// Steps is a step-by-step guide.
type Steps struct {
	Title string
	Steps []WorkflowStep
}

// Diagram is a workflow diagram panel.
type Diagram struct {
	Title       string
	Description string
	Source      string
}

// Navigation is a breadcrumb block. Labels win over SectionID.
type Navigation struct {
	Labels    []string
	SectionID string
}

// RelatedTopics is a list of cross-references.
type RelatedTopics struct {
	Title  string
	Topics []RelatedTopic
}

func (Paragraph) Kind() BlockKind     { return KindParagraph }
func (List) Kind() BlockKind          { return KindList }
func (Callout) Kind() BlockKind       { return KindCallout }
func (FieldTable) Kind() BlockKind    { return KindFieldTable }
func (BusinessRules) Kind() BlockKind { return KindBusinessRules }
func (Steps) Kind() BlockKind         { return KindSteps }
func (Diagram) Kind() BlockKind       { return KindDiagram }
func (Navigation) Kind() BlockKind    { return KindNavigation }
func (RelatedTopics) Kind() BlockKind { return KindRelated }

func (Paragraph) isBlock()     {}
func (List) isBlock()          {}
func (Callout) isBlock()       {}
func (FieldTable) isBlock()    {}
func (BusinessRules) isBlock() {}
func (Steps) isBlock()         {}
func (Diagram) isBlock()       {}
func (Navigation) isBlock()    {}
func (RelatedTopics) isBlock() {}

// Walk calls fn for every block in blocks, depth first, including blocks
// nested in callouts. path holds the indexes leading to the block.
func Walk(blocks []Block, fn func(path []int, b Block)) {
	walk(nil, blocks, fn)
}

func walk(prefix []int, blocks []Block, fn func(path []int, b Block)) {
	for i, b := range blocks {
		path := append(append([]int(nil), prefix...), i)
		fn(path, b)
		if c, ok := b.(Callout); ok {
			walk(path, c.Body, fn)
		}
	}
}
