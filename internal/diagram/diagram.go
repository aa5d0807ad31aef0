// Package diagram parses and validates workflow diagram descriptions.
//
// The accepted language is the Mermaid flowchart subset used by the manual:
// a flowchart/graph header with an optional direction, node chains with
// shaped labels and labelled arrows, nestable subgraphs, and style, classDef,
// class and linkStyle directives. Layout stays with the external diagram
// engine; this package only guarantees that what is handed over is well
// formed, and reports structured errors with line and column otherwise.
package diagram

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Directions accepted in headers and direction statements.
var Directions = []string{"TD", "TB", "BT", "LR", "RL"}

// Shape is the outline of a node.
type Shape string

const (
	ShapeDefault    Shape = "default"
	ShapeRect       Shape = "rect"
	ShapeRound      Shape = "round"
	ShapeDiamond    Shape = "diamond"
	ShapeSubroutine Shape = "subroutine"
	ShapeCircle     Shape = "circle"
	ShapeFlag       Shape = "flag"
)

// Node is a flowchart node in order of first appearance.
type Node struct {
	ID    string
	Label string
	Shape Shape
	Class string
}

// Edge is a directed (or undirected, for ---) link between two nodes.
type Edge struct {
	From  string
	To    string
	Label string
	Arrow string
}

// Subgraph is a named grouping of nodes.
type Subgraph struct {
	ID    string
	Title string
	Nodes []string
}

// Graph is a parsed and validated flowchart.
type Graph struct {
	Direction string
	Nodes     []Node
	Edges     []Edge
	Subgraphs []Subgraph
	Classes   []string
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Outline renders the edges as one line per edge, using node labels, for
// text-only output. Isolated nodes get a line of their own.
func (g *Graph) Outline() []string {
	label := func(id string) string {
		if n, ok := g.Node(id); ok && n.Label != "" {
			return n.Label
		}
		return id
	}

	linked := make(map[string]bool)
	lines := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		linked[e.From], linked[e.To] = true, true
		line := label(e.From) + " → " + label(e.To)
		if e.Label != "" {
			line += " [" + e.Label + "]"
		}
		lines = append(lines, line)
	}
	for _, n := range g.Nodes {
		if !linked[n.ID] {
			lines = append(lines, label(n.ID))
		}
	}
	return lines
}

// SyntaxError reports source that does not match the grammar.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("diagram syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Issue is one semantic problem in a syntactically valid diagram.
type Issue struct {
	Line    int
	Column  int
	Message string
}

// ValidationError reports every semantic issue found in a diagram.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		i := e.Issues[0]
		return fmt.Sprintf("invalid diagram at %d:%d: %s", i.Line, i.Column, i.Message)
	}
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = fmt.Sprintf("%d:%d: %s", issue.Line, issue.Column, issue.Message)
	}
	return fmt.Sprintf("invalid diagram (%d issues): %s", len(e.Issues), strings.Join(msgs, "; "))
}

// Parse parses and validates src. The error is a *SyntaxError or a
// *ValidationError.
func Parse(src string) (*Graph, error) {
	ast, err := flowParser.ParseString("", src)
	if err != nil {
		return nil, toSyntaxError(err)
	}

	b := newBuilder()
	b.checkDirection(ast.Direction, ast.Pos.Line, ast.Pos.Column)
	b.collect(ast.Body, nil)
	b.resolve()

	if len(b.graph.Nodes) == 0 {
		b.issue(ast.Pos.Line, ast.Pos.Column, "diagram has no nodes")
	}
	if len(b.issues) > 0 {
		sort.SliceStable(b.issues, func(i, j int) bool {
			if b.issues[i].Line != b.issues[j].Line {
				return b.issues[i].Line < b.issues[j].Line
			}
			return b.issues[i].Column < b.issues[j].Column
		})
		return nil, &ValidationError{Issues: b.issues}
	}
	return b.graph, nil
}

// Validate reports whether src is a valid diagram.
func Validate(src string) error {
	_, err := Parse(src)
	return err
}

func toSyntaxError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &SyntaxError{Line: pos.Line, Column: pos.Column, Message: perr.Message()}
	}
	return &SyntaxError{Message: err.Error()}
}

type builder struct {
	graph     *Graph
	nodeIndex map[string]int
	nodePos   map[string]lexer.Position
	subgraphs map[string]bool
	classDefs map[string]bool
	deferred  []func()
	issues    []Issue
}

func newBuilder() *builder {
	return &builder{
		graph:     &Graph{},
		nodeIndex: make(map[string]int),
		nodePos:   make(map[string]lexer.Position),
		subgraphs: make(map[string]bool),
		classDefs: map[string]bool{"default": true},
	}
}

func (b *builder) issue(line, column int, format string, args ...interface{}) {
	b.issues = append(b.issues, Issue{Line: line, Column: column, Message: fmt.Sprintf(format, args...)})
}

func (b *builder) checkDirection(dir string, line, column int) {
	if dir == "" {
		return
	}
	for _, d := range Directions {
		if dir == d {
			if b.graph.Direction == "" {
				b.graph.Direction = dir
			}
			return
		}
	}
	b.issue(line, column, "unknown direction %q (want one of %s)", dir, strings.Join(Directions, ", "))
}

// collect walks statements, registering nodes, edges, subgraphs and class
// definitions. References are checked later by resolve, once every node is
// known.
func (b *builder) collect(body []*statement, group *Subgraph) {
	for _, st := range body {
		switch {
		case st.Subgraph != nil:
			b.collectSubgraph(st.Subgraph)
		case st.Direction != nil:
			b.checkDirection(st.Direction.Value, st.Direction.Pos.Line, st.Direction.Pos.Column)
		case st.Chain != nil:
			b.collectChain(st.Chain, group)
		case st.ClassDef != nil:
			for _, name := range st.ClassDef.Names {
				b.classDefs[name] = true
				b.graph.Classes = append(b.graph.Classes, name)
			}
		case st.Style != nil:
			s := st.Style
			b.later(func() {
				if !b.known(s.Target) {
					b.issue(s.Pos.Line, s.Pos.Column, "style references unknown node %q", s.Target)
				}
			})
		case st.Class != nil:
			c := st.Class
			b.later(func() {
				if !b.classDefs[c.Class] {
					b.issue(c.Pos.Line, c.Pos.Column, "class %q is not defined by classDef", c.Class)
				}
				for _, target := range c.Targets {
					if !b.known(target) {
						b.issue(c.Pos.Line, c.Pos.Column, "class assigned to unknown node %q", target)
					}
				}
			})
		case st.LinkStyle != nil:
			ls := st.LinkStyle
			b.later(func() {
				for _, idx := range ls.Indexes {
					if idx == "default" {
						continue
					}
					n, err := strconv.Atoi(idx)
					if err != nil || n < 0 || n >= len(b.graph.Edges) {
						b.issue(ls.Pos.Line, ls.Pos.Column,
							"linkStyle index %s out of range (diagram has %d links)", idx, len(b.graph.Edges))
					}
				}
			})
		}
	}
}

func (b *builder) collectSubgraph(sg *subgraph) {
	id := sg.ID
	title := trimLabel(sg.Title)
	if len(sg.Words) > 0 {
		// "subgraph Approval Flow" names the subgraph by its whole title.
		id = strings.Join(append([]string{sg.ID}, sg.Words...), " ")
		if title == "" {
			title = id
		}
	}
	if id == "" {
		id = title
	}
	if id != "" {
		if b.subgraphs[id] {
			b.issue(sg.Pos.Line, sg.Pos.Column, "duplicate subgraph %q", id)
		}
		b.subgraphs[id] = true
	}

	group := &Subgraph{ID: id, Title: title}
	b.collect(sg.Body, group)
	b.graph.Subgraphs = append(b.graph.Subgraphs, *group)
}

func (b *builder) collectChain(c *chain, group *Subgraph) {
	b.addNode(c.From, group)
	prev := c.From.ID
	for _, l := range c.Links {
		b.addNode(l.To, group)
		b.graph.Edges = append(b.graph.Edges, Edge{
			From:  prev,
			To:    l.To.ID,
			Label: strings.TrimSpace(strings.Trim(l.Label, "|")),
			Arrow: l.Arrow,
		})
		prev = l.To.ID
	}
}

func (b *builder) addNode(ref *nodeRef, group *Subgraph) {
	if ref.Class != "" {
		cls := ref.Class
		b.later(func() {
			if !b.classDefs[cls] {
				b.issue(ref.Pos.Line, ref.Pos.Column, "class %q is not defined by classDef", cls)
			}
		})
	}

	// A bare reference to a subgraph id links to the subgraph itself.
	if ref.Shape == "" && b.subgraphs[ref.ID] {
		return
	}

	shape, label := splitShape(ref.Shape)
	if i, ok := b.nodeIndex[ref.ID]; ok {
		n := &b.graph.Nodes[i]
		if n.Label == "" && label != "" {
			n.Label, n.Shape = label, shape
		}
		if ref.Class != "" {
			n.Class = ref.Class
		}
	} else {
		b.nodeIndex[ref.ID] = len(b.graph.Nodes)
		b.nodePos[ref.ID] = ref.Pos
		b.graph.Nodes = append(b.graph.Nodes, Node{ID: ref.ID, Label: label, Shape: shape, Class: ref.Class})
	}
	if group != nil {
		for _, id := range group.Nodes {
			if id == ref.ID {
				return
			}
		}
		group.Nodes = append(group.Nodes, ref.ID)
	}
}

func (b *builder) known(id string) bool {
	_, ok := b.nodeIndex[id]
	return ok || b.subgraphs[id]
}

// later queues a reference check until every node has been collected.
func (b *builder) later(fn func()) {
	b.deferred = append(b.deferred, fn)
}

func (b *builder) resolve() {
	for _, fn := range b.deferred {
		fn()
	}
	for _, n := range b.graph.Nodes {
		if b.subgraphs[n.ID] {
			pos := b.nodePos[n.ID]
			b.issue(pos.Line, pos.Column, "node %q has the same id as a subgraph", n.ID)
		}
	}
}

// splitShape turns "[[Label]]" into (ShapeSubroutine, "Label").
func splitShape(s string) (Shape, string) {
	switch {
	case s == "":
		return ShapeDefault, ""
	case strings.HasPrefix(s, "[["):
		return ShapeSubroutine, trimLabel(s[2 : len(s)-2])
	case strings.HasPrefix(s, "(("):
		return ShapeCircle, trimLabel(s[2 : len(s)-2])
	case strings.HasPrefix(s, "["):
		return ShapeRect, trimLabel(s[1 : len(s)-1])
	case strings.HasPrefix(s, "("):
		return ShapeRound, trimLabel(s[1 : len(s)-1])
	case strings.HasPrefix(s, "{"):
		return ShapeDiamond, trimLabel(s[1 : len(s)-1])
	case strings.HasPrefix(s, ">"):
		return ShapeFlag, trimLabel(s[1 : len(s)-1])
	}
	return ShapeDefault, trimLabel(s)
}

// trimLabel strips whitespace, surrounding quotes and a subgraph title's
// brackets.
func trimLabel(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}
