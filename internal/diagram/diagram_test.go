package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewFlow = `flowchart TD
    %% annual review cycle
    A[Self assessment] --> B{Manager review}
    B -->|approved| C([Calibration])
    B -->|changes requested| A
    subgraph HR [HR operations]
        C --> D[[Publish ratings]]
    end
    classDef done fill:#9f6,stroke:#333
    class D done
    style A fill:#eef,stroke:#88f
    linkStyle 0,1 stroke:#f66
`

func TestParseReviewFlow(t *testing.T) {
	g, err := Parse(reviewFlow)
	require.NoError(t, err)

	assert.Equal(t, "TD", g.Direction)
	require.Len(t, g.Nodes, 4)
	assert.Equal(t, Node{ID: "A", Label: "Self assessment", Shape: ShapeRect}, g.Nodes[0])
	assert.Equal(t, Node{ID: "B", Label: "Manager review", Shape: ShapeDiamond}, g.Nodes[1])
	assert.Equal(t, ShapeRound, g.Nodes[2].Shape)
	assert.Equal(t, "Calibration", g.Nodes[2].Label)
	assert.Equal(t, Node{ID: "D", Label: "Publish ratings", Shape: ShapeSubroutine}, g.Nodes[3])

	require.Len(t, g.Edges, 4)
	assert.Equal(t, Edge{From: "B", To: "C", Label: "approved", Arrow: "-->"}, g.Edges[1])
	assert.Equal(t, "changes requested", g.Edges[2].Label)

	require.Len(t, g.Subgraphs, 1)
	assert.Equal(t, "HR", g.Subgraphs[0].ID)
	assert.Equal(t, "HR operations", g.Subgraphs[0].Title)
	assert.Equal(t, []string{"C", "D"}, g.Subgraphs[0].Nodes)
	assert.Equal(t, []string{"done"}, g.Classes)
}

func TestParseHeaderVariants(t *testing.T) {
	for _, src := range []string{
		"graph LR\nA-->B",
		"flowchart\nA --- B",
		"\n\nflowchart RL; A -.-> B; B ==> C",
		"graph TB\nA((Start)) --> B>Flag] === C",
	} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			assert.NoError(t, err)
		})
	}
}

func TestParseChainsLinkEveryPair(t *testing.T) {
	g, err := Parse("flowchart LR\nA --> B --> C --> A")
	require.NoError(t, err)

	require.Len(t, g.Edges, 3)
	assert.Equal(t, "C", g.Edges[2].From)
	assert.Equal(t, "A", g.Edges[2].To)
	assert.Len(t, g.Nodes, 3)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"missing header", "A --> B", 1},
		{"dangling arrow", "flowchart TD\nA -->", 2},
		{"unterminated subgraph", "flowchart TD\nsubgraph S\nA --> B\n", 2},
		{"unsupported arrow text", "flowchart TD\nA -- text --> B", 0},
		{"empty", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)

			var syn *SyntaxError
			require.ErrorAs(t, err, &syn)
			assert.GreaterOrEqual(t, syn.Line, tt.line)
			assert.NotEmpty(t, syn.Message)
			assert.Contains(t, syn.Error(), "diagram syntax error")
		})
	}
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{"bad direction", "flowchart XY\nA-->B", `unknown direction "XY"`},
		{"style unknown node", "flowchart TD\nA-->B\nstyle Z fill:#fff", `style references unknown node "Z"`},
		{"undefined class", "flowchart TD\nA-->B\nclass A missing", `class "missing" is not defined`},
		{"class unknown node", "flowchart TD\nA-->B\nclassDef hot fill:#f00\nclass Q hot", `unknown node "Q"`},
		{"inline undefined class", "flowchart TD\nA:::ghost-->B", `class "ghost" is not defined`},
		{"link index out of range", "flowchart TD\nA-->B\nlinkStyle 3 stroke:#f00", "linkStyle index 3 out of range"},
		{"duplicate subgraph", "flowchart TD\nsubgraph S\nA\nend\nsubgraph S\nB\nend", `duplicate subgraph "S"`},
		{"no nodes", "flowchart TD\n", "diagram has no nodes"},
		{"node before subgraph of same id", "flowchart TD\nX --> S\nsubgraph S [Group]\nA --> B\nend", `node "S" has the same id as a subgraph`},
		{"shaped node after subgraph of same id", "flowchart TD\nsubgraph S [Group]\nA --> B\nend\nS[Node] --> A", `node "S" has the same id as a subgraph`},
		{"shaped node inside subgraph of same id", "flowchart TD\nsubgraph S [Group]\nS[Inner] --> B\nend", `node "S" has the same id as a subgraph`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Issues)
			assert.Contains(t, verr.Error(), tt.message)
			assert.Positive(t, verr.Issues[0].Line)
		})
	}
}

func TestValidationIssuesAreOrderedByLine(t *testing.T) {
	src := "flowchart TD\nA-->B\nstyle Y fill:#fff\nstyle X fill:#000"
	err := Validate(src)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 2)
	assert.Equal(t, 3, verr.Issues[0].Line)
	assert.Equal(t, 4, verr.Issues[1].Line)
	assert.Contains(t, verr.Error(), "2 issues")
}

func TestLinkStyleDefaultAndForwardReferences(t *testing.T) {
	src := "flowchart TD\nstyle B fill:#fff\nlinkStyle default stroke:#000\nA-->B"
	assert.NoError(t, Validate(src))
}

func TestEdgesMayTargetSubgraphs(t *testing.T) {
	src := "flowchart LR\nsubgraph Intake\nA-->B\nend\nIntake --> C"
	g, err := Parse(src)
	require.NoError(t, err)

	_, isNode := g.Node("Intake")
	assert.False(t, isNode)
	assert.Equal(t, "Intake", g.Edges[1].From)
}

func TestNodeSharingSubgraphIDIsReportedWhereDeclared(t *testing.T) {
	err := Validate("flowchart TD\nX --> S\nsubgraph S [Group]\nA --> B\nend")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, 2, verr.Issues[0].Line)
}

func TestStylePropertiesMayHaveSpaces(t *testing.T) {
	for _, src := range []string{
		"flowchart TD\nA --> B\nstyle A stroke-dasharray: 5 5",
		"flowchart TD\nA --> B\nstyle A fill: #fff, stroke: #333",
		"flowchart TD\nA --> B\nclassDef hot fill: #f00\nclass A hot",
		"flowchart TD\nA --> B\nlinkStyle 0 stroke: #f66",
	} {
		t.Run(src, func(t *testing.T) {
			assert.NoError(t, Validate(src))
		})
	}
}

func TestSubgraphTitleWithoutBrackets(t *testing.T) {
	g, err := Parse("flowchart TD\nsubgraph Approval Flow\nA --> B\nend")
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	_, phantom := g.Node("Flow")
	assert.False(t, phantom)

	require.Len(t, g.Subgraphs, 1)
	assert.Equal(t, "Approval Flow", g.Subgraphs[0].ID)
	assert.Equal(t, "Approval Flow", g.Subgraphs[0].Title)
	assert.Equal(t, []string{"A", "B"}, g.Subgraphs[0].Nodes)
}

func TestOutline(t *testing.T) {
	g, err := Parse("flowchart TD\nA[Draft goal] -->|submit| B[Approve]\nC[Archive]")
	require.NoError(t, err)

	assert.Equal(t, []string{"Draft goal → Approve [submit]", "Archive"}, g.Outline())
}
