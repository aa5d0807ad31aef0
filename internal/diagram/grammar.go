package diagram

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// flowLexer tokenizes the flowchart subset. Rules are tried in order, so
// keywords and style property lists must precede identifiers.
var flowLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `%%[^\n]*`},
	{Name: "Newline", Pattern: `[\r\n;]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Keyword", Pattern: `\b(?:flowchart|graph|subgraph|end|direction|style|classDef|class|linkStyle)\b`},
	{Name: "Props", Pattern: `[A-Za-z-]+:[ \t]*[^:\s;][^\n;]*`},
	{Name: "Arrow", Pattern: `<?(?:-\.+->|-\.+-|={2,}>|={3,}|-{2,}>|-{3,})`},
	{Name: "Label", Pattern: `\|[^|\n]*\|`},
	{Name: "Shape", Pattern: `\[\[[^\]\n]*\]\]|\[[^\]\n]*\]|\(\([^)\n]*\)\)|\([^)\n]*\)|\{[^}\n]*\}|>[^\]\n]*\]`},
	{Name: "String", Pattern: `"[^"\n]*"`},
	{Name: "Ident", Pattern: `[A-Za-z0-9_]+`},
	{Name: "Punct", Pattern: `:::|,`},
})

//nolint:govet // participle grammar tags are not standard struct tags
type flowchart struct {
	Pos       lexer.Position
	Kind      string       `Newline* @("flowchart" | "graph")`
	Direction string       `@Ident?`
	Body      []*statement `@@*`
}

//nolint:govet
type statement struct {
	Pos       lexer.Position
	Subgraph  *subgraph    `  @@`
	Direction *direction   `| @@`
	Style     *styleStmt   `| @@`
	ClassDef  *classDef    `| @@`
	Class     *classAssign `| @@`
	LinkStyle *linkStyle   `| @@`
	Chain     *chain       `| @@`
	Blank     bool         `| @Newline`
}

//nolint:govet
type subgraph struct {
	Pos   lexer.Position
	ID    string       `"subgraph" @Ident?`
	Words []string     `@Ident*`
	Title string       `@(Shape | String)?`
	Body  []*statement `@@* "end"`
}

//nolint:govet
type direction struct {
	Pos   lexer.Position
	Value string `"direction" @Ident`
}

//nolint:govet
type styleStmt struct {
	Pos    lexer.Position
	Target string `"style" @Ident`
	Props  string `@Props`
}

//nolint:govet
type classDef struct {
	Pos   lexer.Position
	Names []string `"classDef" @Ident ( "," @Ident )*`
	Props string   `@Props`
}

//nolint:govet
type classAssign struct {
	Pos     lexer.Position
	Targets []string `"class" @Ident ( "," @Ident )*`
	Class   string   `@Ident`
}

//nolint:govet
type linkStyle struct {
	Pos     lexer.Position
	Indexes []string `"linkStyle" @Ident ( "," @Ident )*`
	Props   string   `@Props`
}

//nolint:govet
type chain struct {
	Pos   lexer.Position
	From  *nodeRef `@@`
	Links []*link  `@@*`
}

//nolint:govet
type nodeRef struct {
	Pos   lexer.Position
	ID    string `@Ident`
	Shape string `@Shape?`
	Class string `( ":::" @Ident )?`
}

//nolint:govet
type link struct {
	Pos   lexer.Position
	Arrow string   `@Arrow`
	Label string   `@Label?`
	To    *nodeRef `@@`
}

var flowParser = participle.MustBuild[flowchart](
	participle.Lexer(flowLexer),
	participle.Elide("Comment", "Whitespace"),
)
