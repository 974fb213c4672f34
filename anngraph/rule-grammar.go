package anngraph

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// Rule source grammar (whitespace-delimited):
//
//	<float>            constant
//	min                minimum over incoming edges (vertex only)
//	*                  source-vertex product       (edge only)
//	v <int>            copy from vertex <int>      (one-based)
//	e <int>            copy from edge <int>        (one-based)
var sRuleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Float", Pattern: `[-+]?(\d+\.\d*|\.\d+)([eE][-+]?\d+)?|[-+]?\d+[eE][-+]?\d+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Star", Pattern: `\*`},
	{Name: "whitespace", Pattern: `[ \t]+`},
})

type ruleExpr struct {
	Product bool      `parser:"  @Star"`
	Min     bool      `parser:"| @'min'"`
	Copy    *copyExpr `parser:"| @@"`
	Const   *float64  `parser:"| (@Float | @Int)"`
}

type copyExpr struct {
	Kind  string `parser:"@('v' | 'e')"`
	Index int32  `parser:"@Int"`
}

var sParseRuleExpr = participle.MustBuild[ruleExpr](
	participle.Lexer(sRuleLexer),
)

// CompileRule resolves a rule's source text into its Rule form, validating
// it against the kind of entity it is attached to and the graph's vertex and
// edge counts.  One-based source indices become zero-based here and nowhere
// else.  Compilation happens at load time; a rule that compiles never fails
// to parse again.
func CompileRule(src string, kind EntityKind, numVerts, numEdges int32) (Rule, error) {
	expr, err := sParseRuleExpr.ParseString("", src)
	if err != nil {
		return Rule{}, errors.Wrapf(ErrRuleParse, "%q: %v", src, err)
	}

	switch {
	case expr.Const != nil:
		return Rule{Kind: RuleConstant, Value: *expr.Const}, nil

	case expr.Min:
		if kind != VertexKind {
			return Rule{}, errors.Wrapf(ErrRuleParse, "%q: \"min\" only applies to vertices", src)
		}
		return Rule{Kind: RuleMinIncoming}, nil

	case expr.Product:
		if kind != EdgeKind {
			return Rule{}, errors.Wrapf(ErrRuleParse, "%q: \"*\" only applies to edges", src)
		}
		return Rule{Kind: RuleProduct}, nil

	case expr.Copy != nil:
		idx := expr.Copy.Index - 1
		if expr.Copy.Kind == "v" {
			if idx < 0 || idx >= numVerts {
				return Rule{}, errors.Wrapf(ErrInvalidRef, "%q: vertex %d of %d", src, expr.Copy.Index, numVerts)
			}
			return Rule{Kind: RuleCopyVertex, Index: idx}, nil
		}
		if idx < 0 || idx >= numEdges {
			return Rule{}, errors.Wrapf(ErrInvalidRef, "%q: edge %d of %d", src, expr.Copy.Index, numEdges)
		}
		return Rule{Kind: RuleCopyEdge, Index: idx}, nil
	}

	return Rule{}, errors.Wrapf(ErrRuleParse, "%q", src)
}
