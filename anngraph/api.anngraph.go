package anngraph

// EntityKind says whether a rule is attached to a vertex or an edge.
// Some rule forms are only legal on one kind (see CompileRule).
type EntityKind int32

const (
	VertexKind EntityKind = iota
	EdgeKind
)

func (kind EntityKind) String() string {
	if kind == EdgeKind {
		return "edge"
	}
	return "vertex"
}

// Attr is the scalar annotation a rule ultimately computes for its entity.
// It starts undefined ("bottom") and is written at most once; after the
// agent-function stabilizes, it is read-only.
type Attr struct {
	Value   float64
	Defined bool
}

// Define assigns the attribute value and marks it set.
// The engine is the only writer and only calls this on an undefined Attr.
func (a *Attr) Define(v float64) {
	a.Value = v
	a.Defined = true
}

// RuleKind names one of the closed set of rule forms.
type RuleKind int32

const (
	RuleNil RuleKind = iota
	RuleConstant
	RuleCopyVertex
	RuleCopyEdge
	RuleMinIncoming // vertex only
	RuleProduct     // edge only
)

// Rule is the compiled form of an entity's computation rule.
// It is produced exactly once from the rule's source text (see CompileRule)
// and pattern-matched by the engine -- the source text is never re-parsed.
type Rule struct {
	Kind  RuleKind
	Value float64 // RuleConstant
	Index int32   // RuleCopyVertex / RuleCopyEdge, zero-based
}

// String renders the rule back in its source form (one-based indices).
func (r Rule) String() string {
	switch r.Kind {
	case RuleConstant:
		return formatAttrValue(r.Value)
	case RuleCopyVertex:
		return "v " + itoa(r.Index+1)
	case RuleCopyEdge:
		return "e " + itoa(r.Index+1)
	case RuleMinIncoming:
		return "min"
	case RuleProduct:
		return "*"
	}
	return "nil"
}
