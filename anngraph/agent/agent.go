// Package agent applies a graph's agent-function: bounded fixpoint iteration
// over entity rules until every attribute stabilizes.
//
// There is deliberately no dependency graph or topological sort here.  The
// engine brute-forces rounds of vertex-then-edge passes and lets values
// propagate; an entity whose dependencies are not yet set is simply retried
// next round.  Evaluation order is part of the contract: vertices before
// edges within a round, ascending ID within each pass, and values assigned
// earlier in a pass are visible to entities later in the same pass.
package agent

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/annsys/go-anngraph/anngraph"
)

// NonConvergence reports the entities whose attrs were still unset when
// iteration stopped.  It is not fatal: resolved attrs stand and the caller
// is expected to emit them, marking the unresolved ones.
type NonConvergence struct {
	Rounds   int32
	Vertices []int32 // unresolved vertex IDs
	Edges    []int32 // unresolved edge IDs
}

func (nc *NonConvergence) Error() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "no convergence after %d round(s):", nc.Rounds)
	for _, vi := range nc.Vertices {
		fmt.Fprintf(&b, " v%d", vi+1)
	}
	for _, ei := range nc.Edges {
		fmt.Fprintf(&b, " e%d", ei+1)
	}
	return b.String()
}

// AgentFunction evaluates compiled rules against a loaded graph.
// It is the sole writer of attrs for the duration of Execute.
type AgentFunction struct {
	graph *anngraph.Graph
}

func New(G *anngraph.Graph) *AgentFunction {
	return &AgentFunction{graph: G}
}

// Execute runs rounds until a round assigns nothing (fixpoint) or the round
// bound NV+NE+1 is hit, whichever comes first.  It returns the number of
// rounds performed and, if any entity is still unset, a *NonConvergence.
// Attrs only ever transition unset -> set; re-running Execute on a
// stabilized graph performs zero writes and returns after one round.
func (af *AgentFunction) Execute() (int32, error) {
	G := af.graph
	if G == nil {
		return 0, anngraph.ErrNilGraph
	}

	bound := G.NumVerts() + G.NumEdges() + 1

	rounds := int32(0)
	for rounds < bound {
		rounds++
		assigned, err := af.runRound()
		if err != nil {
			return rounds, err
		}
		klog.V(2).Infof("round %d: %d attr(s) assigned", rounds, assigned)
		if assigned == 0 {
			break
		}
	}

	nc := &NonConvergence{Rounds: rounds}
	for _, v := range G.Vertices() {
		if !v.Attr.Defined {
			nc.Vertices = append(nc.Vertices, v.ID)
		}
	}
	for _, e := range G.Edges() {
		if !e.Attr.Defined {
			nc.Edges = append(nc.Edges, e.ID)
		}
	}
	if len(nc.Vertices) > 0 || len(nc.Edges) > 0 {
		return rounds, nc
	}
	return rounds, nil
}

// runRound makes one pass over all vertices then all edges, in ID order,
// and returns how many attrs it assigned.
func (af *AgentFunction) runRound() (int32, error) {
	assigned := int32(0)

	for _, v := range af.graph.Vertices() {
		if v.Attr.Defined {
			continue
		}
		set, err := af.evalVertex(v)
		if err != nil {
			return assigned, err
		}
		if set {
			assigned++
		}
	}

	for _, e := range af.graph.Edges() {
		if e.Attr.Defined {
			continue
		}
		set, err := af.evalEdge(e)
		if err != nil {
			return assigned, err
		}
		if set {
			assigned++
		}
	}

	return assigned, nil
}

func (af *AgentFunction) evalVertex(v *anngraph.Vertex) (bool, error) {
	switch v.Rule.Kind {

	case anngraph.RuleConstant:
		v.Attr.Define(v.Rule.Value)
		return true, nil

	case anngraph.RuleCopyVertex:
		src, err := af.graph.Vertex(v.Rule.Index)
		if err != nil {
			return false, err
		}
		if src.Attr.Defined {
			v.Attr.Define(src.Attr.Value)
			return true, nil
		}

	case anngraph.RuleCopyEdge:
		src, err := af.graph.Edge(v.Rule.Index)
		if err != nil {
			return false, err
		}
		if src.Attr.Defined {
			v.Attr.Define(src.Attr.Value)
			return true, nil
		}

	case anngraph.RuleMinIncoming:
		// A vertex with no incoming edges has no minimum to take; the rule
		// stays unresolved and surfaces as non-convergence rather than
		// inventing a default.
		if len(v.In) == 0 {
			return false, nil
		}
		min := 0.0
		for i, e := range v.In {
			if !e.Attr.Defined {
				return false, nil
			}
			if i == 0 || e.Attr.Value < min {
				min = e.Attr.Value
			}
		}
		v.Attr.Define(min)
		return true, nil

	default:
		return false, errors.Wrapf(anngraph.ErrRuleParse, "vertex %d: rule kind %d", v.ID+1, v.Rule.Kind)
	}

	return false, nil
}

func (af *AgentFunction) evalEdge(e *anngraph.Edge) (bool, error) {
	switch e.Rule.Kind {

	case anngraph.RuleConstant:
		e.Attr.Define(e.Rule.Value)
		return true, nil

	case anngraph.RuleCopyVertex:
		src, err := af.graph.Vertex(e.Rule.Index)
		if err != nil {
			return false, err
		}
		if src.Attr.Defined {
			e.Attr.Define(src.Attr.Value)
			return true, nil
		}

	case anngraph.RuleCopyEdge:
		src, err := af.graph.Edge(e.Rule.Index)
		if err != nil {
			return false, err
		}
		if src.Attr.Defined {
			e.Attr.Define(src.Attr.Value)
			return true, nil
		}

	case anngraph.RuleProduct:
		src, err := af.graph.Vertex(e.Source)
		if err != nil {
			return false, err
		}
		if !src.Attr.Defined {
			return false, nil
		}
		// Product over zero incoming edges is the multiplicative identity.
		product := 1.0
		for _, in := range src.In {
			if !in.Attr.Defined {
				return false, nil
			}
			product *= in.Attr.Value
		}
		e.Attr.Define(src.Attr.Value * product)
		return true, nil

	default:
		return false, errors.Wrapf(anngraph.ErrRuleParse, "edge %d: rule kind %d", e.ID+1, e.Rule.Kind)
	}

	return false, nil
}
