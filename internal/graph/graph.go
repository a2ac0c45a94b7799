// Package graph builds and stores the reference graph: declarations as
// nodes, "A references B" as directed edges, per §4.4. Resolution is
// grounded on dhamidi-sai's inner-class reference fixup (java/resolve.go) —
// the same "try the qualified form, fall back to progressively wider
// scopes" idea, generalized to the four-rule order §4.4 specifies.
package graph

import "github.com/c360studio/deadcode/internal/model"

// Edge is a resolved reference. The builder drops references it cannot
// resolve, so the target is always a registered declaration id.
type Edge struct {
	Source   model.ID
	Target   model.ID
	Kind     model.RefKind
	Location model.Location
}

// Graph is the read-only reference graph produced by Builder. Once built it
// is never mutated again (§5): detectors and reachability only read it.
type Graph struct {
	edges    []Edge
	outgoing map[model.ID][]Edge
	incoming map[model.ID][]Edge
}

func newGraph() *Graph {
	return &Graph{
		outgoing: make(map[model.ID][]Edge),
		incoming: make(map[model.ID][]Edge),
	}
}

func (g *Graph) add(e Edge) {
	g.edges = append(g.edges, e)
	g.outgoing[e.Source] = append(g.outgoing[e.Source], e)
	g.incoming[e.Target] = append(g.incoming[e.Target], e)
}

// Out returns every edge leaving id.
func (g *Graph) Out(id model.ID) []Edge { return g.outgoing[id] }

// In returns every edge arriving at id.
func (g *Graph) In(id model.ID) []Edge { return g.incoming[id] }

// All returns every edge in the graph.
func (g *Graph) All() []Edge { return g.edges }

// InKinds returns the subset of In(id) matching any of kinds.
func (g *Graph) InKinds(id model.ID, kinds ...model.RefKind) []Edge {
	var out []Edge
	for _, e := range g.incoming[id] {
		for _, k := range kinds {
			if e.Kind == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// HasIncoming reports whether id has any incoming edge of the given kinds
// (no kinds means any edge at all).
func (g *Graph) HasIncoming(id model.ID, kinds ...model.RefKind) bool {
	if len(kinds) == 0 {
		return len(g.incoming[id]) > 0
	}
	return len(g.InKinds(id, kinds...)) > 0
}
