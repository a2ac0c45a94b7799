package graph

import "github.com/c360studio/deadcode/internal/model"

// ZombieCycle is a strongly-connected component in the unreachable subgraph,
// reported per §4.9.
type ZombieCycle struct {
	Members []model.ID
	Size    int
}

// tarjanState carries the per-run bookkeeping for Tarjan's algorithm.
type tarjanState struct {
	graph    *Graph
	index    map[model.ID]int
	lowlink  map[model.ID]int
	onStack  map[model.ID]bool
	stack    []model.ID
	counter  int
	sccs     [][]model.ID
	included map[model.ID]bool
}

// FindZombieCycles runs Tarjan's SCC algorithm restricted to the subgraph
// induced by unreachable, reporting every SCC of size >= 2 whose members are
// all unreachable (§4.9). Nodes are visited in a caller-supplied
// deterministic order so results are stable across runs.
func FindZombieCycles(g *Graph, orderedIDs []model.ID, unreachable map[model.ID]bool) []ZombieCycle {
	st := &tarjanState{
		graph:    g,
		index:    make(map[model.ID]int),
		lowlink:  make(map[model.ID]int),
		onStack:  make(map[model.ID]bool),
		included: unreachable,
	}

	for _, id := range orderedIDs {
		if !unreachable[id] {
			continue
		}
		if _, visited := st.index[id]; !visited {
			st.strongConnect(id)
		}
	}

	var cycles []ZombieCycle
	for _, scc := range st.sccs {
		if len(scc) >= 2 {
			cycles = append(cycles, ZombieCycle{Members: scc, Size: len(scc)})
		}
	}
	return cycles
}

func (st *tarjanState) strongConnect(v model.ID) {
	st.index[v] = st.counter
	st.lowlink[v] = st.counter
	st.counter++
	st.stack = append(st.stack, v)
	st.onStack[v] = true

	for _, e := range st.graph.Out(v) {
		w := e.Target
		if !st.included[w] {
			continue
		}
		if _, visited := st.index[w]; !visited {
			st.strongConnect(w)
			if st.lowlink[w] < st.lowlink[v] {
				st.lowlink[v] = st.lowlink[w]
			}
		} else if st.onStack[w] {
			if st.index[w] < st.lowlink[v] {
				st.lowlink[v] = st.index[w]
			}
		}
	}

	if st.lowlink[v] == st.index[v] {
		var scc []model.ID
		for {
			n := len(st.stack) - 1
			w := st.stack[n]
			st.stack = st.stack[:n]
			st.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		st.sccs = append(st.sccs, scc)
	}
}
