// Package reachability performs the forward traversal from the seed set
// described in §4.6, producing the ReachableSet every detector reads.
package reachability

import (
	"sort"

	"github.com/c360studio/deadcode/internal/graph"
	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/registry"
)

// Set is the closed, monotonic set of reachable declaration ids (§3
// ReachableSet: "monotonic: no declaration leaves the set once added").
type Set struct {
	reached map[model.ID]bool
}

// Contains reports whether id is in the reachable set.
func (s *Set) Contains(id model.ID) bool { return s.reached[id] }

// Len reports the set's size.
func (s *Set) Len() int { return len(s.reached) }

var classLikeKinds = map[model.Kind]bool{
	model.KindClass: true, model.KindDataClass: true, model.KindValueClass: true,
	model.KindObject: true, model.KindCompanionObject: true, model.KindSealedClass: true,
}

// Compute runs the forward traversal to a fixed point. Determinism is
// guaranteed by visiting the worklist in the registry's insertion order at
// each pass, per §4.6 ("processing candidates in registry-insertion order").
func Compute(reg *registry.Registry, g *graph.Graph, seeds map[model.ID]bool) *Set {
	reached := make(map[model.ID]bool, len(seeds))
	var worklist []model.ID
	for id := range seeds {
		reached[id] = true
		worklist = append(worklist, id)
	}
	sortIDs(reg, worklist)

	add := func(id model.ID, queue *[]model.ID) {
		if !reached[id] {
			reached[id] = true
			*queue = append(*queue, id)
		}
	}

	for len(worklist) > 0 {
		var next []model.ID
		sortIDs(reg, worklist)

		for _, id := range worklist {
			for _, e := range g.Out(id) {
				add(e.Target, &next)
			}

			d, ok := reg.Get(id)
			if !ok {
				continue
			}

			switch {
			case classLikeKinds[d.Kind]:
				propagateClassMembers(reg, id, &next, add)
			case d.Kind == model.KindInterface:
				propagateInterfaceDefaults(reg, id, &next, add)
			}

			if d.Kind == model.KindSealedClass {
				propagateSealedVariants(reg, id, &next, add)
			}
			// Enum classes reach themselves but not individual cases (§4.6):
			// no propagation to EnumCase children here by design.
		}

		worklist = next
	}

	return &Set{reached: reached}
}

func propagateClassMembers(reg *registry.Registry, id model.ID, next *[]model.ID, add func(model.ID, *[]model.ID)) {
	for _, child := range reg.Children(id) {
		switch {
		case child.Kind == model.KindConstructor:
			add(child.ID, next)
		case child.Kind == model.KindCompanionObject:
			add(child.ID, next)
		case child.Convention:
			add(child.ID, next)
		case child.HasModifier(model.ModSuspend):
			add(child.ID, next)
		}
	}
}

func propagateInterfaceDefaults(reg *registry.Registry, id model.ID, next *[]model.ID, add func(model.ID, *[]model.ID)) {
	for _, child := range reg.Children(id) {
		if child.Kind == model.KindMethod && !child.HasModifier(model.ModAbstract) {
			add(child.ID, next)
		}
	}
}

func propagateSealedVariants(reg *registry.Registry, id model.ID, next *[]model.ID, add func(model.ID, *[]model.ID)) {
	for _, child := range reg.Children(id) {
		if child.Kind == model.KindSealedVariant {
			add(child.ID, next)
		}
	}
}

// sortIDs orders ids by registry insertion position; ids the registry does
// not hold sort after every registered id, by their ID fields.
func sortIDs(reg *registry.Registry, ids []model.ID) {
	order := make(map[model.ID]int)
	for i, d := range reg.All() {
		order[d.ID] = i
	}
	sort.Slice(ids, func(i, j int) bool {
		oi, iok := order[ids[i]]
		oj, jok := order[ids[j]]
		if iok != jok {
			return iok
		}
		if iok {
			return oi < oj
		}
		if ids[i].FQName != ids[j].FQName {
			return ids[i].FQName < ids[j].FQName
		}
		if ids[i].Kind != ids[j].Kind {
			return ids[i].Kind < ids[j].Kind
		}
		return ids[i].Disambiguator < ids[j].Disambiguator
	})
}

// Unreached returns every registered declaration id NOT in the reachable
// set, in registry order — the candidate pool for DC001 and for zombie-cycle
// detection.
func Unreached(reg *registry.Registry, s *Set) []model.ID {
	var out []model.ID
	for _, d := range reg.All() {
		if !s.reached[d.ID] {
			out = append(out, d.ID)
		}
	}
	return out
}
