// Package registry holds the deduplicated table of declarations shared by
// every later pipeline stage, per §4.4. A single writer (the pipeline
// orchestrator, standing in for the teacher's graph-builder coordinator)
// drains per-parser append-only queues so concurrent parser tasks never
// touch the map directly (§5 shared-resource policy).
package registry

import (
	"sort"

	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/sourceparse"
)

// Registry is the single source of truth for every Declaration discovered
// during parsing, keyed by its stable ID.
type Registry struct {
	decls        map[model.ID]*model.Declaration
	insertOrder  []model.ID
	bySimpleName map[string][]model.ID
	byFQName     map[string][]model.ID
	byFile       map[string][]model.ID
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		decls:        make(map[model.ID]*model.Declaration),
		bySimpleName: make(map[string][]model.ID),
		byFQName:     make(map[string][]model.ID),
		byFile:       make(map[string][]model.ID),
	}
}

// Ingest consumes every parsed file's raw declarations in file-path order
// (the caller should have already sorted files, e.g. as discovery.Discover
// does) so registry insertion order is deterministic across runs, per §4.6
// ("determinism is guaranteed by processing candidates in registry-insertion
// order").
func (r *Registry) Ingest(files []*sourceparse.ParsedFile) {
	sorted := make([]*sourceparse.ParsedFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, pf := range sorted {
		for _, raw := range pf.Declarations {
			r.add(raw)
		}
	}
}

func (r *Registry) add(raw sourceparse.RawDeclaration) {
	disambig := raw.Disambiguator
	id := model.ID{FQName: raw.FQName, Kind: raw.Kind, Disambiguator: disambig}

	// JVM overloads collide on (FQName, Kind) without a disambiguator; the
	// parser already supplies arity as Disambiguator for Function/Method/
	// Constructor, so a genuine collision here means the same declaration
	// was seen twice (e.g. reprocessed on an incremental re-run) — last
	// write wins, matching the teacher's dedup-by-id semantics.
	var parent *model.ID
	if raw.ParentFQName != "" {
		p := model.ID{FQName: raw.ParentFQName, Kind: raw.ParentKind}
		parent = &p
	}

	decl := &model.Declaration{
		ID: id, FQName: raw.FQName, SimpleName: raw.SimpleName, Kind: raw.Kind,
		Location: raw.Location, Modifiers: raw.Modifiers, Annotations: raw.Annotations,
		Parent: parent, GenericParams: raw.GenericParams, KindData: raw.KindData,
		Synthetic: raw.Synthetic, Convention: raw.Convention,
	}

	if _, exists := r.decls[id]; !exists {
		r.insertOrder = append(r.insertOrder, id)
	}
	r.decls[id] = decl
	r.bySimpleName[raw.SimpleName] = appendUnique(r.bySimpleName[raw.SimpleName], id)
	r.byFQName[raw.FQName] = appendUnique(r.byFQName[raw.FQName], id)
	r.byFile[raw.Location.File] = appendUnique(r.byFile[raw.Location.File], id)
}

func appendUnique(ids []model.ID, id model.ID) []model.ID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// AddResource registers an Android resource as a Declaration so it
// participates in reachability/detection like any other entity (§3
// Resource, §4.5 resource seeding).
func (r *Registry) AddResource(res model.Resource) {
	id := res.DeclarationID()
	if _, exists := r.decls[id]; !exists {
		r.insertOrder = append(r.insertOrder, id)
	}
	r.decls[id] = &model.Declaration{
		ID: id, FQName: res.Name, SimpleName: res.Name, Kind: model.KindResource,
		Location:  model.Location{File: res.File, Line: res.Line},
		KindData:  model.KindSpecific{ResourceType: string(res.Type)},
		Modifiers: map[model.Modifier]bool{},
	}
	r.bySimpleName[res.Name] = appendUnique(r.bySimpleName[res.Name], id)
}

// Get returns the declaration for id, if registered.
func (r *Registry) Get(id model.ID) (*model.Declaration, bool) {
	d, ok := r.decls[id]
	return d, ok
}

// ByFQName returns every declaration (any kind) registered under an exact
// fully-qualified name, for qualified-name reference resolution (§4.4 rule 1).
func (r *Registry) ByFQName(fqName string) []*model.Declaration {
	ids := r.byFQName[fqName]
	out := make([]*model.Declaration, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.decls[id])
	}
	return out
}

// ByFQNameAndKind returns every declaration sharing a qualified name and
// kind, regardless of disambiguator — the set a simple-name/overload lookup
// must consider together (§4.4 resolution rule 4).
func (r *Registry) ByFQNameAndKind(fqName string, kind model.Kind) []*model.Declaration {
	var out []*model.Declaration
	for _, id := range r.insertOrder {
		if id.FQName == fqName && id.Kind == kind {
			out = append(out, r.decls[id])
		}
	}
	return out
}

// BySimpleName returns every declaration (of any kind) with the given
// simple name, in registry-insertion order.
func (r *Registry) BySimpleName(name string) []*model.Declaration {
	ids := r.bySimpleName[name]
	out := make([]*model.Declaration, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.decls[id])
	}
	return out
}

// Children returns every declaration whose Parent equals parentID, in
// insertion order.
func (r *Registry) Children(parentID model.ID) []*model.Declaration {
	var out []*model.Declaration
	for _, id := range r.insertOrder {
		d := r.decls[id]
		if d.Parent != nil && *d.Parent == parentID {
			out = append(out, d)
		}
	}
	return out
}

// All returns every declaration in deterministic registry-insertion order.
func (r *Registry) All() []*model.Declaration {
	out := make([]*model.Declaration, 0, len(r.insertOrder))
	for _, id := range r.insertOrder {
		out = append(out, r.decls[id])
	}
	return out
}

// Len reports the number of registered declarations.
func (r *Registry) Len() int { return len(r.insertOrder) }
