package graph

import (
	"sort"
	"strings"

	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/registry"
	"github.com/c360studio/deadcode/internal/sourceparse"
)

// fileInfo is the per-file context the builder needs for import-aware
// resolution: its declared package and its import table.
type fileInfo struct {
	Package string
	Imports []string
}

// Builder performs the second-pass reference resolution described in §4.4.
// It is the single writer that turns every parser's pending RawReferences
// into resolved Edges against the already-populated Registry.
type Builder struct {
	reg   *registry.Registry
	files map[string]fileInfo
}

// NewBuilder creates a Builder bound to a populated Registry.
func NewBuilder(reg *registry.Registry) *Builder {
	return &Builder{reg: reg, files: make(map[string]fileInfo)}
}

// Build resolves every reference in every parsed file and returns the
// completed, read-only Graph. Files are processed in lexicographic path
// order for determinism, mirroring registry insertion order.
func (b *Builder) Build(files []*sourceparse.ParsedFile) *Graph {
	sorted := make([]*sourceparse.ParsedFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, pf := range sorted {
		b.files[pf.Path] = fileInfo{Package: pf.Package, Imports: pf.Imports}
	}

	g := newGraph()
	for _, pf := range sorted {
		for _, raw := range pf.References {
			b.resolveOne(g, pf.Path, raw)
		}
	}
	return g
}

// resolveOne applies the four-step resolution order from §4.4, stopping at
// the first rule that produces at least one candidate. Rule 4 (simple-name
// fallback) emits edges to every remaining candidate rather than guessing,
// preserving the over-approximation the spec requires.
func (b *Builder) resolveOne(g *Graph, sourceFile string, raw sourceparse.RawReference) {
	sourceID := model.ID{FQName: raw.SourceFQName, Kind: raw.SourceKind}

	// Rule 1: qualified name match on the reference's written form.
	if strings.Contains(raw.TargetName, ".") {
		if candidates := b.reg.ByFQName(raw.TargetName); len(candidates) > 0 {
			b.emit(g, sourceID, candidates, raw)
			return
		}
	}

	// Rule 2: import-aware match — combine the file's imports with the
	// current package to resolve a simple name written without qualification.
	info := b.files[sourceFile]
	if candidates := b.resolveViaImports(info, raw.TargetName); len(candidates) > 0 {
		b.emit(g, sourceID, candidates, raw)
		return
	}

	// Rule 3: enclosing-scope match — walk outward from the source
	// declaration's own qualified prefix, then its package, then the
	// default (unqualified) package, trying TargetName as a suffix at each
	// level (the same "pkg.SimpleName" widening dhamidi-sai's inner-class
	// fixup performs, generalized to arbitrary nesting depth).
	if candidates := b.resolveViaEnclosingScope(raw.SourceFQName, info.Package, raw.TargetName); len(candidates) > 0 {
		b.emit(g, sourceID, candidates, raw)
		return
	}

	// Rule 4: simple-name fallback across the whole registry. If multiple
	// candidates remain, emit edges to all of them (§4.4: "if multiple
	// candidates remain, emit edges to all").
	simple := raw.TargetName
	if idx := strings.LastIndexByte(simple, '.'); idx != -1 {
		simple = simple[idx+1:]
	}
	if candidates := b.reg.BySimpleName(simple); len(candidates) > 0 {
		b.emit(g, sourceID, candidates, raw)
		return
	}

	// Unresolved: dropped by design (§4.4, §7) — the over-approximation
	// means we prefer a missed reference to a false "used" signal.
}

func (b *Builder) resolveViaImports(info fileInfo, targetName string) []*model.Declaration {
	simple := targetName
	if strings.Contains(targetName, ".") {
		simple = targetName
	} else {
		for _, imp := range info.Imports {
			imp = strings.TrimSuffix(imp, ".*")
			if strings.HasSuffix(imp, "."+targetName) || imp == targetName {
				if c := b.reg.ByFQName(imp); len(c) > 0 {
					return c
				}
			}
		}
		if info.Package != "" {
			simple = info.Package + "." + targetName
		}
	}
	return b.reg.ByFQName(simple)
}

func (b *Builder) resolveViaEnclosingScope(sourceFQName, pkg, targetName string) []*model.Declaration {
	if strings.Contains(targetName, ".") {
		return nil
	}
	scopes := enclosingScopes(sourceFQName)
	if pkg != "" {
		scopes = append(scopes, pkg)
	}
	scopes = append(scopes, "") // default package
	for _, scope := range scopes {
		candidate := targetName
		if scope != "" {
			candidate = scope + "." + targetName
		}
		if c := b.reg.ByFQName(candidate); len(c) > 0 {
			return c
		}
	}
	return nil
}

// enclosingScopes returns the dotted prefixes of fqName from innermost to
// outermost, excluding fqName itself: "a.b.C.m" -> ["a.b.C", "a.b", "a"].
func enclosingScopes(fqName string) []string {
	var scopes []string
	rest := fqName
	for {
		idx := strings.LastIndexByte(rest, '.')
		if idx == -1 {
			break
		}
		rest = rest[:idx]
		scopes = append(scopes, rest)
	}
	return scopes
}

func (b *Builder) emit(g *Graph, sourceID model.ID, candidates []*model.Declaration, raw sourceparse.RawReference) {
	for _, c := range candidates {
		g.add(Edge{Source: sourceID, Target: c.ID, Kind: raw.Kind, Location: raw.Location})
	}
}
