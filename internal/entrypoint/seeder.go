// Package entrypoint computes the initial reachable set per §4.5: every
// declaration reachable by framework convention, annotation, XML binding,
// a `main` function, or explicit configuration, without requiring an
// incoming reference.
package entrypoint

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/deadcode/internal/graph"
	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/registry"
)

// DefaultComponentSuffixes are the simple-name suffixes auto-seeded even
// without a resolved inheritance edge (§4.5), since a class extending an
// SDK type the analyzer never saw a declaration for has no Extends edge to
// walk.
var DefaultComponentSuffixes = []string{
	"Activity", "Fragment", "Service", "BroadcastReceiver", "ContentProvider",
	"Application", "ViewModel", "Worker",
}

// frameworkBaseClasses are the inheritance roots §4.5 names explicitly;
// transitively extending one of these seeds the subclass even when its
// simple name doesn't match a configured suffix.
var frameworkBaseClasses = map[string]bool{
	"Activity": true, "Fragment": true, "Service": true,
	"BroadcastReceiver": true, "ContentProvider": true, "Application": true,
	"Worker": true,
}

// Config carries the user-configurable parts of seeding (§6 config file:
// entry_points, retain_patterns, android.component_patterns).
type Config struct {
	EntryPoints       []string // exact FQName matches, any kind
	RetainPatterns    []string // glob against simple names
	ComponentPatterns []string // additional suffixes beyond DefaultComponentSuffixes
}

// Seeder computes the initial reachable set.
type Seeder struct {
	reg *registry.Registry
	g   *graph.Graph
	cfg Config
}

// New creates a Seeder bound to a built Registry and Graph.
func New(reg *registry.Registry, g *graph.Graph, cfg Config) *Seeder {
	return &Seeder{reg: reg, g: g, cfg: cfg}
}

// Seed returns the set of declaration ids reachable by seeding rules. The
// returned set feeds reachability as the traversal's frontier.
func (s *Seeder) Seed() map[model.ID]bool {
	seeds := make(map[model.ID]bool)
	suffixes := append(append([]string{}, DefaultComponentSuffixes...), s.cfg.ComponentPatterns...)

	all := s.reg.All()
	for _, d := range all {
		switch {
		case isEntryFunction(d):
			seeds[d.ID] = true
		case s.isInheritanceSeeded(d, suffixes):
			seeds[d.ID] = true
		case s.isAnnotationSeeded(d):
			seeds[d.ID] = true
		case s.isXMLBound(d):
			seeds[d.ID] = true
		case s.isConfiguredEntryPoint(d):
			seeds[d.ID] = true
		case s.matchesRetainPattern(d):
			seeds[d.ID] = true
		}
	}

	// Framework-annotated classes (e.g. @Module, @Dao) seed every member
	// that itself carries a recognized annotation, per §4.5.
	for _, d := range all {
		if !hasAnyAnnotation(d, frameworkClassAnnotations) {
			continue
		}
		for _, member := range s.reg.Children(d.ID) {
			if hasAnyAnnotation(member, RetainAnnotations) {
				seeds[member.ID] = true
			}
		}
	}

	return seeds
}

func isEntryFunction(d *model.Declaration) bool {
	return d.Kind == model.KindFunction && d.Parent == nil && d.SimpleName == "main"
}

func (s *Seeder) isInheritanceSeeded(d *model.Declaration, suffixes []string) bool {
	if d.Kind != model.KindClass && d.Kind != model.KindDataClass && d.Kind != model.KindValueClass {
		return false
	}
	for _, suffix := range suffixes {
		if hasSuffix(d.SimpleName, suffix) {
			return true
		}
	}
	return s.extendsFrameworkBase(d.ID, map[model.ID]bool{})
}

func (s *Seeder) extendsFrameworkBase(id model.ID, visited map[model.ID]bool) bool {
	if visited[id] {
		return false
	}
	visited[id] = true
	for _, e := range s.g.Out(id) {
		if e.Kind != model.RefExtends && e.Kind != model.RefImplements {
			continue
		}
		if frameworkBaseClasses[e.Target.FQName] || frameworkBaseClasses[simpleAnnotationName(e.Target.FQName)] {
			return true
		}
		if s.extendsFrameworkBase(e.Target, visited) {
			return true
		}
	}
	return false
}

func hasSuffix(name, suffix string) bool {
	if len(name) <= len(suffix) {
		return false
	}
	return name[len(name)-len(suffix):] == suffix
}

func (s *Seeder) isAnnotationSeeded(d *model.Declaration) bool {
	return hasAnyAnnotation(d, RetainAnnotations)
}

func hasAnyAnnotation(d *model.Declaration, set map[string]bool) bool {
	for _, a := range d.Annotations {
		if set[simpleAnnotationName(a)] {
			return true
		}
	}
	return false
}

func (s *Seeder) isXMLBound(d *model.Declaration) bool {
	return s.g.HasIncoming(d.ID, model.RefXmlBinding)
}

func (s *Seeder) isConfiguredEntryPoint(d *model.Declaration) bool {
	for _, ep := range s.cfg.EntryPoints {
		if d.FQName == ep {
			return true
		}
	}
	return false
}

func (s *Seeder) matchesRetainPattern(d *model.Declaration) bool {
	for _, pattern := range s.cfg.RetainPatterns {
		if ok, _ := doublestar.Match(pattern, d.SimpleName); ok {
			return true
		}
	}
	return false
}
