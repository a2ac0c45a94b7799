// Package aggregator implements §4.8's confidence assignment and §5's
// deterministic ordering, plus the baseline and min-confidence filtering
// §6's CLI surface exposes. Detectors emit every finding at
// model.ConfidenceMedium; this package is the only place that raises or
// lowers it.
package aggregator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/c360studio/deadcode/internal/coverage"
	"github.com/c360studio/deadcode/internal/entrypoint"
	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/reachability"
	"github.com/c360studio/deadcode/internal/registry"
	"github.com/c360studio/deadcode/internal/shrinker"
)

// Config bundles the overlays and CLI filtering flags Aggregate needs. A
// zero-value Config runs confidence assignment and deterministic sort only
// — every filter is opt-in, matching the CLI's opt-in flags (§6).
type Config struct {
	Coverage             *coverage.Overlay // nil if --coverage was not supplied
	Shrinker             *shrinker.Usage   // nil if --proguard-usage was not supplied
	MinConfidence        model.Confidence
	HasMinConfidence     bool
	RuntimeOnly          bool
	IncludeRuntimeDead   bool
	BaselineFingerprints map[string]bool // from internal/report's baseline loader
}

// Aggregate assigns final confidence to every finding, optionally adds
// runtime-dead findings, applies baseline/min-confidence/runtime-only
// filtering, and returns the result in the deterministic order §5 requires.
func Aggregate(findings []model.Finding, reg *registry.Registry, reached *reachability.Set, cfg Config) []model.Finding {
	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		out = append(out, assignConfidence(f, reg, cfg))
	}

	if cfg.IncludeRuntimeDead && cfg.Coverage != nil && reached != nil {
		out = append(out, runtimeDeadFindings(reg, reached, cfg.Coverage)...)
	}

	out = filter(out, cfg)
	sortFindings(out)
	return out
}

// assignConfidence applies §4.8 in evidence-strength order: the private/
// internal and public/unrecognized-annotation/framework-pattern rules set
// the static baseline, but a shrinker or coverage hit is concrete runtime
// evidence and always wins, overriding a Low verdict a static-only read
// would otherwise produce.
func assignConfidence(f model.Finding, reg *registry.Registry, cfg Config) model.Finding {
	d, ok := reg.Get(f.Declaration)
	if !ok {
		return f
	}

	level := model.ConfidenceMedium
	switch {
	case d.HasModifier(model.ModPrivate), d.HasModifier(model.ModInternal):
		level = model.ConfidenceHigh
	case isLowConfidenceShape(reg, d):
		level = model.ConfidenceLow
	}

	if cfg.Shrinker != nil && shrinkerConfirms(cfg.Shrinker, reg, d) {
		f.ShrinkerConfirmed = true
		level = model.ConfidenceConfirmed
	}
	if cfg.Coverage != nil && cfg.Coverage.IsZeroExecuted(d.Location) {
		f.RuntimeConfirmed = true
		level = model.ConfidenceConfirmed
	}

	f.Confidence = level
	return f
}

// isLowConfidenceShape reports the three static-uncertainty conditions of
// §4.8: public visibility, an annotation outside the recognized set
// (possibly reflection-driven), or an enclosing class matching a framework
// naming convention the analyzer cannot verify dispatch into.
func isLowConfidenceShape(reg *registry.Registry, d *model.Declaration) bool {
	if d.HasModifier(model.ModPublic) {
		return true
	}
	if hasUnrecognizedAnnotation(d.Annotations) {
		return true
	}
	if enclosing := enclosingClass(reg, d); enclosing != nil && isFrameworkShapedClass(enclosing.SimpleName) {
		return true
	}
	return false
}

func hasUnrecognizedAnnotation(annotations []string) bool {
	for _, a := range annotations {
		if !entrypoint.RetainAnnotations[simpleName(a)] {
			return true
		}
	}
	return false
}

func isFrameworkShapedClass(simpleClassName string) bool {
	for _, suffix := range entrypoint.DefaultComponentSuffixes {
		if len(simpleClassName) > len(suffix) && strings.HasSuffix(simpleClassName, suffix) {
			return true
		}
	}
	return false
}

// enclosingClass walks a declaration's Parent chain to the nearest
// class-like ancestor (itself, if d is already one).
func enclosingClass(reg *registry.Registry, d *model.Declaration) *model.Declaration {
	cur := d
	for i := 0; i < 32 && cur != nil; i++ {
		switch cur.Kind {
		case model.KindClass, model.KindDataClass, model.KindValueClass, model.KindObject,
			model.KindInterface, model.KindEnumClass, model.KindSealedClass:
			return cur
		}
		if cur.Parent == nil {
			return nil
		}
		next, ok := reg.Get(*cur.Parent)
		if !ok {
			return nil
		}
		cur = next
	}
	return nil
}

// shrinkerConfirms matches a declaration against the usage.txt overlay: a
// class-like declaration matches by FQN, a method/function by its enclosing
// class's FQN plus simple name plus parameter arity (from Disambiguator,
// which the parsers already populate with arity for exactly these kinds).
func shrinkerConfirms(u *shrinker.Usage, reg *registry.Registry, d *model.Declaration) bool {
	switch d.Kind {
	case model.KindClass, model.KindDataClass, model.KindValueClass, model.KindObject,
		model.KindInterface, model.KindEnumClass, model.KindSealedClass:
		return u.HasClass(d.FQName)
	case model.KindMethod, model.KindFunction, model.KindExtensionFunction, model.KindConstructor:
		if d.Parent == nil {
			return false
		}
		arity, err := strconv.Atoi(d.ID.Disambiguator)
		if err != nil {
			arity = 0
		}
		return u.HasMethod(d.Parent.FQName, d.SimpleName, arity)
	default:
		return false
	}
}

// runtimeDeadFindings implements --include-runtime-dead (§4.8): every
// reachable declaration whose coverage overlay reports zero executions
// gets its own finding, tagged runtime_confirmed and independent of
// shrinker evidence.
func runtimeDeadFindings(reg *registry.Registry, reached *reachability.Set, cov *coverage.Overlay) []model.Finding {
	var out []model.Finding
	for _, d := range reg.All() {
		if !reached.Contains(d.ID) {
			continue
		}
		if !cov.IsZeroExecuted(d.Location) {
			continue
		}
		out = append(out, model.Finding{
			Code: model.DCRuntimeDead, Declaration: d.ID, DeclarationName: d.FQName,
			DeclarationKind: d.Kind, Location: d.Location, Confidence: model.ConfidenceConfirmed,
			RuntimeConfirmed: true,
			Message:          d.FQName + " is reachable but never executed at runtime",
		})
	}
	return out
}

func filter(findings []model.Finding, cfg Config) []model.Finding {
	out := findings[:0:0]
	for _, f := range findings {
		if cfg.BaselineFingerprints != nil && cfg.BaselineFingerprints[f.Fingerprint()] {
			continue
		}
		if cfg.RuntimeOnly && f.Confidence != model.ConfidenceConfirmed {
			continue
		}
		if cfg.HasMinConfidence && f.Confidence < cfg.MinConfidence {
			continue
		}
		out = append(out, f)
	}
	return out
}

// sortFindings orders findings by file, line, column, then code, per §5's
// determinism guarantee.
func sortFindings(findings []model.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		if a.Location.Column != b.Location.Column {
			return a.Location.Column < b.Location.Column
		}
		return a.Code < b.Code
	})
}

func simpleName(fqName string) string {
	for i := len(fqName) - 1; i >= 0; i-- {
		if fqName[i] == '.' {
			return fqName[i+1:]
		}
	}
	return fqName
}
