// Package detectors implements the §4.7 dead-code rules. Every detector runs
// after reachability is computed, reads the graph read-only, and emits
// model.Finding values at ConfidenceMedium; internal/aggregator raises or
// lowers that baseline per §4.8.
package detectors

import (
	"github.com/c360studio/deadcode/internal/graph"
	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/reachability"
	"github.com/c360studio/deadcode/internal/registry"
	"github.com/c360studio/deadcode/internal/sourceparse"
)

// Context bundles the read-only state every detector needs. It is built once
// after reachability and never mutated, so detectors can run concurrently
// over it (§5: "detectors run in parallel over immutable state").
type Context struct {
	Registry     *registry.Registry
	Graph        *graph.Graph
	Reachable    *reachability.Set
	IntentExtras []sourceparse.IntentExtraUse
}

// Detector evaluates one rule of §4.7 against a Context.
type Detector interface {
	Code() model.Code
	Detect(ctx *Context) []model.Finding
}

// All returns every detector in the fixed order findings should be produced
// in before the aggregator's final deterministic sort.
func All() []Detector {
	return []Detector{
		unreferencedDetector{},
		writeOnlyDetector{},
		unusedParameterDetector{},
		unusedEnumCaseDetector{},
		unusedSealedVariantDetector{},
		redundantOverrideDetector{},
		unusedIntentExtraDetector{},
		unusedResourceDetector{},
	}
}

// Run executes every detector in ds against ctx and concatenates their
// findings. Ordering across detectors is not meaningful here — the
// aggregator re-sorts by file/line/column/code before reporting (§5).
func Run(ctx *Context, ds []Detector) []model.Finding {
	var out []model.Finding
	for _, d := range ds {
		out = append(out, d.Detect(ctx)...)
	}
	return out
}

// ownerFunction resolves a Parameter declaration's owning function/method by
// FQName, since the parser does not set ParentKind on Parameter raws (it
// only knows the owner's FQName at emission time, not its resolved Kind).
// When a function is overloaded, every overload shares the same FQName,
// so an overload's parameters may resolve to the wrong sibling signature;
// this is an accepted imprecision; a false-negative on skip rules here
// fails safe toward emitting a finding candidate, not hiding one.
func ownerFunction(reg *registry.Registry, d *model.Declaration) *model.Declaration {
	if d.Parent == nil {
		return nil
	}
	for _, cand := range reg.ByFQName(d.Parent.FQName) {
		switch cand.Kind {
		case model.KindFunction, model.KindMethod, model.KindConstructor, model.KindExtensionFunction:
			return cand
		}
	}
	return nil
}

func simpleName(fqName string) string {
	for i := len(fqName) - 1; i >= 0; i-- {
		if fqName[i] == '.' {
			return fqName[i+1:]
		}
	}
	return fqName
}

func finding(code model.Code, d *model.Declaration, message string) model.Finding {
	return model.Finding{
		Code: code, Declaration: d.ID, DeclarationName: d.FQName, DeclarationKind: d.Kind,
		Location: d.Location, Confidence: model.ConfidenceMedium, Message: message,
	}
}
