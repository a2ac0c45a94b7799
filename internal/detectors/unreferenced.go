package detectors

import (
	"fmt"

	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/reachability"
)

// unreferencedDetector implements DC001: any declaration reachability left
// out of the ReachableSet that isn't one of the always-skipped shapes.
type unreferencedDetector struct{}

func (unreferencedDetector) Code() model.Code { return model.DC001Unreferenced }

func (unreferencedDetector) Detect(ctx *Context) []model.Finding {
	var out []model.Finding
	for _, id := range reachability.Unreached(ctx.Registry, ctx.Reachable) {
		d, ok := ctx.Registry.Get(id)
		if !ok || !eligibleForDC001(d) {
			continue
		}
		out = append(out, finding(model.DC001Unreferenced, d,
			fmt.Sprintf("%s %q is never referenced", d.Kind, d.SimpleName)))
	}
	return out
}

func eligibleForDC001(d *model.Declaration) bool {
	switch d.Kind {
	case model.KindResource, model.KindParameter, model.KindEnumCase, model.KindSealedVariant:
		// Each has its own dedicated detector with more precise skip rules.
		return false
	}
	if d.Synthetic {
		return false
	}
	if d.HasModifier(model.ModConst) {
		return false
	}
	// Override methods are skipped unconditionally rather than attempting to
	// resolve whether the supertype member they override is itself
	// reachable: no override-edge is tracked between an override and the
	// member it shadows, so this is a deliberate over-approximation in the
	// safe direction (never flag one that might be live via dynamic
	// dispatch through a reachable supertype).
	if d.HasModifier(model.ModOverride) {
		return false
	}
	switch d.Kind {
	case model.KindClass, model.KindInterface, model.KindObject, model.KindCompanionObject,
		model.KindEnumClass, model.KindSealedClass, model.KindDataClass, model.KindValueClass,
		model.KindAnnotation, model.KindTypeAlias, model.KindFunction, model.KindExtensionFunction,
		model.KindMethod, model.KindConstructor, model.KindProperty, model.KindField:
		return true
	}
	return false
}
