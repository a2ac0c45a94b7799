package detectors

import (
	"fmt"
	"strings"

	"github.com/c360studio/deadcode/internal/model"
)

// unusedParameterDetector implements DC003: a parameter never read or
// written inside its owning function body.
type unusedParameterDetector struct{}

func (unusedParameterDetector) Code() model.Code { return model.DC003UnusedParameter }

func (unusedParameterDetector) Detect(ctx *Context) []model.Finding {
	var out []model.Finding
	for _, d := range ctx.Registry.All() {
		if d.Kind != model.KindParameter {
			continue
		}
		if strings.HasPrefix(d.SimpleName, "_") {
			continue
		}
		if ctx.Graph.HasIncoming(d.ID, model.RefRead, model.RefWrite) {
			continue
		}
		owner := ownerFunction(ctx.Registry, d)
		if owner == nil {
			continue
		}
		if owner.HasModifier(model.ModOverride) || owner.HasModifier(model.ModAbstract) {
			continue
		}
		if owner.Parent != nil && owner.Parent.Kind == model.KindInterface {
			continue
		}
		if hasRetainAnnotation(owner.Annotations) {
			continue
		}
		if owner.Parent != nil && isAutoRetainClass(simpleName(owner.Parent.FQName)) {
			continue
		}
		out = append(out, finding(model.DC003UnusedParameter, d,
			fmt.Sprintf("parameter %q of %s is never used", d.SimpleName, owner.FQName)))
	}
	return out
}
