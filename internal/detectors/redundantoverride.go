package detectors

import (
	"fmt"

	"github.com/c360studio/deadcode/internal/model"
)

// redundantOverrideDetector implements DC009. It runs independent of
// reachability — a redundant override is dead weight whether or not the
// override itself is ever dispatched to.
type redundantOverrideDetector struct{}

func (redundantOverrideDetector) Code() model.Code { return model.DC009RedundantOverride }

func (redundantOverrideDetector) Detect(ctx *Context) []model.Finding {
	var out []model.Finding
	for _, d := range ctx.Registry.All() {
		if d.Kind != model.KindMethod && d.Kind != model.KindFunction {
			continue
		}
		if !d.HasModifier(model.ModOverride) || !d.KindData.TrivialSuperCall {
			continue
		}
		if hasRetainAnnotation(d.Annotations) {
			continue
		}
		out = append(out, finding(model.DC009RedundantOverride, d,
			fmt.Sprintf("override %q only forwards to super", d.SimpleName)))
	}
	return out
}
