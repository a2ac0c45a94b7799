package detectors

import (
	"fmt"

	"github.com/c360studio/deadcode/internal/model"
)

// unusedSealedVariantDetector implements DC008. A variant's own Declaration
// carries a Constructor child iff it was declared `class`/`data class`
// (every Kotlin class, sealed variant or not, gets an explicit primary
// constructor declaration per internal/sourceparse/kotlin.go); a sealed
// `object` variant never gets one. That distinguishes the two halves of the
// rule without needing a separate "is this a singleton" flag.
type unusedSealedVariantDetector struct{}

func (unusedSealedVariantDetector) Code() model.Code { return model.DC008UnusedSealedVariant }

func (unusedSealedVariantDetector) Detect(ctx *Context) []model.Finding {
	var out []model.Finding
	for _, d := range ctx.Registry.All() {
		if d.Kind != model.KindSealedVariant {
			continue
		}
		if isClassLikeVariant(ctx, d) {
			if ctx.Graph.HasIncoming(d.ID, model.RefInstantiation) {
				continue
			}
		} else if ctx.Graph.HasIncoming(d.ID) {
			continue
		}
		out = append(out, finding(model.DC008UnusedSealedVariant, d,
			fmt.Sprintf("sealed variant %q is never instantiated or referenced", d.SimpleName)))
	}
	return out
}

func isClassLikeVariant(ctx *Context, d *model.Declaration) bool {
	for _, child := range ctx.Registry.Children(d.ID) {
		if child.Kind == model.KindConstructor {
			return true
		}
	}
	return false
}
