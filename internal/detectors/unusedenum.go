package detectors

import (
	"fmt"

	"github.com/c360studio/deadcode/internal/model"
)

// unusedEnumCaseDetector implements DC005: an enum case with no incoming
// reference at all, unless its parent enum is deserialized reflectively.
//
// The spec's full skip rule also excuses a case whose parent enum has a
// `valueOf`/`entries` call site anywhere in the program; that half is not
// implemented because those calls resolve to no declaration the parser
// emits (valueOf/entries are compiler-synthesized, never declared), so
// there is nothing in the graph to check incoming edges against. Only the
// annotation half of the skip (`@Serializable`, `@JsonClass`) is checked.
type unusedEnumCaseDetector struct{}

func (unusedEnumCaseDetector) Code() model.Code { return model.DC005UnusedEnumCase }

func (unusedEnumCaseDetector) Detect(ctx *Context) []model.Finding {
	var out []model.Finding
	for _, d := range ctx.Registry.All() {
		if d.Kind != model.KindEnumCase {
			continue
		}
		if ctx.Graph.HasIncoming(d.ID) {
			continue
		}
		if d.KindData.VariantOf != nil {
			if parent, ok := ctx.Registry.Get(*d.KindData.VariantOf); ok && isReflectivelyDeserialized(parent) {
				continue
			}
		}
		out = append(out, finding(model.DC005UnusedEnumCase, d,
			fmt.Sprintf("enum case %q is never referenced", d.SimpleName)))
	}
	return out
}

func isReflectivelyDeserialized(enumClass *model.Declaration) bool {
	for _, a := range enumClass.Annotations {
		switch simpleName(a) {
		case "Serializable", "JsonClass":
			return true
		}
	}
	return false
}
