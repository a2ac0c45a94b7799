package detectors

import (
	"fmt"
	"strings"

	"github.com/c360studio/deadcode/internal/model"
)

// writeOnlyDetector implements DC002: a property or field with at least one
// Write edge and no Read edges at all.
type writeOnlyDetector struct{}

func (writeOnlyDetector) Code() model.Code { return model.DC002WriteOnly }

func (writeOnlyDetector) Detect(ctx *Context) []model.Finding {
	var out []model.Finding
	for _, d := range ctx.Registry.All() {
		if d.Kind != model.KindProperty && d.Kind != model.KindField {
			continue
		}
		if d.Convention {
			// Covers both ALL-CAPS-unrelated convention flags and, for
			// Kotlin properties, the `by` delegate skip (§4.7): a delegated
			// property's reads happen through the compiler-synthesized
			// getValue convention member, invisible to the Write/Read edge
			// count this detector inspects directly.
			continue
		}
		if isAllCapsConstantName(d.SimpleName) {
			continue
		}
		if d.KindData.BackingField && hasMatchingAccessor(ctx, d) {
			continue
		}
		if !ctx.Graph.HasIncoming(d.ID, model.RefWrite) {
			continue
		}
		if ctx.Graph.HasIncoming(d.ID, model.RefRead) {
			continue
		}
		out = append(out, finding(model.DC002WriteOnly, d,
			fmt.Sprintf("%s %q is written but never read", d.Kind, d.SimpleName)))
	}
	return out
}

func hasMatchingAccessor(ctx *Context, d *model.Declaration) bool {
	if d.Parent == nil {
		return false
	}
	public := strings.TrimPrefix(d.SimpleName, "_")
	for _, sibling := range ctx.Registry.Children(*d.Parent) {
		if sibling.ID != d.ID && sibling.SimpleName == public {
			return true
		}
	}
	return false
}

func isAllCapsConstantName(name string) bool {
	sawLetter := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r == '_', r >= '0' && r <= '9':
			if r >= 'A' && r <= 'Z' {
				sawLetter = true
			}
		default:
			return false
		}
	}
	return sawLetter
}
