package detectors

import (
	"fmt"

	"github.com/c360studio/deadcode/internal/model"
)

// unusedResourceDetector implements the unused-Android-resource rule of
// §4.7: a resource declared in res/values with no incoming reference from
// code or other XML. Layout and drawable files are not resources here.
type unusedResourceDetector struct{}

func (unusedResourceDetector) Code() model.Code { return model.DCUnusedResource }

func (unusedResourceDetector) Detect(ctx *Context) []model.Finding {
	var out []model.Finding
	for _, d := range ctx.Registry.All() {
		if d.Kind != model.KindResource {
			continue
		}
		if ctx.Graph.HasIncoming(d.ID) {
			continue
		}
		out = append(out, finding(model.DCUnusedResource, d,
			fmt.Sprintf("resource %s/%s is never referenced", d.KindData.ResourceType, d.SimpleName)))
	}
	return out
}
