package detectors

import (
	"fmt"

	"github.com/c360studio/deadcode/internal/model"
)

// unusedIntentExtraDetector implements the unused-intent-extra rule of
// §4.7. An Intent extra has no declaration site of its own — it is a
// string-literal contract between a putExtra call site and a getXxxExtra
// call site, possibly in a different file entirely — so findings here
// synthesize a pseudo-declaration identity keyed on the literal key.
type unusedIntentExtraDetector struct{}

func (unusedIntentExtraDetector) Code() model.Code { return model.DCIntentExtra }

func (unusedIntentExtraDetector) Detect(ctx *Context) []model.Finding {
	gets := make(map[string]bool)
	for _, u := range ctx.IntentExtras {
		if u.Kind == "get" {
			gets[u.Key] = true
		}
	}

	seen := make(map[string]bool)
	var out []model.Finding
	for _, u := range ctx.IntentExtras {
		if u.Kind != "put" || gets[u.Key] || seen[u.Key] {
			continue
		}
		seen[u.Key] = true
		out = append(out, model.Finding{
			Code:            model.DCIntentExtra,
			Declaration:     model.ID{FQName: u.Key, Kind: model.KindIntentExtra},
			DeclarationName: u.Key,
			DeclarationKind: model.KindIntentExtra,
			Location:        u.Location,
			Confidence:      model.ConfidenceMedium,
			Message:         fmt.Sprintf("Intent extra %q is set but never read", u.Key),
		})
	}
	return out
}
