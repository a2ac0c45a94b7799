// Package report renders aggregated findings in the three formats §6
// names: a human-readable terminal view, the versioned JSON schema, and
// SARIF 2.1.0 for CI tooling. It also owns baseline fingerprint load/save.
package report

import "github.com/c360studio/deadcode/internal/model"

// Summary aggregates counts alongside the raw findings, used by every
// formatter's top-level totals section.
type Summary struct {
	Total      int
	ByCode     map[model.Code]int
	ByConfidence map[model.Confidence]int
}

// Summarize computes a Summary from a finalized, sorted findings slice.
func Summarize(findings []model.Finding) Summary {
	s := Summary{
		ByCode:       make(map[model.Code]int),
		ByConfidence: make(map[model.Confidence]int),
	}
	for _, f := range findings {
		s.Total++
		s.ByCode[f.Code]++
		s.ByConfidence[f.Confidence]++
	}
	return s
}

// severity maps a finding's assigned confidence to the coarse three-level
// scale both the JSON schema's "severity" field and SARIF's result "level"
// use: Confirmed/High findings are worth acting on immediately, Medium is
// the ordinary case, Low is advisory only given the static uncertainty that
// earned it that confidence (§4.8).
func severity(c model.Confidence) string {
	switch {
	case c >= model.ConfidenceHigh:
		return "error"
	case c >= model.ConfidenceMedium:
		return "warning"
	default:
		return "note"
	}
}
