package report

import (
	"encoding/json"
	"io"

	"github.com/c360studio/deadcode/internal/model"
)

// jsonSchemaVersion is the "version" field §6's JSON output contract names
// (schema v1.1).
const jsonSchemaVersion = "1.1"

// jsonDocument is the top-level JSON output shape §6 specifies.
type jsonDocument struct {
	Version     string        `json:"version"`
	TotalIssues int           `json:"total_issues"`
	Issues      []jsonIssue   `json:"issues"`
	Summary     jsonSummary   `json:"summary"`
}

type jsonIssue struct {
	Code              string          `json:"code"`
	Severity          string          `json:"severity"`
	Confidence        string          `json:"confidence"`
	ConfidenceScore   float64         `json:"confidence_score"`
	RuntimeConfirmed  bool            `json:"runtime_confirmed"`
	ShrinkerConfirmed bool            `json:"shrinker_confirmed"`
	Message           string          `json:"message"`
	File              string          `json:"file"`
	Line              int             `json:"line"`
	Column            int             `json:"column"`
	Declaration       jsonDeclaration `json:"declaration"`
}

type jsonDeclaration struct {
	Name              string `json:"name"`
	Kind              string `json:"kind"`
	FullyQualifiedName string `json:"fully_qualified_name"`
}

type jsonSummary struct {
	Total        int            `json:"total"`
	ByCode       map[string]int `json:"by_code"`
	ByConfidence map[string]int `json:"by_confidence"`
}

// WriteJSON renders findings in the versioned JSON schema §6 specifies.
func WriteJSON(w io.Writer, findings []model.Finding) error {
	doc := jsonDocument{
		Version:     jsonSchemaVersion,
		TotalIssues: len(findings),
		Issues:      make([]jsonIssue, 0, len(findings)),
	}

	s := Summarize(findings)
	doc.Summary = jsonSummary{
		Total:        s.Total,
		ByCode:       make(map[string]int, len(s.ByCode)),
		ByConfidence: make(map[string]int, len(s.ByConfidence)),
	}
	for code, n := range s.ByCode {
		doc.Summary.ByCode[string(code)] = n
	}
	for conf, n := range s.ByConfidence {
		doc.Summary.ByConfidence[conf.String()] = n
	}

	for _, f := range findings {
		doc.Issues = append(doc.Issues, jsonIssue{
			Code:              string(f.Code),
			Severity:          severity(f.Confidence),
			Confidence:        f.Confidence.String(),
			ConfidenceScore:   float64(f.Confidence),
			RuntimeConfirmed:  f.RuntimeConfirmed,
			ShrinkerConfirmed: f.ShrinkerConfirmed,
			Message:           f.Message,
			File:              f.Location.File,
			Line:              f.Location.Line,
			Column:            f.Location.Column,
			Declaration: jsonDeclaration{
				Name:               f.DeclarationName,
				Kind:               string(f.DeclarationKind),
				FullyQualifiedName: f.DeclarationName,
			},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
