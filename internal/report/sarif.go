package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/c360studio/deadcode/internal/model"
)

const (
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifVersion   = "2.1.0"
	toolName       = "deadcode"
	toolInfoURI    = "https://github.com/c360studio/deadcode"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	Properties       map[string]interface{} `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string                 `json:"ruleId"`
	Level     string                 `json:"level"`
	Message   sarifMessage           `json:"message"`
	Locations []sarifLocation        `json:"locations"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

// ruleDescriptions gives each detector code a short, stable human-readable
// summary for the SARIF rule catalog, independent of any one finding's
// per-declaration message text.
var ruleDescriptions = map[model.Code]string{
	model.DC001Unreferenced:        "Declaration is never referenced and not auto-retained",
	model.DC002WriteOnly:           "Property or field is written but never read",
	model.DC003UnusedParameter:     "Parameter is never read or written in its function body",
	model.DC005UnusedEnumCase:      "Enum case has no incoming references",
	model.DC008UnusedSealedVariant: "Sealed variant is never instantiated",
	model.DC009RedundantOverride:   "Override body only forwards to its super call",
	model.DCIntentExtra:            "Intent extra is set but never read",
	model.DCUnusedResource:         "Android resource is declared but never referenced",
	model.DCRuntimeDead:            "Declaration is statically reachable but never executed at runtime",
}

// sarifLevel maps a finding's confidence to SARIF's error/warning/note
// result level scale, the same three-level mapping §6's JSON severity uses.
func sarifLevel(c model.Confidence) string {
	return severity(c)
}

// WriteSARIF renders findings as SARIF 2.1.0, location URIs relative to
// root (§6: "location URI relative to project root").
func WriteSARIF(w io.Writer, findings []model.Finding, root string) error {
	codes := map[model.Code]bool{}
	for _, f := range findings {
		codes[f.Code] = true
	}
	var sortedCodes []model.Code
	for c := range codes {
		sortedCodes = append(sortedCodes, c)
	}
	sort.Slice(sortedCodes, func(i, j int) bool { return sortedCodes[i] < sortedCodes[j] })

	rules := make([]sarifRule, 0, len(sortedCodes))
	for _, c := range sortedCodes {
		desc := ruleDescriptions[c]
		if desc == "" {
			desc = string(c)
		}
		rules = append(rules, sarifRule{ID: string(c), ShortDescription: sarifMessage{Text: desc}})
	}

	results := make([]sarifResult, 0, len(findings))
	for _, f := range findings {
		results = append(results, sarifResult{
			RuleID:  string(f.Code),
			Level:   sarifLevel(f.Confidence),
			Message: sarifMessage{Text: f.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: relativeURI(root, f.Location.File)},
					Region:           sarifRegion{StartLine: f.Location.Line, StartColumn: f.Location.Column},
				},
			}},
			Properties: map[string]interface{}{
				"confidence":         f.Confidence.String(),
				"runtime_confirmed":  f.RuntimeConfirmed,
				"shrinker_confirmed": f.ShrinkerConfirmed,
			},
		})
	}

	doc := sarifLog{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: toolName, InformationURI: toolInfoURI, Rules: rules}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// relativeURI strips root as a path prefix; a file outside root or an empty
// root is passed through unchanged.
func relativeURI(root, file string) string {
	if root == "" || len(file) <= len(root) {
		return file
	}
	if file[:len(root)] != root {
		return file
	}
	rest := file[len(root):]
	for len(rest) > 0 && (rest[0] == '/' || rest[0] == '\\') {
		rest = rest[1:]
	}
	return rest
}
