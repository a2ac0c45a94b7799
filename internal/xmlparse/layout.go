package xmlparse

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/c360studio/deadcode/internal/model"
)

// genericNode is a generic XML element: Android layout files have
// unbounded tag vocabularies (every custom view is its own tag name), so a
// fixed struct per element type doesn't work — we walk the tree generically
// instead, grounded on the same "any tag, any attrs" shape as
// encoding/xml's documented recursive-node idiom.
type genericNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr    `xml:",any,attr"`
	Nodes   []genericNode `xml:",any"`
	Text    string        `xml:",chardata"`
}

var dataBindingExpr = regexp.MustCompile(`@\{([^}]*)\}`)
var resourceRefExpr = regexp.MustCompile(`@(\+?)([a-zA-Z_][a-zA-Z0-9_]*)/([a-zA-Z_][a-zA-Z0-9_.]*)`)

// LayoutReference is one reference found in a layout or values XML file: an
// XmlBinding to a class or to a resource, or a Read of a data-binding
// identifier.
type LayoutReference struct {
	Kind       model.RefKind
	TargetName string // class FQName, bare resource name (type dropped), or data-binding identifier
	Location   model.Location
}

// LayoutResult is everything extracted from one layout XML file.
type LayoutResult struct {
	References []LayoutReference
}

// ParseLayout parses a res/layout/*.xml file per §4.3: every custom-view
// tag (a tag name containing a ".") and every tools:context attribute
// value produces an XmlBinding; every @{expr} data-binding expression
// produces a reference to its leading identifier; every @type/name
// occurrence produces a Resource reference.
func ParseLayout(path string, content []byte) (*LayoutResult, error) {
	var root genericNode
	if err := xml.Unmarshal(content, &root); err != nil {
		return nil, err
	}

	res := &LayoutResult{}
	loc := model.Location{File: path, Line: 1, Column: 1}
	walkLayoutNode(&root, res, loc)
	return res, nil
}

func walkLayoutNode(n *genericNode, res *LayoutResult, loc model.Location) {
	tag := n.XMLName.Local
	if strings.Contains(tag, ".") {
		res.References = append(res.References, LayoutReference{
			Kind: model.RefXmlBinding, TargetName: tag, Location: loc,
		})
	}

	for _, a := range n.Attrs {
		if a.Name.Local == "context" {
			res.References = append(res.References, LayoutReference{
				Kind: model.RefXmlBinding, TargetName: a.Value, Location: loc,
			})
		}
		extractDataBindingRefs(a.Value, res, loc)
		extractResourceRefs(a.Value, res, loc)
	}
	extractResourceRefs(n.Text, res, loc)

	for i := range n.Nodes {
		walkLayoutNode(&n.Nodes[i], res, loc)
	}
}

func extractDataBindingRefs(value string, res *LayoutResult, loc model.Location) {
	for _, m := range dataBindingExpr.FindAllStringSubmatch(value, -1) {
		expr := strings.TrimSpace(m[1])
		ident := firstIdentifierToken(expr)
		if ident != "" {
			res.References = append(res.References, LayoutReference{
				Kind: model.RefRead, TargetName: ident, Location: loc,
			})
		}
	}
}

func firstIdentifierToken(expr string) string {
	var sb strings.Builder
	for _, r := range expr {
		if r == '_' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			continue
		}
		break
	}
	return sb.String()
}

func extractResourceRefs(value string, res *LayoutResult, loc model.Location) {
	for _, m := range resourceRefExpr.FindAllStringSubmatch(value, -1) {
		// TargetName is the resource's bare simple name: the registry indexes
		// resources by name only (internal/registry.AddResource never
		// populates byFQName), so a "type/name" target would never resolve
		// through the graph builder's simple-name fallback rule.
		name := m[3]
		res.References = append(res.References, LayoutReference{
			Kind: model.RefXmlBinding, TargetName: name, Location: loc,
		})
	}
}
