package sourceparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/c360studio/deadcode/internal/model"
)

// RawDeclaration is the parser's output shape for one declaration before the
// registry assigns it a final, deduplicated model.Declaration. ParentFQName
// carries the parent's FQName rather than a resolved ID because the parent
// may not have been registered yet when a nested declaration is emitted.
type RawDeclaration struct {
	FQName        string
	SimpleName    string
	Kind          model.Kind
	Location      model.Location
	Modifiers     map[model.Modifier]bool
	Annotations   []string
	ParentFQName  string
	ParentKind    model.Kind
	GenericParams []string
	KindData      model.KindSpecific
	Synthetic     bool
	Convention    bool
	Disambiguator string
}

// RawReference is the parser's output shape for one reference edge before
// the graph builder resolves TargetName to a concrete declaration id.
type RawReference struct {
	SourceFQName string
	SourceKind   model.Kind
	TargetName   string
	Kind         model.RefKind
	Location     model.Location
}

// ParsedFile is everything one source file's Phase A + Phase B extraction
// produced, plus the import table the graph builder needs for import-aware
// resolution (§4.4 rule 2).
type ParsedFile struct {
	Path         string
	Language     Language
	Package      string
	Imports      []string // fully-qualified or wildcard ("pkg.*") import paths
	Declarations []RawDeclaration
	References   []RawReference
	IntentExtras []IntentExtraUse
	ParseError   error
}

// IntentExtraUse records one `Intent.putExtra(<literal key>, ...)` or
// `Intent.get*Extra(<literal key>, ...)` call site, tracked by its literal
// string key (the unused-intent-extra detector has no declaration to anchor
// to — an Intent extra is never a named source entity — so this side-channel
// exists purely to let that one detector pair puts against gets).
type IntentExtraUse struct {
	Kind     string // "put" or "get"
	Key      string
	Location model.Location
}

// nodeToLocation converts a tree-sitter node's span into a model.Location.
// Tree-sitter points are 0-based; the data model is 1-based per §3.
func nodeToLocation(file string, n *sitter.Node) model.Location {
	start := n.StartPoint()
	end := n.EndPoint()
	return model.Location{
		File:      file,
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
		StartByte: int(n.StartByte()),
		EndByte:   int(n.EndByte()),
	}
}

// findChildByType returns the first direct child whose grammar type matches.
func findChildByType(n *sitter.Node, types ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if typeIn(c, types...) {
			return c
		}
	}
	return nil
}

// findChildrenByType returns every direct child matching one of types.
func findChildrenByType(n *sitter.Node, types ...string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && typeIn(c, types...) {
			out = append(out, c)
		}
	}
	return out
}

func typeIn(n *sitter.Node, types ...string) bool {
	t := n.Type()
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

// walk visits every node in the subtree rooted at n, depth-first, calling fn
// on each. Returning false from fn skips that node's children.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}

// extractSignature renders a one-line-ish signature: the node's text up to
// (not including) its first opening brace.
func extractSignature(n *sitter.Node, content []byte) string {
	text := n.Content(content)
	if idx := strings.IndexByte(text, '{'); idx != -1 {
		text = text[:idx]
	}
	return strings.Join(strings.Fields(text), " ")
}

// stripGenerics removes a trailing `<...>` type-parameter list from a
// declared name, e.g. "Foo<T>" -> "Foo", per §4.2 ("generic type parameters
// are stripped from declared names but retained in generic_params").
func stripGenerics(name string) string {
	if idx := strings.IndexByte(name, '<'); idx != -1 {
		return strings.TrimSpace(name[:idx])
	}
	return name
}

func joinFQ(parent, simple string) string {
	if parent == "" {
		return simple
	}
	return parent + "." + simple
}

// firstStringLiteral returns the unquoted text of the first string-literal
// descendant of n (searched in source order), used to recover the literal
// key argument of an Intent.putExtra/getXxxExtra call site.
func firstStringLiteral(n *sitter.Node, content []byte, literalTypes ...string) (string, bool) {
	var result string
	found := false
	walk(n, func(c *sitter.Node) bool {
		if found {
			return false
		}
		if typeIn(c, literalTypes...) {
			result = unquoteLiteral(c.Content(content))
			found = true
			return false
		}
		return true
	})
	return result, found
}

func unquoteLiteral(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// isIntentExtraCall reports whether a call's simple method name is the
// Intent extras put/get convention, per §4.7's unused-intent-extra detector.
func isIntentExtraCall(name string) (kind string, ok bool) {
	switch {
	case name == "putExtra":
		return "put", true
	case strings.HasPrefix(name, "get") && strings.HasSuffix(name, "Extra"):
		return "get", true
	}
	return "", false
}

// isTrivialOverrideBody reports whether bodyText (a function/method body's
// raw source text, braces and all) is empty or contains exactly one
// statement that forwards to super with the same name and argument order —
// DC009's redundant-override shape. Comparison strips all whitespace so
// formatting differences don't defeat the match, but argument order (and
// presence) must be identical, per §4.7.
func isTrivialOverrideBody(bodyText, funcName string, paramNames []string) bool {
	text := strings.TrimSpace(bodyText)
	expected := "super." + funcName + "(" + strings.Join(paramNames, ", ") + ")"

	switch {
	case strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}"):
		inner := strings.TrimSpace(text[1 : len(text)-1])
		if inner == "" {
			return true
		}
		return stripSpace(strings.TrimSuffix(inner, ";")) == stripSpace(expected)
	case strings.HasPrefix(text, "="):
		stmt := strings.TrimSpace(text[1:])
		return stripSpace(strings.TrimSuffix(stmt, ";")) == stripSpace(expected)
	case text == "" || text == ";":
		return true
	}
	return false
}

func stripSpace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func modSet(mods ...model.Modifier) map[model.Modifier]bool {
	out := make(map[model.Modifier]bool, len(mods))
	for _, m := range mods {
		out[m] = true
	}
	return out
}
