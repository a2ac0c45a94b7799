package model

// RefKind identifies why a source declaration mentions a target.
type RefKind string

const (
	RefCall            RefKind = "call"
	RefRead            RefKind = "read"
	RefWrite           RefKind = "write"
	RefInstantiation   RefKind = "instantiation"
	RefTypeUse         RefKind = "type_use"
	RefExtends         RefKind = "extends"
	RefImplements      RefKind = "implements"
	RefOverride        RefKind = "override"
	RefDelegation      RefKind = "delegation"
	RefAnnotation      RefKind = "annotation"
	RefXmlBinding      RefKind = "xml_binding"
	RefEnumEntryAccess RefKind = "enum_entry_access"
)

// Reference is a directed edge: Source declaration references Target by
// name. Resolution (turning TargetName into a concrete Target ID) happens in
// internal/graph; parsers only ever produce the unresolved (Source, Kind,
// TargetName) triple plus enough context (imports, enclosing scope) for the
// graph builder to resolve it.
type Reference struct {
	Source      ID
	TargetName  string // as written: qualified or simple
	Kind        RefKind
	Location    Location
	SourceFile  string // file the reference was found in, for import-aware resolution
}

// ExternalID builds a synthetic node id for a name outside the analyzed
// project (e.g. an Android SDK class named in a manifest). The graph builder
// does not use it: references it cannot resolve are dropped, not pointed at
// an external node.
func ExternalID(name string) ID {
	return ID{FQName: name, Kind: "external"}
}
