// Package model defines the declaration/reference graph vocabulary shared by
// every stage of the analysis pipeline: parsers produce Declarations and
// References, the registry and graph consume them, detectors read the
// resulting graph read-only and emit Findings.
package model

import "fmt"

// Kind identifies the syntactic category of a Declaration.
type Kind string

const (
	KindClass            Kind = "class"
	KindInterface         Kind = "interface"
	KindObject            Kind = "object"
	KindCompanionObject    Kind = "companion_object"
	KindEnumClass          Kind = "enum_class"
	KindEnumCase           Kind = "enum_case"
	KindSealedClass        Kind = "sealed_class"
	KindSealedVariant      Kind = "sealed_variant"
	KindDataClass          Kind = "data_class"
	KindValueClass         Kind = "value_class"
	KindAnnotation         Kind = "annotation"
	KindTypeAlias          Kind = "type_alias"
	KindFunction           Kind = "function"
	KindExtensionFunction  Kind = "extension_function"
	KindMethod             Kind = "method"
	KindConstructor        Kind = "constructor"
	KindProperty           Kind = "property"
	KindField              Kind = "field"
	KindParameter          Kind = "parameter"
	KindResource           Kind = "resource"

	// KindIntentExtra is a pseudo-kind used only on Finding.DeclarationKind:
	// an Intent extra key has no declaration site of its own, so it never
	// appears in the Registry, only in a Finding produced directly from
	// sourceparse.IntentExtraUse pairs.
	KindIntentExtra Kind = "intent_extra"
)

// Modifier is a declared language modifier relevant to detection rules.
type Modifier string

const (
	ModPublic    Modifier = "public"
	ModPrivate   Modifier = "private"
	ModInternal  Modifier = "internal"
	ModProtected Modifier = "protected"
	ModOpen      Modifier = "open"
	ModOverride  Modifier = "override"
	ModAbstract  Modifier = "abstract"
	ModSuspend   Modifier = "suspend"
	ModInline    Modifier = "inline"
	ModOperator  Modifier = "operator"
	ModInfix     Modifier = "infix"
	ModTailrec   Modifier = "tailrec"
	ModExternal  Modifier = "external"
	ModConst     Modifier = "const"
	ModLateinit  Modifier = "lateinit"
	ModValue     Modifier = "value"
)

// Location pinpoints a declaration or reference inside a source file.
type Location struct {
	File       string
	Line       int // 1-based
	Column     int // 1-based
	StartByte  int
	EndByte    int
	EndLine    int
	EndColumn  int
}

// ID is the stable identity of a Declaration: fully-qualified name, kind, and
// a disambiguator that separates overloads (by parameter arity) and resource
// entries (by resource type) that would otherwise collide on (name, kind).
type ID struct {
	FQName        string
	Kind          Kind
	Disambiguator string
}

func (id ID) String() string {
	if id.Disambiguator == "" {
		return fmt.Sprintf("%s#%s", id.Kind, id.FQName)
	}
	return fmt.Sprintf("%s#%s/%s", id.Kind, id.FQName, id.Disambiguator)
}

// KindSpecific carries the extra attributes §3 requires per kind instead of
// a deep type hierarchy, keeping Declaration a single flat struct that every
// pipeline stage can pass by value-ish pointer without kind-switch plumbing
// at every call site.
type KindSpecific struct {
	// EnumCase / SealedVariant: id of the parent EnumClass / SealedClass.
	VariantOf *ID

	// Parameter: owning function id and zero-based position.
	OwnerFunc *ID
	Position  int

	// Property / Field: true when this follows the `_name` + public `name`
	// accessor backing-field convention (see DC002 skip rule).
	BackingField bool

	// Resource: Android resource type (string, color, dimen, ...).
	ResourceType string

	// Method/Function with the override modifier: true when its body is
	// empty or a single super call with identical name and argument order
	// (DC009's redundant-override pattern, detected at parse time since
	// Phase A discards body text once the declaration is built).
	TrivialSuperCall bool
}

// Declaration is a named, locatable source entity.
type Declaration struct {
	ID           ID
	FQName       string
	SimpleName   string
	Kind         Kind
	Location     Location
	Modifiers    map[Modifier]bool
	Annotations  []string
	Parent       *ID
	GenericParams []string
	KindData     KindSpecific

	// Synthetic marks declarations generated by the compiler (data class
	// copy/componentN/equals/hashCode/toString) that DC001 must never flag.
	Synthetic bool

	// Convention marks operator/destructuring/delegate/convention members
	// that are auto-retained once their enclosing class is reachable.
	Convention bool
}

// HasModifier reports whether m is present on the declaration.
func (d *Declaration) HasModifier(m Modifier) bool {
	return d.Modifiers != nil && d.Modifiers[m]
}

// HasAnnotation reports whether the declaration carries the given
// fully-qualified (or bare simple-name) annotation.
func (d *Declaration) HasAnnotation(name string) bool {
	for _, a := range d.Annotations {
		if a == name {
			return true
		}
	}
	return false
}
