package sourceparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/c360studio/deadcode/internal/model"
)

// KotlinParser implements Phase A/B extraction for Kotlin source, grounded
// on the teacher's tree-sitter node-walking idiom (extractSignature,
// findContainingFunction, query-then-walk) but built around the analyzer's
// Declaration/Reference model instead of a knowledge-graph schema.
type KotlinParser struct {
	ts *TreeSitterParser
}

// NewKotlinParser creates a Kotlin parser bound to a (worker-local) tree-sitter instance.
func NewKotlinParser(ts *TreeSitterParser) *KotlinParser {
	return &KotlinParser{ts: ts}
}

// conventionNames are Kotlin operator/destructuring/delegate members that are
// invoked by the compiler implicitly (§4.2, §9 "Convention members").
var conventionNames = map[string]bool{
	"plus": true, "minus": true, "times": true, "div": true, "rem": true,
	"get": true, "set": true, "invoke": true, "contains": true,
	"getValue": true, "setValue": true, "iterator": true, "hasNext": true,
	"next": true, "compareTo": true, "rangeTo": true, "equals": true,
	"hashCode": true, "toString": true, "unaryPlus": true, "unaryMinus": true,
	"not": true, "inc": true, "dec": true,
}

func isComponentN(name string) bool {
	if !strings.HasPrefix(name, "component") {
		return false
	}
	rest := name[len("component"):]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// dataClassSyntheticNames are the members the Kotlin compiler generates for
// every data class primary constructor, ineligible for DC001 (§4.2).
func dataClassSyntheticNames(propCount int) []string {
	names := []string{"copy", "equals", "hashCode", "toString"}
	for i := 0; i < propCount; i++ {
		names = append(names, "component"+itoa(i+1))
	}
	return names
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

// Parse parses a Kotlin file and extracts declarations and references.
func (p *KotlinParser) Parse(path string, content []byte) (*ParsedFile, error) {
	root, parseErr := p.ts.Parse(content, LangKotlin)

	pf := &ParsedFile{Path: path, Language: LangKotlin}
	if root == nil {
		pf.ParseError = parseErr
		return pf, parseErr
	}

	pf.Package = p.extractPackage(root, content)
	pf.Imports = p.extractImports(root, content)

	w := &kotlinWalk{p: p, content: content, file: path, pkg: pf.Package}
	for i := 0; i < int(root.ChildCount()); i++ {
		w.visitTopLevel(root.Child(i), pf, "", "")
	}

	pf.ParseError = parseErr
	return pf, nil
}

func (p *KotlinParser) extractPackage(root *sitter.Node, content []byte) string {
	if h := findChildByType(root, "package_header"); h != nil {
		if id := findChildByType(h, "identifier"); id != nil {
			return id.Content(content)
		}
	}
	return ""
}

func (p *KotlinParser) extractImports(root *sitter.Node, content []byte) []string {
	var imports []string
	for i := 0; i < int(root.ChildCount()); i++ {
		c := root.Child(i)
		if c.Type() != "import_header" {
			continue
		}
		if id := findChildByType(c, "identifier"); id != nil {
			imports = append(imports, id.Content(content))
		}
	}
	return imports
}

// kotlinWalk carries per-file state through the recursive descent.
type kotlinWalk struct {
	p       *KotlinParser
	content []byte
	file    string
	pkg     string
}

// visitTopLevel dispatches a top-level-or-nested child node, emitting
// declarations into pf and recursing into class/object bodies with parentFQ
// set to the enclosing declaration.
func (w *kotlinWalk) visitTopLevel(n *sitter.Node, pf *ParsedFile, parentFQ string, parentKind model.Kind) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "class_declaration":
		w.visitClass(n, pf, parentFQ, parentKind)
	case "object_declaration", "companion_object":
		w.visitObject(n, pf, parentFQ, parentKind)
	case "function_declaration":
		w.visitFunction(n, pf, parentFQ, parentKind)
	case "property_declaration":
		w.visitProperty(n, pf, parentFQ, parentKind)
	}
}

func (w *kotlinWalk) modifiersOf(n *sitter.Node) (map[model.Modifier]bool, []string) {
	mods := map[model.Modifier]bool{}
	var annotations []string
	m := findChildByType(n, "modifiers")
	if m == nil {
		mods[model.ModPublic] = true
		return mods, annotations
	}
	for i := 0; i < int(m.ChildCount()); i++ {
		c := m.Child(i)
		switch c.Type() {
		case "class_modifier", "visibility_modifier", "inheritance_modifier",
			"member_modifier", "function_modifier", "property_modifier", "parameter_modifier":
			text := c.Content(w.content)
			switch text {
			case "public":
				mods[model.ModPublic] = true
			case "private":
				mods[model.ModPrivate] = true
			case "internal":
				mods[model.ModInternal] = true
			case "protected":
				mods[model.ModProtected] = true
			case "open":
				mods[model.ModOpen] = true
			case "override":
				mods[model.ModOverride] = true
			case "abstract":
				mods[model.ModAbstract] = true
			case "suspend":
				mods[model.ModSuspend] = true
			case "inline":
				mods[model.ModInline] = true
			case "operator":
				mods[model.ModOperator] = true
			case "infix":
				mods[model.ModInfix] = true
			case "tailrec":
				mods[model.ModTailrec] = true
			case "external":
				mods[model.ModExternal] = true
			case "const":
				mods[model.ModConst] = true
			case "lateinit":
				mods[model.ModLateinit] = true
			case "value", "data", "sealed", "inner", "companion", "enum":
				// handled structurally (data/sealed/value class kind, companion parenting)
			}
		case "annotation":
			annotations = append(annotations, w.annotationName(c))
		}
	}
	if !mods[model.ModPrivate] && !mods[model.ModInternal] && !mods[model.ModProtected] {
		mods[model.ModPublic] = true
	}
	return mods, annotations
}

func (w *kotlinWalk) annotationName(n *sitter.Node) string {
	if id := findChildByType(n, "user_type", "constructor_invocation"); id != nil {
		return strings.TrimPrefix(id.Content(w.content), "@")
	}
	return strings.TrimPrefix(strings.Fields(n.Content(w.content))[0], "@")
}

func (w *kotlinWalk) isModifierPresent(n *sitter.Node, keyword string) bool {
	m := findChildByType(n, "modifiers")
	if m == nil {
		return false
	}
	return strings.Contains(m.Content(w.content), keyword)
}

func (w *kotlinWalk) visitClass(n *sitter.Node, pf *ParsedFile, parentFQ string, parentKind model.Kind) {
	nameNode := findChildByType(n, "type_identifier")
	if nameNode == nil {
		return
	}
	simple := stripGenerics(nameNode.Content(w.content))
	fq := joinFQ(qualify(w.pkg, parentFQ), simple)

	isData := w.isModifierPresent(n, "data")
	isSealed := w.isModifierPresent(n, "sealed")
	isValue := w.isModifierPresent(n, "value") || w.isModifierPresent(n, "inline")
	isEnum := w.isModifierPresent(n, "enum")

	kind := model.KindClass
	switch {
	case isEnum:
		kind = model.KindEnumClass
	case isSealed:
		kind = model.KindSealedClass
	case isData:
		kind = model.KindDataClass
	case isValue:
		kind = model.KindValueClass
	}
	// A class directly extending a sealed parent is itself a sealed variant.
	if parentKind == model.KindSealedClass {
		kind = model.KindSealedVariant
	}

	mods, annotations := w.modifiersOf(n)
	decl := RawDeclaration{
		FQName: fq, SimpleName: simple, Kind: kind,
		Location: nodeToLocation(w.file, n), Modifiers: mods, Annotations: annotations,
		ParentFQName: parentFQ, ParentKind: parentKind,
	}
	if parentKind == model.KindSealedClass {
		decl.KindData.VariantOf = &model.ID{FQName: qualify(w.pkg, parentFQ), Kind: parentKind}
	}
	pf.Declarations = append(pf.Declarations, decl)

	// Every class (not object) gets an explicit primary-constructor
	// declaration, even with no parameter list, so reachability's
	// class-reaches-primary-constructor rule (§4.6) and the sealed-variant
	// detector's object-vs-class distinction (§4.7 DC008) both have a node
	// to anchor to.
	ctorFQ := joinFQ(fq, "<init>")
	pf.Declarations = append(pf.Declarations, RawDeclaration{
		FQName: ctorFQ, SimpleName: "<init>", Kind: model.KindConstructor,
		Location: decl.Location, ParentFQName: fq, ParentKind: kind,
	})

	// Primary constructor parameters become Property declarations when
	// declared `val`/`var` (including the single parameter of a
	// `@JvmInline value class`, per §4.2).
	var propCount int
	if ctor := findChildByType(n, "primary_constructor", "class_parameters"); ctor != nil {
		propCount = w.visitPrimaryConstructorParams(ctor, pf, fq, isValue)
	}

	if isData {
		for _, synth := range dataClassSyntheticNames(propCount) {
			pf.Declarations = append(pf.Declarations, RawDeclaration{
				FQName: joinFQ(fq, synth), SimpleName: synth, Kind: model.KindMethod,
				Location: decl.Location, ParentFQName: fq, ParentKind: kind, Synthetic: true,
			})
		}
	}

	if body := findChildByType(n, "class_body", "enum_class_body"); body != nil {
		w.visitBody(body, pf, fq, kind)
	}

	// Phase B: supertype/delegation references.
	w.emitSupertypeRefs(n, pf, fq, kind)
}

func (w *kotlinWalk) visitPrimaryConstructorParams(ctor *sitter.Node, pf *ParsedFile, classFQ string, isValueClass bool) int {
	var count int
	walk(ctor, func(c *sitter.Node) bool {
		if c.Type() != "class_parameter" {
			return true
		}
		id := findChildByType(c, "simple_identifier")
		if id == nil {
			return false
		}
		isProp := isValueClass || w.isModifierPresent(c, "val") || w.isModifierPresent(c, "var") ||
			strings.Contains(c.Content(w.content), "val ") || strings.Contains(c.Content(w.content), "var ")
		if isProp {
			count++
			name := id.Content(w.content)
			pf.Declarations = append(pf.Declarations, RawDeclaration{
				FQName: joinFQ(classFQ, name), SimpleName: name, Kind: model.KindProperty,
				Location: nodeToLocation(w.file, c), ParentFQName: classFQ, ParentKind: model.KindClass,
			})
		}
		return false
	})
	return count
}

func (w *kotlinWalk) visitObject(n *sitter.Node, pf *ParsedFile, parentFQ string, parentKind model.Kind) {
	nameNode := findChildByType(n, "type_identifier")
	isCompanion := strings.Contains(n.Content(w.content), "companion object")
	kind := model.KindObject
	simple := "companion"
	if nameNode != nil {
		simple = nameNode.Content(w.content)
	}
	if isCompanion {
		kind = model.KindCompanionObject
	}
	if parentKind == model.KindSealedClass {
		kind = model.KindSealedVariant
	}
	fq := joinFQ(qualify(w.pkg, parentFQ), simple)

	mods, annotations := w.modifiersOf(n)
	decl := RawDeclaration{
		FQName: fq, SimpleName: simple, Kind: kind, Location: nodeToLocation(w.file, n),
		Modifiers: mods, Annotations: annotations, ParentFQName: parentFQ, ParentKind: parentKind,
	}
	if parentKind == model.KindSealedClass {
		decl.KindData.VariantOf = &model.ID{FQName: qualify(w.pkg, parentFQ), Kind: parentKind}
	}
	pf.Declarations = append(pf.Declarations, decl)

	if body := findChildByType(n, "class_body"); body != nil {
		w.visitBody(body, pf, fq, kind)
	}
	w.emitSupertypeRefs(n, pf, fq, kind)
}

func (w *kotlinWalk) visitBody(body *sitter.Node, pf *ParsedFile, parentFQ string, parentKind model.Kind) {
	for i := 0; i < int(body.ChildCount()); i++ {
		c := body.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "class_declaration", "object_declaration", "function_declaration", "property_declaration", "companion_object":
			w.visitTopLevel(c, pf, parentFQ, parentKind)
		case "enum_entry":
			w.visitEnumEntry(c, pf, parentFQ)
		}
	}
}

func (w *kotlinWalk) visitEnumEntry(n *sitter.Node, pf *ParsedFile, parentFQ string) {
	id := findChildByType(n, "simple_identifier")
	if id == nil {
		return
	}
	name := id.Content(w.content)
	pf.Declarations = append(pf.Declarations, RawDeclaration{
		FQName: joinFQ(parentFQ, name), SimpleName: name, Kind: model.KindEnumCase,
		Location: nodeToLocation(w.file, n), ParentFQName: parentFQ, ParentKind: model.KindEnumClass,
		KindData: model.KindSpecific{VariantOf: &model.ID{FQName: parentFQ, Kind: model.KindEnumClass}},
	})
}

func (w *kotlinWalk) visitFunction(n *sitter.Node, pf *ParsedFile, parentFQ string, parentKind model.Kind) {
	id := findChildByType(n, "simple_identifier")
	if id == nil {
		return
	}
	name := id.Content(w.content)

	// Extension function receiver: `fun Receiver.name(...)` — the simple
	// name is `name`, never the receiver (§4.2).
	kind := model.KindFunction
	if parentKind == model.KindClass || parentKind == model.KindObject ||
		parentKind == model.KindDataClass || parentKind == model.KindInterface ||
		parentKind == model.KindCompanionObject || parentKind == model.KindEnumClass ||
		parentKind == model.KindSealedClass {
		kind = model.KindMethod
	}
	if findChildByType(n, "user_type") != nil && w.looksLikeExtensionReceiver(n) {
		kind = model.KindExtensionFunction
	}

	fq := joinFQ(qualify(w.pkg, parentFQ), name)
	mods, annotations := w.modifiersOf(n)
	isSuspend := mods[model.ModSuspend]
	isConvention := conventionNames[name] || isComponentN(name)

	params := findChildByType(n, "function_value_parameters")
	decl := RawDeclaration{
		FQName: fq, SimpleName: name, Kind: kind, Location: nodeToLocation(w.file, n),
		Modifiers: mods, Annotations: annotations, ParentFQName: parentFQ, ParentKind: parentKind,
		Convention: isConvention || isSuspend,
		Disambiguator: arity(params),
	}
	if mods[model.ModOverride] {
		if body := findChildByType(n, "function_body"); body != nil {
			decl.KindData.TrivialSuperCall = isTrivialOverrideBody(body.Content(w.content), name, paramNames(params, w.content))
		}
	}
	pf.Declarations = append(pf.Declarations, decl)

	if params != nil {
		w.visitParameters(params, pf, fq)
	}
	if body := findChildByType(n, "function_body"); body != nil {
		w.emitReferences(body, pf, fq, kind)
	}
}

func paramNames(params *sitter.Node, content []byte) []string {
	if params == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(params.ChildCount()); i++ {
		c := params.Child(i)
		if c.Type() != "parameter" {
			continue
		}
		if id := findChildByType(c, "simple_identifier"); id != nil {
			names = append(names, id.Content(content))
		}
	}
	return names
}

// looksLikeExtensionReceiver is a conservative heuristic: the grammar marks
// an extension's receiver type as the child immediately preceding the
// function's simple_identifier, as opposed to a return-type user_type which
// follows the parameter list.
func (w *kotlinWalk) looksLikeExtensionReceiver(n *sitter.Node) bool {
	seenIdent := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "simple_identifier" {
			seenIdent = true
			break
		}
		if c.Type() == "user_type" && !seenIdent {
			return true
		}
	}
	return false
}

func arity(params *sitter.Node) string {
	if params == nil {
		return "0"
	}
	n := 0
	for i := 0; i < int(params.ChildCount()); i++ {
		if params.Child(i).Type() == "parameter" {
			n++
		}
	}
	return itoa(n)
}

func (w *kotlinWalk) visitParameters(params *sitter.Node, pf *ParsedFile, funcFQ string) {
	pos := 0
	for i := 0; i < int(params.ChildCount()); i++ {
		c := params.Child(i)
		if c.Type() != "parameter" {
			continue
		}
		id := findChildByType(c, "simple_identifier")
		if id == nil {
			continue
		}
		name := id.Content(w.content)
		pf.Declarations = append(pf.Declarations, RawDeclaration{
			FQName: joinFQ(funcFQ, name), SimpleName: name, Kind: model.KindParameter,
			Location: nodeToLocation(w.file, c), ParentFQName: funcFQ,
			KindData: model.KindSpecific{OwnerFunc: &model.ID{FQName: funcFQ}, Position: pos},
		})
		pos++
	}
}

func (w *kotlinWalk) visitProperty(n *sitter.Node, pf *ParsedFile, parentFQ string, parentKind model.Kind) {
	varDecl := findChildByType(n, "variable_declaration")
	var id *sitter.Node
	if varDecl != nil {
		id = findChildByType(varDecl, "simple_identifier")
	}
	if id == nil {
		id = findChildByType(n, "simple_identifier")
	}
	if id == nil {
		return
	}
	name := id.Content(w.content)
	mods, annotations := w.modifiersOf(n)
	isConst := mods[model.ModConst]
	kind := model.KindProperty

	backing := strings.HasPrefix(name, "_")
	isDelegate := findChildByType(n, "property_delegate") != nil
	fq := joinFQ(qualify(w.pkg, parentFQ), name)
	decl := RawDeclaration{
		FQName: fq, SimpleName: name, Kind: kind, Location: nodeToLocation(w.file, n),
		Modifiers: mods, Annotations: annotations, ParentFQName: parentFQ, ParentKind: parentKind,
		KindData: model.KindSpecific{BackingField: backing},
		Convention: isConst || isDelegate,
	}
	pf.Declarations = append(pf.Declarations, decl)

	// Property initializer / delegate expression is reference-bearing.
	w.emitReferences(n, pf, fq, kind)
}

// emitSupertypeRefs walks a class/object's delegation_specifiers for
// Extends edges (class and interface supertypes alike) and Delegation edges
// (`class X : Y by z`).
func (w *kotlinWalk) emitSupertypeRefs(n *sitter.Node, pf *ParsedFile, sourceFQ string, sourceKind model.Kind) {
	specs := findChildByType(n, "delegation_specifiers")
	if specs == nil {
		return
	}
	for i := 0; i < int(specs.ChildCount()); i++ {
		spec := specs.Child(i)
		switch spec.Type() {
		case "delegation_specifier":
			if ut := findChildByType(spec, "user_type", "constructor_invocation"); ut != nil {
				target := firstTypeName(ut, w.content)
				refKind := model.RefExtends
				if strings.Contains(spec.Content(w.content), " by ") {
					refKind = model.RefDelegation
				} else if strings.Contains(spec.Content(w.content), "(") {
					refKind = model.RefExtends
				}
				pf.References = append(pf.References, RawReference{
					SourceFQName: sourceFQ, SourceKind: sourceKind, TargetName: target,
					Kind: refKind, Location: nodeToLocation(w.file, spec),
				})
				if refKind == model.RefDelegation {
					// also reference the delegate expression's type, best-effort:
					// the identifier after `by`.
					if idx := strings.Index(spec.Content(w.content), " by "); idx != -1 {
						delegateExpr := strings.TrimSpace(spec.Content(w.content)[idx+4:])
						pf.References = append(pf.References, RawReference{
							SourceFQName: sourceFQ, SourceKind: sourceKind, TargetName: firstIdent(delegateExpr),
							Kind: model.RefDelegation, Location: nodeToLocation(w.file, spec),
						})
					}
				}
			}
		}
	}
}

func firstTypeName(n *sitter.Node, content []byte) string {
	if t := findChildByType(n, "user_type"); t != nil {
		return stripGenerics(t.Content(content))
	}
	return stripGenerics(n.Content(content))
}

func firstIdent(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if !(r == '_' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return s[:i]
		}
	}
	return s
}

// emitReferences walks an expression/body subtree for Phase B edges,
// attributing everything found to sourceFQ (the innermost enclosing
// declaration, including lambda bodies per §4.2).
func (w *kotlinWalk) emitReferences(body *sitter.Node, pf *ParsedFile, sourceFQ string, sourceKind model.Kind) {
	walk(body, func(n *sitter.Node) bool {
		switch n.Type() {
		case "call_expression":
			callee := findChildByType(n, "simple_identifier", "navigation_expression")
			if callee != nil {
				if targetType, member, ok := w.superMemberCall(callee); ok {
					target := targetType + "." + member
					pf.References = append(pf.References, RawReference{
						SourceFQName: sourceFQ, SourceKind: sourceKind,
						TargetName: target, Kind: model.RefOverride,
						Location: nodeToLocation(w.file, n),
					})
					pf.References = append(pf.References, RawReference{
						SourceFQName: sourceFQ, SourceKind: sourceKind,
						TargetName: target, Kind: model.RefCall,
						Location: nodeToLocation(w.file, n),
					})
					return true
				}
				calleeName := rightmostName(callee, w.content)
				pf.References = append(pf.References, RawReference{
					SourceFQName: sourceFQ, SourceKind: sourceKind,
					TargetName: calleeName, Kind: model.RefCall,
					Location: nodeToLocation(w.file, n),
				})
				// tree-sitter-kotlin has no `new` keyword to distinguish
				// construction from an ordinary call: `Foo()` and `foo()` are
				// both call_expression. Kotlin's naming convention (types
				// capitalized, functions not) is the only syntactic signal
				// available, so a capitalized callee also gets an
				// Instantiation edge alongside the Call edge (§4.2/§4.7).
				if looksLikeTypeName(calleeName) {
					pf.References = append(pf.References, RawReference{
						SourceFQName: sourceFQ, SourceKind: sourceKind,
						TargetName: calleeName, Kind: model.RefInstantiation,
						Location: nodeToLocation(w.file, n),
					})
				}
				if extraKind, ok := isIntentExtraCall(calleeName); ok {
					if suffix := findChildByType(n, "call_suffix"); suffix != nil {
						if key, ok := firstStringLiteral(suffix, w.content, "string_literal"); ok {
							pf.IntentExtras = append(pf.IntentExtras, IntentExtraUse{
								Kind: extraKind, Key: key, Location: nodeToLocation(w.file, n),
							})
						}
					}
				}
			}
		case "navigation_expression":
			// Plain property access (not part of a call, handled above).
			if n.Parent() == nil || n.Parent().Type() != "call_expression" {
				pf.References = append(pf.References, RawReference{
					SourceFQName: sourceFQ, SourceKind: sourceKind,
					TargetName: rightmostName(n, w.content), Kind: model.RefRead,
					Location: nodeToLocation(w.file, n),
				})
			}
		case "call_suffix":
			// Constructor calls are recognized in the call_expression case,
			// by looksLikeTypeName on the callee.
		case "navigation_suffix":
		case "assignment":
			w.emitAssignment(n, pf, sourceFQ, sourceKind)
		case "postfix_expression", "prefix_expression":
			w.emitIncrement(n, pf, sourceFQ, sourceKind)
		case "user_type":
			pf.References = append(pf.References, RawReference{
				SourceFQName: sourceFQ, SourceKind: sourceKind,
				TargetName: stripGenerics(n.Content(w.content)), Kind: model.RefTypeUse,
				Location: nodeToLocation(w.file, n),
			})
		case "constructor_invocation":
			if t := findChildByType(n, "user_type"); t != nil {
				target := stripGenerics(t.Content(w.content))
				pf.References = append(pf.References, RawReference{
					SourceFQName: sourceFQ, SourceKind: sourceKind, TargetName: target,
					Kind: model.RefInstantiation, Location: nodeToLocation(w.file, n),
				})
			}
		case "simple_identifier":
			// Bare identifier reference (a read of a local var, property, or
			// enum case in a when-branch) when not already covered by a
			// navigation/call/assignment parent.
			if p := n.Parent(); p != nil {
				switch p.Type() {
				case "navigation_expression", "call_expression", "assignment",
					"class_parameter", "parameter", "variable_declaration", "import_header", "package_header":
					return true
				}
			}
			pf.References = append(pf.References, RawReference{
				SourceFQName: sourceFQ, SourceKind: sourceKind, TargetName: n.Content(w.content),
				Kind: model.RefRead, Location: nodeToLocation(w.file, n),
			})
		}
		return true
	})
}

func (w *kotlinWalk) emitAssignment(n *sitter.Node, pf *ParsedFile, sourceFQ string, sourceKind model.Kind) {
	target := n.Child(0)
	if target == nil {
		return
	}
	name := rightmostName(target, w.content)
	if name == "" {
		return
	}
	pf.References = append(pf.References, RawReference{
		SourceFQName: sourceFQ, SourceKind: sourceKind, TargetName: name, Kind: model.RefWrite,
		Location: nodeToLocation(w.file, n),
	})
	// Compound assignment (`x += y`) reads x too; plain `=` does not.
	op := n.Content(w.content)
	if strings.Contains(op, "+=") || strings.Contains(op, "-=") || strings.Contains(op, "*=") ||
		strings.Contains(op, "/=") || strings.Contains(op, "%=") {
		pf.References = append(pf.References, RawReference{
			SourceFQName: sourceFQ, SourceKind: sourceKind, TargetName: name, Kind: model.RefRead,
			Location: nodeToLocation(w.file, n),
		})
	}
}

func (w *kotlinWalk) emitIncrement(n *sitter.Node, pf *ParsedFile, sourceFQ string, sourceKind model.Kind) {
	text := n.Content(w.content)
	if !strings.Contains(text, "++") && !strings.Contains(text, "--") {
		return
	}
	id := findChildByType(n, "simple_identifier", "navigation_expression")
	if id == nil {
		return
	}
	name := rightmostName(id, w.content)
	for _, k := range []model.RefKind{model.RefRead, model.RefWrite} {
		pf.References = append(pf.References, RawReference{
			SourceFQName: sourceFQ, SourceKind: sourceKind, TargetName: name, Kind: k,
			Location: nodeToLocation(w.file, n),
		})
	}
}

// looksLikeTypeName applies Kotlin's naming convention (types capitalized,
// functions/variables not) to tell a constructor-shaped call from an
// ordinary one when the grammar gives no other signal.
func looksLikeTypeName(name string) bool {
	if name == "" {
		return false
	}
	r := rune(name[0])
	return r >= 'A' && r <= 'Z'
}

// superMemberCall recognizes `super<Type>.member(...)` navigation: callee is
// a navigation_expression whose left side is a super_expression carrying an
// explicit type argument. Plain `super.member()` (no type argument) is left
// to the ordinary call path since there is no named target to override.
func (w *kotlinWalk) superMemberCall(callee *sitter.Node) (targetType, member string, ok bool) {
	if callee.Type() != "navigation_expression" || callee.ChildCount() == 0 {
		return "", "", false
	}
	sup := callee.Child(0)
	if sup == nil || sup.Type() != "super_expression" {
		return "", "", false
	}
	typeNode := findChildByType(sup, "user_type", "type_identifier")
	if typeNode == nil {
		return "", "", false
	}
	suffix := callee.Child(int(callee.ChildCount()) - 1)
	if suffix == nil {
		return "", "", false
	}
	memberID := findChildByType(suffix, "simple_identifier")
	if memberID == nil {
		return "", "", false
	}
	return stripGenerics(typeNode.Content(w.content)), memberID.Content(w.content), true
}

// rightmostName resolves a navigation chain (`a.b.c`) to its rightmost
// identifier, per §4.2 ("reference to the rightmost resolvable name").
func rightmostName(n *sitter.Node, content []byte) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "simple_identifier", "identifier", "type_identifier":
		return n.Content(content)
	case "navigation_expression":
		last := n.Child(int(n.ChildCount()) - 1)
		if last != nil {
			if id := findChildByType(last, "simple_identifier"); id != nil {
				return id.Content(content)
			}
			return rightmostName(last, content)
		}
	case "call_expression":
		return rightmostName(n.Child(0), content)
	}
	return strings.TrimSpace(n.Content(content))
}

// qualify builds the dotted prefix used for FQ names: package, then any
// enclosing declaration chain (already-qualified parentFQ).
func qualify(pkg, parentFQ string) string {
	if parentFQ != "" {
		return parentFQ
	}
	return pkg
}
