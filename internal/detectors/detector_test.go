package detectors

import (
	"testing"

	"github.com/c360studio/deadcode/internal/graph"
	"github.com/c360studio/deadcode/internal/model"
	"github.com/c360studio/deadcode/internal/reachability"
	"github.com/c360studio/deadcode/internal/registry"
	"github.com/c360studio/deadcode/internal/sourceparse"
)

func loc(file string, line int) model.Location {
	return model.Location{File: file, Line: line, EndLine: line}
}

func buildFixture(t *testing.T) (*registry.Registry, *graph.Graph, *reachability.Set) {
	t.Helper()
	file := "com/example/Sample.kt"
	pf := &sourceparse.ParsedFile{
		Path:    file,
		Package: "com.example",
		Declarations: []sourceparse.RawDeclaration{
			// DC001: an unreferenced top-level class.
			{FQName: "com.example.Orphan", SimpleName: "Orphan", Kind: model.KindClass, Location: loc(file, 1)},

			// DC002: a write-only property with no accessor pairing.
			{FQName: "com.example.Bar", SimpleName: "Bar", Kind: model.KindClass, Location: loc(file, 5)},
			{FQName: "com.example.Bar.counter", SimpleName: "counter", Kind: model.KindProperty,
				ParentFQName: "com.example.Bar", ParentKind: model.KindClass, Location: loc(file, 6)},
			{FQName: "com.example.Bar._backed", SimpleName: "_backed", Kind: model.KindProperty,
				ParentFQName: "com.example.Bar", ParentKind: model.KindClass, Location: loc(file, 7),
				KindData: model.KindSpecific{BackingField: true}},
			{FQName: "com.example.Bar.backed", SimpleName: "backed", Kind: model.KindProperty,
				ParentFQName: "com.example.Bar", ParentKind: model.KindClass, Location: loc(file, 8)},

			// DC003: an unused parameter on a plain method.
			{FQName: "com.example.Bar.doWork", SimpleName: "doWork", Kind: model.KindMethod,
				ParentFQName: "com.example.Bar", ParentKind: model.KindClass, Location: loc(file, 9), Disambiguator: "1"},
			{FQName: "com.example.Bar.doWork.unused", SimpleName: "unused", Kind: model.KindParameter,
				ParentFQName: "com.example.Bar.doWork", Location: loc(file, 9),
				KindData: model.KindSpecific{OwnerFunc: &model.ID{FQName: "com.example.Bar.doWork"}}},

			// DC005: an enum with one used and one unused case.
			{FQName: "com.example.Status", SimpleName: "Status", Kind: model.KindEnumClass, Location: loc(file, 12)},
			{FQName: "com.example.Status.ACTIVE", SimpleName: "ACTIVE", Kind: model.KindEnumCase,
				ParentFQName: "com.example.Status", ParentKind: model.KindEnumClass, Location: loc(file, 13),
				KindData: model.KindSpecific{VariantOf: &model.ID{FQName: "com.example.Status", Kind: model.KindEnumClass}}},
			{FQName: "com.example.Status.IDLE", SimpleName: "IDLE", Kind: model.KindEnumCase,
				ParentFQName: "com.example.Status", ParentKind: model.KindEnumClass, Location: loc(file, 14),
				KindData: model.KindSpecific{VariantOf: &model.ID{FQName: "com.example.Status", Kind: model.KindEnumClass}}},

			// DC008: sealed class with a class-like variant (has a
			// Constructor child) and an object variant, one used each way.
			{FQName: "com.example.Result", SimpleName: "Result", Kind: model.KindSealedClass, Location: loc(file, 20)},
			{FQName: "com.example.Result.Success", SimpleName: "Success", Kind: model.KindSealedVariant,
				ParentFQName: "com.example.Result", ParentKind: model.KindSealedClass, Location: loc(file, 21),
				KindData: model.KindSpecific{VariantOf: &model.ID{FQName: "com.example.Result", Kind: model.KindSealedClass}}},
			{FQName: "com.example.Result.Success.<init>", SimpleName: "<init>", Kind: model.KindConstructor,
				ParentFQName: "com.example.Result.Success", ParentKind: model.KindSealedVariant, Location: loc(file, 21)},
			{FQName: "com.example.Result.Failure", SimpleName: "Failure", Kind: model.KindSealedVariant,
				ParentFQName: "com.example.Result", ParentKind: model.KindSealedClass, Location: loc(file, 22),
				KindData: model.KindSpecific{VariantOf: &model.ID{FQName: "com.example.Result", Kind: model.KindSealedClass}}},
			{FQName: "com.example.Result.Failure.<init>", SimpleName: "<init>", Kind: model.KindConstructor,
				ParentFQName: "com.example.Result.Failure", ParentKind: model.KindSealedVariant, Location: loc(file, 22)},
			{FQName: "com.example.Result.Loading", SimpleName: "Loading", Kind: model.KindSealedVariant,
				ParentFQName: "com.example.Result", ParentKind: model.KindSealedClass, Location: loc(file, 23),
				KindData: model.KindSpecific{VariantOf: &model.ID{FQName: "com.example.Result", Kind: model.KindSealedClass}}},
			{FQName: "com.example.Result.Done", SimpleName: "Done", Kind: model.KindSealedVariant,
				ParentFQName: "com.example.Result", ParentKind: model.KindSealedClass, Location: loc(file, 24),
				KindData: model.KindSpecific{VariantOf: &model.ID{FQName: "com.example.Result", Kind: model.KindSealedClass}}},

			// DC009: a trivial override and a non-trivial override.
			{FQName: "com.example.Bar.onCreate", SimpleName: "onCreate", Kind: model.KindMethod,
				ParentFQName: "com.example.Bar", ParentKind: model.KindClass, Location: loc(file, 30),
				Modifiers: map[model.Modifier]bool{model.ModOverride: true},
				KindData:  model.KindSpecific{TrivialSuperCall: true}},
			{FQName: "com.example.Bar.onStop", SimpleName: "onStop", Kind: model.KindMethod,
				ParentFQName: "com.example.Bar", ParentKind: model.KindClass, Location: loc(file, 31),
				Modifiers: map[model.Modifier]bool{model.ModOverride: true}},
		},
		References: []sourceparse.RawReference{
			{SourceFQName: "com.example.Other", SourceKind: model.KindFunction, TargetName: "ACTIVE", Kind: model.RefRead, Location: loc(file, 40)},
			{SourceFQName: "com.example.Other", SourceKind: model.KindFunction, TargetName: "Result.Success", Kind: model.RefInstantiation, Location: loc(file, 41)},
			{SourceFQName: "com.example.Other", SourceKind: model.KindFunction, TargetName: "Done", Kind: model.RefRead, Location: loc(file, 42)},
			{SourceFQName: "com.example.Bar.doWork", SourceKind: model.KindMethod, TargetName: "counter", Kind: model.RefWrite, Location: loc(file, 9)},
			{SourceFQName: "com.example.Bar.doWork", SourceKind: model.KindMethod, TargetName: "_backed", Kind: model.RefWrite, Location: loc(file, 9)},
		},
	}

	reg := registry.New()
	reg.Ingest([]*sourceparse.ParsedFile{pf})
	reg.AddResource(model.Resource{Type: model.ResString, Name: "unused_label", File: "res/values/strings.xml", Line: 1})
	reg.AddResource(model.Resource{Type: model.ResString, Name: "used_label", File: "res/values/strings.xml", Line: 2})
	pf.References = append(pf.References, sourceparse.RawReference{
		SourceFQName: "com.example.Other", SourceKind: model.KindFunction, TargetName: "used_label",
		Kind: model.RefRead, Location: loc(file, 43),
	})

	g := graph.NewBuilder(reg).Build([]*sourceparse.ParsedFile{pf})
	// Seed Bar directly, standing in for an entry-point-retained class (e.g.
	// an Activity an entry-point seeder would find); Orphan is deliberately
	// left unseeded so it lands in Unreached for DC001.
	seeds := map[model.ID]bool{{FQName: "com.example.Bar", Kind: model.KindClass}: true}
	reached := reachability.Compute(reg, g, seeds)
	return reg, g, reached
}

func findCode(findings []model.Finding, code model.Code, name string) bool {
	for _, f := range findings {
		if f.Code == code && f.DeclarationName == name {
			return true
		}
	}
	return false
}

func TestUnreferencedDetector(t *testing.T) {
	reg, g, reached := buildFixture(t)
	ctx := &Context{Registry: reg, Graph: g, Reachable: reached}
	findings := unreferencedDetector{}.Detect(ctx)
	if !findCode(findings, model.DC001Unreferenced, "com.example.Orphan") {
		t.Errorf("expected Orphan to be flagged unreferenced, got %+v", findings)
	}
	if findCode(findings, model.DC001Unreferenced, "com.example.Bar") {
		t.Errorf("Bar is seeded as reachable and should not fire")
	}
}

func TestWriteOnlyDetector(t *testing.T) {
	reg, g, _ := buildFixture(t)
	ctx := &Context{Registry: reg, Graph: g}
	findings := writeOnlyDetector{}.Detect(ctx)
	if !findCode(findings, model.DC002WriteOnly, "com.example.Bar.counter") {
		t.Errorf("expected counter to be flagged write-only, got %+v", findings)
	}
	if findCode(findings, model.DC002WriteOnly, "com.example.Bar._backed") {
		t.Errorf("_backed has a matching public accessor and should be skipped")
	}
}

func TestUnusedParameterDetector(t *testing.T) {
	reg, g, _ := buildFixture(t)
	ctx := &Context{Registry: reg, Graph: g}
	findings := unusedParameterDetector{}.Detect(ctx)
	if !findCode(findings, model.DC003UnusedParameter, "com.example.Bar.doWork.unused") {
		t.Errorf("expected unused parameter to be flagged, got %+v", findings)
	}
}

func TestUnusedEnumCaseDetector(t *testing.T) {
	reg, g, _ := buildFixture(t)
	ctx := &Context{Registry: reg, Graph: g}
	findings := unusedEnumCaseDetector{}.Detect(ctx)
	if !findCode(findings, model.DC005UnusedEnumCase, "com.example.Status.IDLE") {
		t.Errorf("expected IDLE to be flagged unused, got %+v", findings)
	}
	if findCode(findings, model.DC005UnusedEnumCase, "com.example.Status.ACTIVE") {
		t.Errorf("ACTIVE is referenced and should not fire")
	}
}

func TestUnusedSealedVariantDetector(t *testing.T) {
	reg, g, _ := buildFixture(t)
	ctx := &Context{Registry: reg, Graph: g}
	findings := unusedSealedVariantDetector{}.Detect(ctx)
	if !findCode(findings, model.DC008UnusedSealedVariant, "com.example.Result.Failure") {
		t.Errorf("expected Failure (never instantiated) to be flagged, got %+v", findings)
	}
	if !findCode(findings, model.DC008UnusedSealedVariant, "com.example.Result.Loading") {
		t.Errorf("expected Loading (object, never referenced) to be flagged, got %+v", findings)
	}
	if findCode(findings, model.DC008UnusedSealedVariant, "com.example.Result.Success") {
		t.Errorf("Success was instantiated and should not fire")
	}
	if findCode(findings, model.DC008UnusedSealedVariant, "com.example.Result.Done") {
		t.Errorf("Done (object) was referenced by name and should not fire")
	}
}

func TestRedundantOverrideDetector(t *testing.T) {
	reg, g, _ := buildFixture(t)
	ctx := &Context{Registry: reg, Graph: g}
	findings := redundantOverrideDetector{}.Detect(ctx)
	if !findCode(findings, model.DC009RedundantOverride, "com.example.Bar.onCreate") {
		t.Errorf("expected onCreate to be flagged redundant, got %+v", findings)
	}
	if findCode(findings, model.DC009RedundantOverride, "com.example.Bar.onStop") {
		t.Errorf("onStop has no trivial-super-call marker and should not fire")
	}
}

func TestUnusedResourceDetector(t *testing.T) {
	reg, g, _ := buildFixture(t)
	ctx := &Context{Registry: reg, Graph: g}
	findings := unusedResourceDetector{}.Detect(ctx)
	if !findCode(findings, model.DCUnusedResource, "unused_label") {
		t.Errorf("expected unused_label to be flagged, got %+v", findings)
	}
	if findCode(findings, model.DCUnusedResource, "used_label") {
		t.Errorf("used_label is referenced and should not fire")
	}
}

func TestUnusedIntentExtraDetector(t *testing.T) {
	ctx := &Context{
		IntentExtras: []sourceparse.IntentExtraUse{
			{Kind: "put", Key: "EXTRA_ID", Location: loc("a.kt", 1)},
			{Kind: "put", Key: "EXTRA_NAME", Location: loc("a.kt", 2)},
			{Kind: "get", Key: "EXTRA_NAME", Location: loc("b.kt", 5)},
		},
	}
	findings := unusedIntentExtraDetector{}.Detect(ctx)
	if !findCode(findings, model.DCIntentExtra, "EXTRA_ID") {
		t.Errorf("expected EXTRA_ID to be flagged unused, got %+v", findings)
	}
	if findCode(findings, model.DCIntentExtra, "EXTRA_NAME") {
		t.Errorf("EXTRA_NAME has a matching get call and should not fire")
	}
}
