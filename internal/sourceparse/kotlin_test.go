package sourceparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/deadcode/internal/model"
)

func parseKotlin(t *testing.T, src string) *ParsedFile {
	t.Helper()
	ts, err := NewTreeSitterParser()
	require.NoError(t, err)
	pf, err := NewKotlinParser(ts).Parse("Test.kt", []byte(src))
	require.NoError(t, err)
	return pf
}

func hasReference(refs []RawReference, target string, kind model.RefKind) bool {
	for _, r := range refs {
		if r.TargetName == target && r.Kind == kind {
			return true
		}
	}
	return false
}

func TestKotlinParser_ConstructorCallEmitsInstantiation(t *testing.T) {
	pf := parseKotlin(t, `
sealed class Result
data class Success(val value: Int) : Result()
fun build(): Result {
    return Success(1)
}
`)
	assert.True(t, hasReference(pf.References, "Success", model.RefCall),
		"expected a Call edge to Success, got %+v", pf.References)
	assert.True(t, hasReference(pf.References, "Success", model.RefInstantiation),
		"plain Kotlin construction must also produce an Instantiation edge, got %+v", pf.References)
}

func TestKotlinParser_LowercaseCallHasNoInstantiation(t *testing.T) {
	pf := parseKotlin(t, `
fun helper() {}
fun caller() {
    helper()
}
`)
	assert.True(t, hasReference(pf.References, "helper", model.RefCall))
	assert.False(t, hasReference(pf.References, "helper", model.RefInstantiation),
		"an ordinary lowercase function call must not be treated as construction")
}

func TestKotlinParser_SuperMemberCallEmitsOverrideAndCall(t *testing.T) {
	pf := parseKotlin(t, `
open class Base {
    open fun greet() {}
}
class Derived : Base() {
    override fun greet() {
        super<Base>.greet()
    }
}
`)
	assert.True(t, hasReference(pf.References, "Base.greet", model.RefOverride),
		"expected an Override edge to Base.greet, got %+v", pf.References)
	assert.True(t, hasReference(pf.References, "Base.greet", model.RefCall),
		"expected a Call edge to Base.greet, got %+v", pf.References)
}
