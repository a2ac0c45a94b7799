package deletion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/deadcode/internal/model"
)

func finding(code model.Code, file string, line, endLine int) model.Finding {
	return model.Finding{
		Code: code, DeclarationName: "X", DeclarationKind: model.KindClass,
		Location:   model.Location{File: file, Line: line, EndLine: endLine},
		Confidence: model.ConfidenceHigh,
	}
}

func TestBuildPlan_SkipsUndeletableCodes(t *testing.T) {
	findings := []model.Finding{
		finding(model.DC001Unreferenced, "a.kt", 1, 3),
		finding(model.DC003UnusedParameter, "a.kt", 5, 5),
	}
	plan := BuildPlan(findings)
	assert.Len(t, plan.Skipped, 1)
	require.Len(t, plan.Files, 1)
	assert.Len(t, plan.Files[0].Ranges, 1)
}

func TestBuildPlan_MergesOverlappingRanges(t *testing.T) {
	findings := []model.Finding{
		finding(model.DC001Unreferenced, "a.kt", 1, 3),
		finding(model.DC002WriteOnly, "a.kt", 3, 5),
		finding(model.DC005UnusedEnumCase, "a.kt", 10, 10),
	}
	plan := BuildPlan(findings)
	ranges := plan.Files[0].Ranges
	require.Len(t, ranges, 2)
	assert.Equal(t, LineRange{1, 5}, ranges[0])
	assert.Equal(t, LineRange{10, 10}, ranges[1])
}

func TestExecute_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.kt")
	original := "line1\nline2\nline3\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	plan := BuildPlan([]model.Finding{finding(model.DC001Unreferenced, "a.kt", 2, 2)})
	res, err := Execute(plan, Options{Root: dir, DryRun: true})
	require.NoError(t, err)
	assert.Len(t, res.Deleted, 1)

	data, _ := os.ReadFile(path)
	assert.Equal(t, original, string(data), "dry-run must not modify the file")
}

func TestExecute_DeletesLinesAndWritesUndoScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.kt")
	original := "line1\nline2\nline3\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))
	undoPath := filepath.Join(dir, "undo.sh")

	plan := BuildPlan([]model.Finding{finding(model.DC001Unreferenced, "a.kt", 2, 2)})
	res, err := Execute(plan, Options{Root: dir, UndoScriptPath: undoPath})
	require.NoError(t, err)
	require.Len(t, res.Deleted, 1)
	assert.Empty(t, res.Failed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline3\n", string(data))

	undoContent, err := os.ReadFile(undoPath)
	require.NoError(t, err, "expected undo script to be written")
	assert.NotEmpty(t, undoContent)
}

func TestExecute_InteractiveDeclineSkips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.kt")
	original := "line1\nline2\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	plan := BuildPlan([]model.Finding{finding(model.DC001Unreferenced, "a.kt", 1, 1)})
	res, err := Execute(plan, Options{
		Root: dir, Interactive: true,
		Confirm: func(string) bool { return false },
	})
	require.NoError(t, err)
	assert.Len(t, res.Skipped, 1)
	assert.Empty(t, res.Deleted)

	data, _ := os.ReadFile(path)
	assert.Equal(t, original, string(data), "declined deletion must not modify the file")
}

func TestExecute_MissingFileFails(t *testing.T) {
	dir := t.TempDir()
	plan := BuildPlan([]model.Finding{finding(model.DC001Unreferenced, "missing.kt", 1, 1)})
	res, err := Execute(plan, Options{Root: dir})
	require.NoError(t, err)
	assert.Len(t, res.Failed, 1)
}
