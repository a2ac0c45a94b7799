package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/deadcode/internal/detectors"
	"github.com/c360studio/deadcode/internal/model"
)

func TestIsLCOV(t *testing.T) {
	cases := map[string]bool{
		"coverage.info": true,
		"lcov.lcov":     true,
		"coverage.xml":  false,
		"noext":         false,
		"dir.info/file": false,
	}
	for path, want := range cases {
		assert.Equal(t, want, isLCOV(path), "isLCOV(%q)", path)
	}
}

func TestSelectDetectors_Nil(t *testing.T) {
	got := selectDetectors(nil)
	assert.Len(t, got, len(detectors.All()))
}

func TestSelectDetectors_Filtered(t *testing.T) {
	got := selectDetectors(map[model.Code]bool{model.DC001Unreferenced: true})
	require.Len(t, got, 1)
	assert.Equal(t, model.DC001Unreferenced, got[0].Code())
}

// Run is exercised end-to-end here against a manifest and a values file
// only, avoiding the tree-sitter grammars entirely: this covers
// discovery -> XML parsing -> registry -> graph -> reachability ->
// detectors -> aggregator wiring without depending on Kotlin/Java parsing.
func TestRun_XMLOnly(t *testing.T) {
	dir := t.TempDir()
	mustWrite := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	mustWrite("app/src/main/AndroidManifest.xml", `<?xml version="1.0"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example">
  <application>
    <activity android:name=".MainActivity" />
  </application>
</manifest>
`)
	mustWrite("app/src/main/res/values/strings.xml", `<?xml version="1.0"?>
<resources>
  <string name="app_name">Example</string>
  <string name="unused_greeting">Hello</string>
</resources>
`)

	res, err := Run(context.Background(), Options{
		Root:    dir,
		Targets: []string{"."},
		Workers: 2,
	})
	require.NoError(t, err)
	assert.NotZero(t, res.Registry.Len(), "expected at least the declared string resources in the registry")

	foundUnused := false
	for _, f := range res.Findings {
		if f.Code == model.DCUnusedResource && f.DeclarationName == "unused_greeting" {
			foundUnused = true
		}
	}
	assert.True(t, foundUnused, "expected unused_greeting to be flagged, got %+v", res.Findings)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Root: t.TempDir(), Targets: []string{"."}})
	assert.ErrorIs(t, err, ErrCancelled)
}
