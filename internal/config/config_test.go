package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if len(cfg.Targets) != 1 || cfg.Targets[0] != "." {
		t.Errorf("expected default target '.', got %v", cfg.Targets)
	}
	if cfg.Report.Format != "terminal" {
		t.Errorf("expected default report format terminal, got %s", cfg.Report.Format)
	}
	if !cfg.Android.ParseManifest || !cfg.Android.ParseLayouts {
		t.Error("expected Android XML parsing on by default")
	}
}

func TestDiscover_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	if err := os.WriteFile(path, []byte("targets: [app]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Discover(path, dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if found != path {
		t.Errorf("expected %s, got %s", path, found)
	}
}

func TestDiscover_ExplicitMissing(t *testing.T) {
	if _, err := Discover("/nonexistent/deadcode.yml", t.TempDir()); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestDiscover_Precedence(t *testing.T) {
	dir := t.TempDir()
	// Both a dotfile and a bare-name config exist; dotfile wins per §6.
	if err := os.WriteFile(filepath.Join(dir, "deadcode.yml"), []byte("targets: [app]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".deadcode.yml"), []byte("targets: [lib]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Discover("", dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if filepath.Base(found) != ".deadcode.yml" {
		t.Errorf("expected .deadcode.yml to win, got %s", found)
	}
}

func TestDiscover_NoneFound(t *testing.T) {
	found, err := Discover("", t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if found != "" {
		t.Errorf("expected empty string when no config found, got %s", found)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deadcode.yml")
	contents := `
targets:
  - app/src/main
exclude:
  - "**/test/**"
retain_patterns:
  - "*ViewModel"
entry_points:
  - com.example.MainKt
report:
  format: json
  group_by: code
  show_code: true
detection:
  unused_resource: false
android:
  parse_manifest: true
  parse_layouts: false
  auto_retain_components: true
  component_patterns:
    - Presenter
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0] != "app/src/main" {
		t.Errorf("unexpected targets: %v", cfg.Targets)
	}
	if cfg.Report.Format != "json" {
		t.Errorf("expected format json, got %s", cfg.Report.Format)
	}
	if cfg.DetectorEnabled("DC102") {
		t.Error("expected DC102 (unused resource) disabled by config")
	}
	if !cfg.DetectorEnabled("DC001") {
		t.Error("expected DC001 enabled by default (not set in file)")
	}
	if cfg.Android.ParseLayouts {
		t.Error("expected parse_layouts false")
	}
	if len(cfg.Android.ComponentPatterns) != 1 || cfg.Android.ComponentPatterns[0] != "Presenter" {
		t.Errorf("unexpected component patterns: %v", cfg.Android.ComponentPatterns)
	}
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deadcode.toml")
	contents := `
targets = ["app"]

[report]
format = "sarif"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Report.Format != "sarif" {
		t.Errorf("expected format sarif, got %s", cfg.Report.Format)
	}
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Report.Format != "terminal" {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoad_UnrecognizedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deadcode.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unrecognized config extension")
	}
}
