// Package config loads the analyzer's project configuration file (§6): the
// targets/exclude/retain globs, explicit entry points, report formatting
// defaults, per-detector enable flags, and Android-specific options. Config
// file format is inferred from extension — YAML (gopkg.in/yaml.v3) or TOML
// (github.com/pelletier/go-toml/v2) — the same two serialization libraries
// the teacher already depends on, generalized here from its database/API
// settings to the analyzer's own schema.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ReportConfig mirrors §6's `report.{format, group_by, show_code}` keys.
type ReportConfig struct {
	Format   string `yaml:"format" toml:"format"`
	GroupBy  string `yaml:"group_by" toml:"group_by"`
	ShowCode bool   `yaml:"show_code" toml:"show_code"`
}

// DetectionConfig mirrors §6's `detection.{unused_class,…}` keys: a
// per-detector-code enable switch. A key absent from the file leaves its
// field nil, which defaults to enabled — the config file is opt-out, not opt-in, matching the CLI's
// `--detect` flag semantics (an empty list means "run everything").
type DetectionConfig struct {
	UnusedClass            *bool `yaml:"unused_class,omitempty" toml:"unused_class,omitempty"`
	UnusedFunction         *bool `yaml:"unused_function,omitempty" toml:"unused_function,omitempty"`
	UnusedProperty         *bool `yaml:"unused_property,omitempty" toml:"unused_property,omitempty"`
	WriteOnlyProperty      *bool `yaml:"write_only_property,omitempty" toml:"write_only_property,omitempty"`
	UnusedParameter        *bool `yaml:"unused_parameter,omitempty" toml:"unused_parameter,omitempty"`
	UnusedEnumCase         *bool `yaml:"unused_enum_case,omitempty" toml:"unused_enum_case,omitempty"`
	UnusedSealedVariant    *bool `yaml:"unused_sealed_variant,omitempty" toml:"unused_sealed_variant,omitempty"`
	RedundantOverride      *bool `yaml:"redundant_override,omitempty" toml:"redundant_override,omitempty"`
	UnusedIntentExtra      *bool `yaml:"unused_intent_extra,omitempty" toml:"unused_intent_extra,omitempty"`
	UnusedResource         *bool `yaml:"unused_resource,omitempty" toml:"unused_resource,omitempty"`
}

// AndroidConfig mirrors §6's `android.{parse_manifest, parse_layouts,
// auto_retain_components, component_patterns}` keys.
type AndroidConfig struct {
	ParseManifest        bool     `yaml:"parse_manifest" toml:"parse_manifest"`
	ParseLayouts         bool     `yaml:"parse_layouts" toml:"parse_layouts"`
	AutoRetainComponents bool     `yaml:"auto_retain_components" toml:"auto_retain_components"`
	ComponentPatterns    []string `yaml:"component_patterns" toml:"component_patterns"`
}

// Config is the fully-parsed, defaulted project configuration (§6).
type Config struct {
	Targets        []string        `yaml:"targets" toml:"targets"`
	Exclude        []string        `yaml:"exclude" toml:"exclude"`
	RetainPatterns []string        `yaml:"retain_patterns" toml:"retain_patterns"`
	EntryPoints    []string        `yaml:"entry_points" toml:"entry_points"`
	Report         ReportConfig    `yaml:"report" toml:"report"`
	Detection      DetectionConfig `yaml:"detection" toml:"detection"`
	Android        AndroidConfig   `yaml:"android" toml:"android"`
}

// Default returns the configuration used when no config file is found: one
// target (the project root), no excludes/retains beyond discovery's own
// built-in defaults, terminal reporting, every detector enabled, and full
// Android XML parsing.
func Default() *Config {
	return &Config{
		Targets: []string{"."},
		Report:  ReportConfig{Format: "terminal", GroupBy: "file", ShowCode: true},
		Android: AndroidConfig{
			ParseManifest:        true,
			ParseLayouts:         true,
			AutoRetainComponents: true,
		},
	}
}

// candidateNames are the config file names Discover tries, in precedence
// order, after an explicit --config path (§6: "--config, then
// .deadcode.yml|yaml|toml, then deadcode.yml|yaml|toml in the project root").
var candidateNames = []string{
	".deadcode.yml", ".deadcode.yaml", ".deadcode.toml",
	"deadcode.yml", "deadcode.yaml", "deadcode.toml",
}

// Discover finds the config file to load per §6's precedence: an explicit
// path wins outright (and must exist); otherwise the first candidate name
// found directly under root is used; if none exist, Discover returns "" and
// Load's caller should fall back to Default().
func Discover(explicit, root string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	for _, name := range candidateNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// Load reads and parses the config file at path, merging it over Default()
// so any key the file omits keeps its default value. Format is chosen by
// file extension: .yml/.yaml decode with yaml.v3, .toml with go-toml/v2.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unrecognized config format for %s (expected .yml, .yaml, or .toml)", path)
	}

	if len(cfg.Targets) == 0 {
		cfg.Targets = []string{"."}
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = "terminal"
	}
	if cfg.Report.GroupBy == "" {
		cfg.Report.GroupBy = "file"
	}
	return cfg, nil
}

// DetectorEnabled reports whether det (a model.Code string, e.g. "DC001")
// is enabled under this config's Detection block, consulting detectionField
// to map the code to its config key. Codes without config plumbing (e.g. a
// newly added detector) default to enabled.
func (c *Config) DetectorEnabled(code string) bool {
	ptr, ok := c.detectionField(code)
	if !ok || ptr == nil {
		return true
	}
	return *ptr
}

// detectionField maps a detector code to its DetectionConfig pointer field,
// so a nil (unset-in-file) field is distinguishable from an explicit false.
func (c *Config) detectionField(code string) (*bool, bool) {
	switch code {
	case "DC001":
		return c.Detection.UnusedClass, true
	case "DC002":
		return c.Detection.WriteOnlyProperty, true
	case "DC003":
		return c.Detection.UnusedParameter, true
	case "DC005":
		return c.Detection.UnusedEnumCase, true
	case "DC008":
		return c.Detection.UnusedSealedVariant, true
	case "DC009":
		return c.Detection.RedundantOverride, true
	case "DC101":
		return c.Detection.UnusedIntentExtra, true
	case "DC102":
		return c.Detection.UnusedResource, true
	default:
		return nil, false
	}
}
