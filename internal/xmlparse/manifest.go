// Package xmlparse implements the Android manifest and layout/values XML
// parsers described in §4.3, using the standard library's encoding/xml:
// no tree-sitter grammar for Android XML exists anywhere in the pack, and
// encoding/xml is the idiomatic Go choice for this shape of tag/attribute
// extraction.
package xmlparse

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/c360studio/deadcode/internal/model"
)

// manifestEntryFQName is the synthetic source declaration every manifest
// XmlBinding reference is attributed to (§4.3: "Emitted as XmlBinding
// references from a synthetic ManifestEntry node").
const manifestEntryFQName = "AndroidManifest"

var manifestEntryID = model.ID{FQName: manifestEntryFQName, Kind: "manifest_entry"}

// manifestXML mirrors just the elements and attributes §4.3 cares about;
// encoding/xml ignores everything else automatically.
type manifestXML struct {
	Package     string              `xml:"package,attr"`
	Application manifestApplication `xml:"application"`
}

type manifestApplication struct {
	Name       string              `xml:"name,attr"`
	Activities []manifestComponent `xml:"activity"`
	Services   []manifestComponent `xml:"service"`
	Receivers  []manifestComponent `xml:"receiver"`
	Providers  []manifestComponent `xml:"provider"`
}

type manifestComponent struct {
	Name string `xml:"name,attr"`
}

// ManifestResult is the set of References a manifest parse produces.
type ManifestResult struct {
	References []ManifestReference
}

// ManifestReference is one manifest-declared class binding.
type ManifestReference struct {
	ClassFQName string
	Location    model.Location
}

// ParseManifest parses an AndroidManifest.xml and emits an XmlBinding
// reference for every `<activity|service|receiver|provider|application
// android:name="...">` it finds, resolving each name against the manifest
// package attribute per §4.3's "dot/underscore conventions".
func ParseManifest(path string, content []byte) (*ManifestResult, error) {
	var m manifestXML
	if err := xml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	res := &ManifestResult{}
	add := func(name string) {
		if name == "" {
			return
		}
		res.References = append(res.References, ManifestReference{
			ClassFQName: resolveManifestName(m.Package, name),
			Location:    model.Location{File: path, Line: 1, Column: 1},
		})
	}

	add(m.Application.Name)
	for _, c := range m.Application.Activities {
		add(c.Name)
	}
	for _, c := range m.Application.Services {
		add(c.Name)
	}
	for _, c := range m.Application.Receivers {
		add(c.Name)
	}
	for _, c := range m.Application.Providers {
		add(c.Name)
	}
	return res, nil
}

// resolveManifestName applies the standard Android manifest name
// conventions: a leading "." is shorthand for the manifest package, a bare
// simple name (no dot) is implicitly package-relative, and an already
// fully-qualified name (contains a dot and doesn't start with one) is used
// as-is.
func resolveManifestName(pkg, name string) string {
	switch {
	case strings.HasPrefix(name, "."):
		return pkg + name
	case !strings.Contains(name, "."):
		if pkg == "" {
			return name
		}
		return pkg + "." + name
	default:
		return name
	}
}

// SourceID returns the synthetic ManifestEntry declaration id every
// manifest reference is attributed to as its source.
func SourceID() model.ID { return manifestEntryID }
