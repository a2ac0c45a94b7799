package coverage

import (
	"encoding/xml"
	"fmt"
	"os"
)

// jacocoReport is the subset of the JaCoCo (and Kover, which emits the same
// schema) XML report this analyzer needs: per-source-file line coverage.
// encoding/xml is used here for the same reason as internal/xmlparse: no
// coverage-report library exists anywhere in the pack, and this is a
// straightforward fixed-schema document stdlib handles natively.
type jacocoReport struct {
	Packages []jacocoPackage `xml:"package"`
}

type jacocoPackage struct {
	Name          string             `xml:"name,attr"`
	SourceFiles   []jacocoSourceFile `xml:"sourcefile"`
}

type jacocoSourceFile struct {
	Name  string       `xml:"name,attr"`
	Lines []jacocoLine `xml:"line"`
}

type jacocoLine struct {
	Number int `xml:"nr,attr"`
	// "ci" counts covered instructions on this line; missed-but-present
	// lines carry ci="0".
	CoveredInstructions int `xml:"ci,attr"`
}

// ParseJaCoCo parses a JaCoCo or Kover XML coverage report and merges its
// per-line hit counts into overlay, keyed by "<package>/<sourcefile>" so it
// lines up with how the registry stores declaration file paths (relative,
// slash-separated, package-prefixed directory layout for JVM sources).
func ParseJaCoCo(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading JaCoCo report %s: %w", path, err)
	}

	var report jacocoReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing JaCoCo report %s: %w", path, err)
	}

	overlay := NewOverlay()
	for _, pkg := range report.Packages {
		for _, sf := range pkg.SourceFiles {
			fc := &FileCoverage{Lines: make(map[int]int)}
			for _, line := range sf.Lines {
				fc.Lines[line.Number] = line.CoveredInstructions
			}
			file := sf.Name
			if pkg.Name != "" {
				file = pkg.Name + "/" + sf.Name
			}
			overlay.Merge(file, fc)
		}
	}
	return overlay, nil
}
