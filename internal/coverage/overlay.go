// Package coverage parses runtime coverage reports (JaCoCo/Kover XML, LCOV)
// into a per-file line-range overlay used to raise finding confidence to
// Confirmed per §4.8.
package coverage

import "github.com/c360studio/deadcode/internal/model"

// LineHit records whether one source line executed at least once.
type LineHit struct {
	Line int
	Hits int
}

// FileCoverage is one file's line-by-line hit counts.
type FileCoverage struct {
	Lines map[int]int // line -> hit count
}

// Overlay is the merged coverage view across every supplied report.
type Overlay struct {
	files map[string]*FileCoverage
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{files: make(map[string]*FileCoverage)}
}

// Merge adds fc's line hits for file into the overlay, summing hit counts
// when the same file/line appears in more than one report.
func (o *Overlay) Merge(file string, fc *FileCoverage) {
	existing, ok := o.files[file]
	if !ok {
		existing = &FileCoverage{Lines: make(map[int]int)}
		o.files[file] = existing
	}
	for line, hits := range fc.Lines {
		existing.Lines[line] += hits
	}
}

// MergeOverlay folds every file/line hit count from other into o, summing
// hit counts on overlap — used when multiple --coverage reports are
// supplied and need to combine into one view.
func (o *Overlay) MergeOverlay(other *Overlay) {
	if other == nil {
		return
	}
	for file, fc := range other.files {
		o.Merge(file, fc)
	}
}

// IsZeroExecuted reports whether every line in loc's span has a recorded
// hit count of zero for its file — §4.8's "coverage overlay reports the
// declaration's source line range as having zero executions". A file with
// no coverage data at all is not considered zero-executed (no data beats
// false confirmation).
func (o *Overlay) IsZeroExecuted(loc model.Location) bool {
	fc, ok := o.files[loc.File]
	if !ok {
		return false
	}
	sawAny := false
	for line := loc.Line; line <= loc.EndLine; line++ {
		hits, recorded := fc.Lines[line]
		if !recorded {
			continue
		}
		sawAny = true
		if hits > 0 {
			return false
		}
	}
	return sawAny
}
