package detectors

import (
	"strings"

	"github.com/c360studio/deadcode/internal/entrypoint"
)

// hasRetainAnnotation reports whether any of annotations is in the §6
// recognized set, comparing bare simple names the way parsers record them.
func hasRetainAnnotation(annotations []string) bool {
	for _, a := range annotations {
		if entrypoint.RetainAnnotations[simpleName(a)] {
			return true
		}
	}
	return false
}

// hasUnrecognizedAnnotation reports whether d carries any annotation not in
// the recognized set. It is the same test the aggregator applies, with its
// own copy, to lower confidence, since an unrecognized annotation may be a
// reflection-driving framework hook the analyzer has no insight into
// (§4.8); no detector in this package calls it.
func hasUnrecognizedAnnotation(annotations []string) bool {
	for _, a := range annotations {
		if !entrypoint.RetainAnnotations[simpleName(a)] {
			return true
		}
	}
	return false
}

// isAutoRetainClass reports whether simpleClassName matches one of the
// default component suffixes §4.5 seeds by convention (Activity, Fragment,
// Service, ...), reused here for DC003's "enclosing class is in an
// auto-retain suffix set" parameter skip.
func isAutoRetainClass(simpleClassName string) bool {
	for _, suffix := range entrypoint.DefaultComponentSuffixes {
		if len(simpleClassName) > len(suffix) && strings.HasSuffix(simpleClassName, suffix) {
			return true
		}
	}
	return false
}
