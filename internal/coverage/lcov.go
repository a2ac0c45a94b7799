package coverage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseLCOV parses an LCOV tracefile (`SF:`/`DA:`/`end_of_record` records)
// into an Overlay. LCOV is a plain line-oriented format; bufio.Scanner is
// the idiomatic stdlib reader for it, matching how the teacher's own
// line-oriented parsing (internal/utils, config env parsing) favors
// straightforward scanners over a parser-generator dependency.
func ParseLCOV(path string) (*Overlay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening LCOV file %s: %w", path, err)
	}
	defer f.Close()

	overlay := NewOverlay()
	var currentFile string
	var currentLines map[int]int

	flush := func() {
		if currentFile != "" && currentLines != nil {
			overlay.Merge(currentFile, &FileCoverage{Lines: currentLines})
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "SF:"):
			flush()
			currentFile = strings.TrimPrefix(line, "SF:")
			currentLines = make(map[int]int)
		case strings.HasPrefix(line, "DA:"):
			parts := strings.SplitN(strings.TrimPrefix(line, "DA:"), ",", 2)
			if len(parts) != 2 || currentLines == nil {
				continue
			}
			lineNo, err1 := strconv.Atoi(parts[0])
			hits, err2 := strconv.Atoi(parts[1])
			if err1 == nil && err2 == nil {
				currentLines[lineNo] = hits
			}
		case line == "end_of_record":
			flush()
			currentFile = ""
			currentLines = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading LCOV file %s: %w", path, err)
	}
	return overlay, nil
}
