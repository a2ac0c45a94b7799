package report

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/c360studio/deadcode/internal/model"
)

// LoadBaseline reads a newline-delimited baseline file of canonical
// fingerprints `(code | fq_name | kind)` per §6, returning a set suitable
// for internal/aggregator.Config.BaselineFingerprints. A finding is
// suppressed iff its Fingerprint() appears in the returned set.
func LoadBaseline(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening baseline %s: %w", path, err)
	}
	defer f.Close()

	set := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		set[line] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading baseline %s: %w", path, err)
	}
	return set, nil
}

// GenerateBaseline writes every finding's fingerprint to path, one per
// line, sorted for a stable diff-friendly file (`--generate-baseline`).
func GenerateBaseline(path string, findings []model.Finding) error {
	fingerprints := make([]string, 0, len(findings))
	seen := make(map[string]bool, len(findings))
	for _, f := range findings {
		fp := f.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		fingerprints = append(fingerprints, fp)
	}
	sort.Strings(fingerprints)

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating baseline %s: %w", path, err)
	}
	defer w.Close()

	bw := bufio.NewWriter(w)
	for _, fp := range fingerprints {
		if _, err := fmt.Fprintln(bw, fp); err != nil {
			return err
		}
	}
	return bw.Flush()
}
