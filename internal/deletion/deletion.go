// Package deletion turns confirmed findings into source edits: building a
// per-file line-range plan, applying it with per-deletion rollback on
// failure, and optionally recording an undo script, per §6's `--delete`,
// `--interactive`, `--dry-run`, `--undo-script` flags and §7's "non-dry
// delete failures roll back that one deletion and continue."
package deletion

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/c360studio/deadcode/internal/model"
)

// LineRange is an inclusive 1-based line span to remove from a file.
type LineRange struct {
	Start, End int
}

// FileDeletion is every range to remove from one file, and the findings
// that produced them.
type FileDeletion struct {
	Path     string
	Ranges   []LineRange
	Findings []model.Finding
}

// Plan is the full set of edits a --delete run would make.
type Plan struct {
	Files  []FileDeletion
	Skipped []model.Finding // findings whose code is not safely deletable at declaration granularity
}

// undeletable lists codes §9's overload-safety and fine-grained-location
// caveats make unsafe to remove by line range alone: DC003 (a parameter can
// share its declaration line with sibling parameters), DC101 (an intent
// extra key has no declaration site, only a reference site), and DC103
// (runtime-dead is layered on a statically *reachable* declaration —
// deleting it on coverage evidence alone is a judgment call left to the
// user, not automated).
var undeletable = map[model.Code]bool{
	model.DC003UnusedParameter: true,
	model.DCIntentExtra:        true,
	model.DCRuntimeDead:        true,
}

// BuildPlan groups findings by file and merges overlapping/adjacent line
// ranges, deterministically ordered by path then start line so the plan
// (and the deletions it drives) do not depend on findings' incoming order.
func BuildPlan(findings []model.Finding) *Plan {
	byFile := map[string][]model.Finding{}
	plan := &Plan{}

	for _, f := range findings {
		if undeletable[f.Code] {
			plan.Skipped = append(plan.Skipped, f)
			continue
		}
		byFile[f.Location.File] = append(byFile[f.Location.File], f)
	}

	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		fs := byFile[path]
		sort.Slice(fs, func(i, j int) bool { return fs[i].Location.Line < fs[j].Location.Line })

		var ranges []LineRange
		for _, f := range fs {
			end := f.Location.EndLine
			if end < f.Location.Line {
				end = f.Location.Line
			}
			ranges = append(ranges, LineRange{Start: f.Location.Line, End: end})
		}
		plan.Files = append(plan.Files, FileDeletion{Path: path, Ranges: mergeRanges(ranges), Findings: fs})
	}

	return plan
}

func mergeRanges(ranges []LineRange) []LineRange {
	if len(ranges) == 0 {
		return nil
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	merged := []LineRange{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End+1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Options configures how a Plan is carried out.
type Options struct {
	Root           string
	DryRun         bool
	Interactive    bool
	UndoScriptPath string
	// Confirm, when set, replaces the default stdin prompt for --interactive
	// (tests supply a canned answer instead of reading a terminal).
	Confirm func(prompt string) bool
}

// FailedDeletion pairs a file the apply step could not safely modify with
// the error that stopped it.
type FailedDeletion struct {
	Path string
	Err  error
}

// Result reports what Execute actually did.
type Result struct {
	Deleted []model.Finding
	Skipped []model.Finding
	Failed  []FailedDeletion
}

// Execute applies plan to disk. Each file is handled independently: a
// failure (permission denied, file vanished since Discovery ran) rolls back
// that file's edit and moves on to the next, per §7. DryRun performs no
// writes at all; Interactive prompts once per file before editing it.
func Execute(plan *Plan, opts Options) (*Result, error) {
	res := &Result{Skipped: append([]model.Finding{}, plan.Skipped...)}

	var undo strings.Builder
	undo.WriteString("#!/bin/sh\n# generated by deadcode --undo-script; restores every file --delete modified.\nset -e\n")

	confirm := opts.Confirm
	if confirm == nil {
		confirm = promptStdin
	}

	for _, fd := range plan.Files {
		abs := fd.Path
		if opts.Root != "" && !filepath.IsAbs(abs) {
			abs = filepath.Join(opts.Root, fd.Path)
		}

		if opts.Interactive {
			if !confirm(fmt.Sprintf("delete %d finding(s) in %s? [y/N] ", len(fd.Findings), fd.Path)) {
				res.Skipped = append(res.Skipped, fd.Findings...)
				continue
			}
		}

		if opts.DryRun {
			res.Deleted = append(res.Deleted, fd.Findings...)
			continue
		}

		original, err := os.ReadFile(abs)
		if err != nil {
			res.Failed = append(res.Failed, FailedDeletion{Path: fd.Path, Err: err})
			continue
		}

		edited := applyRanges(original, fd.Ranges)

		info, statErr := os.Stat(abs)
		mode := os.FileMode(0o644)
		if statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(abs, edited, mode); err != nil {
			// Roll back: best effort, the write may have partially landed.
			_ = os.WriteFile(abs, original, mode)
			res.Failed = append(res.Failed, FailedDeletion{Path: fd.Path, Err: err})
			continue
		}

		writeUndoEntry(&undo, fd.Path, original)
		res.Deleted = append(res.Deleted, fd.Findings...)
	}

	if opts.UndoScriptPath != "" && !opts.DryRun {
		if err := os.WriteFile(opts.UndoScriptPath, []byte(undo.String()), 0o755); err != nil {
			return res, fmt.Errorf("writing undo script: %w", err)
		}
	}

	return res, nil
}

// applyRanges removes every 1-based inclusive line range from content,
// splitting and rejoining on "\n"; a "\r" before a newline stays part of
// its line.
func applyRanges(content []byte, ranges []LineRange) []byte {
	lines := strings.Split(string(content), "\n")
	remove := make([]bool, len(lines)+1) // 1-based
	for _, r := range ranges {
		for ln := r.Start; ln <= r.End && ln < len(remove); ln++ {
			remove[ln] = true
		}
	}

	var out []string
	for i, line := range lines {
		lineNo := i + 1
		if lineNo < len(remove) && remove[lineNo] {
			continue
		}
		out = append(out, line)
	}
	return []byte(strings.Join(out, "\n"))
}

// writeUndoEntry appends a heredoc that restores path's original content,
// keeping the undo script self-contained (no side-car backup files to lose
// track of).
func writeUndoEntry(w *strings.Builder, path string, original []byte) {
	marker := "DEADCODE_UNDO_EOF"
	fmt.Fprintf(w, "mkdir -p %q\n", filepath.Dir(path))
	fmt.Fprintf(w, "cat > %q <<'%s'\n", path, marker)
	w.Write(original)
	if len(original) == 0 || original[len(original)-1] != '\n' {
		w.WriteString("\n")
	}
	fmt.Fprintf(w, "%s\n", marker)
}

func promptStdin(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}
