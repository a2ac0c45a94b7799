package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/c360studio/deadcode/internal/model"
)

// WriteTerminal renders findings grouped by file: a line with the file path,
// then one indented `line:column: message [CODE] (confidence)` line per
// finding, followed by a one-line summary.
func WriteTerminal(w io.Writer, findings []model.Finding) error {
	var lastFile string
	for _, f := range findings {
		if f.Location.File != lastFile {
			if lastFile != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s\n", f.Location.File)
			lastFile = f.Location.File
		}
		fmt.Fprintf(w, "  %d:%d: %s [%s] (%s)\n",
			f.Location.Line, f.Location.Column, f.Message, f.Code, f.Confidence)
	}

	s := Summarize(findings)
	if s.Total == 0 {
		fmt.Fprintln(w, "no findings")
		return nil
	}
	fmt.Fprintf(w, "\n%s finding%s\n", strconv.Itoa(s.Total), plural(s.Total))
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
