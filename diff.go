package cesrstream

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff formats a and b with the default formatter and returns the line
// differences between the two reports.
func Diff(a, b string) string {
	f := DefaultFormatter()
	return DiffReports(f.Format(a), f.Format(b))
}

// DiffReports returns the line differences between reports from and to.
// Each line of the result starts with "-" (only in from), "+" (only in to)
// or " " (in both).  It returns "" if the reports are identical.
func DiffReports(from, to string) string {
	if from == to {
		return ""
	}
	dmp := diffpatch.New()
	// Lines are compared including their "\n", so make sure the last one
	// has one too.
	a, b, lines := dmp.DiffLinesToChars(from+"\n", to+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String()
}
