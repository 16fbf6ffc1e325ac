package detector

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines = 20
	maxDiffRunes = 500
)

// Diff renders a bounded line diff between two page bodies. Removed lines
// are prefixed with "- " and added lines with "+ "; unchanged runs are
// omitted. At most maxDiffLines lines are emitted.
func Diff(oldText, newText string) string {
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lines)

	var b strings.Builder
	count := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		prefix := "+ "
		if d.Type == diffmatchpatch.DiffDelete {
			prefix = "- "
		}
		for _, line := range strings.Split(strings.TrimRight(d.Text, "\n"), "\n") {
			if count >= maxDiffLines {
				return b.String()
			}
			b.WriteString(prefix)
			b.WriteString(line)
			b.WriteByte('\n')
			count++
		}
	}

	if b.Len() == 0 {
		return "Content changed (diff too large to display)"
	}
	return b.String()
}
