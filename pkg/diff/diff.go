package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RenderUnified renders two attribute documents (before/after maps of
// stringified values) as a unified-style diff. Returns the empty string when
// the documents are identical.
func RenderUnified(before, after map[string]string, beforeLabel, afterLabel string) string {
	beforeDoc := renderDocument(before)
	afterDoc := renderDocument(after)
	if beforeDoc == afterDoc {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(beforeDoc, afterDoc, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n", beforeLabel)
	fmt.Fprintf(&buf, "+++ %s\n", afterLabel)

	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffEqual:
			prefix = " "
		}
		for _, line := range splitLines(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}

	return buf.String()
}

// renderDocument lays the attribute map out as sorted "key: value" lines so
// the textual diff is deterministic.
func renderDocument(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&buf, "%s: %s\n", key, attrs[key])
	}
	return buf.String()
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}
