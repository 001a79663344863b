package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/directorctl/internal/icinga"
	"github.com/alexisbeaulieu97/directorctl/pkg/diff"
)

var (
	changedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	unchangedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	removedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// renderResult produces the human-readable reconciliation report. When
// styled is false (stdout is not a terminal) the output is plain text.
func renderResult(result *icinga.Result, styled bool) string {
	var buf strings.Builder

	badge := "unchanged"
	style := unchangedStyle
	if result.Changed {
		badge = "changed"
		style = changedStyle
	}
	if styled {
		badge = style.Render(badge)
	}
	fmt.Fprintf(&buf, "%s  %s\n", badge, result.ObjectName)

	if result.Diff.Empty() {
		return buf.String()
	}

	unified := diff.RenderUnified(result.Diff.Before, result.Diff.After, "current", "declared")
	for _, line := range strings.Split(strings.TrimRight(unified, "\n"), "\n") {
		if styled {
			switch {
			case strings.HasPrefix(line, "-"):
				line = removedStyle.Render(line)
			case strings.HasPrefix(line, "+"):
				line = addedStyle.Render(line)
			}
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	return buf.String()
}
