package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mthomas46/jirassic-pack-sub000/internal/model"
)

var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")) // cyan
	styleSummary = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray

	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleDebug   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))            // yellow
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
)

// Terminal renders a report for interactive display: styled heading,
// padded table, summary line.
func (r Report) Terminal() string {
	var b strings.Builder
	b.WriteString(styleHeading.Render(r.Type))
	b.WriteString("\n")

	if len(r.Data) == 0 {
		b.WriteString(styleDim.Render("No data available."))
		b.WriteString("\n")
	} else {
		rendered := MarkdownTable(r.Headers, r.Data)
		for i, line := range strings.Split(rendered, "\n") {
			if i == 0 {
				line = styleHeader.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if r.Summary != nil && *r.Summary != "" {
		b.WriteString(styleSummary.Render(*r.Summary))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderEntry formats one log entry for the terminal with a
// severity-colored level tag.
func RenderEntry(e model.LogEntry) string {
	ts := ""
	if e.HasTimestamp() {
		ts = e.Timestamp.Format("2006-01-02 15:04:05") + " "
	}
	parts := fmt.Sprintf("%s%s %s %s", ts, levelTag(e.Level), styleDim.Render(e.Feature), e.Message)
	if e.CorrelationID != "" {
		parts += " " + styleDim.Render("["+e.CorrelationID+"]")
	}
	return parts
}

func levelTag(level string) string {
	padded := fmt.Sprintf("%-7s", level)
	switch level {
	case "DEBUG":
		return styleDebug.Render(padded)
	case "WARNING":
		return styleWarning.Render(padded)
	case "ERROR":
		return styleError.Render(padded)
	default:
		return styleInfo.Render(padded)
	}
}
