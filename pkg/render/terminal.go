package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/racefeedback/pkg/locale"
	"github.com/dkoosis/racefeedback/pkg/playwright"
	"github.com/dkoosis/racefeedback/pkg/score"
)

// maxDetailLines caps the assertion output shown under each failure.
const maxDetailLines = 3

// Terminal renders a trace for an interactive terminal via lipgloss.
// It shows the same content as Trace plus each failure's error message.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats the run for terminal display.
func (t *Terminal) Render(loc *locale.Table, rep *playwright.Report, mark score.Mark, maxScore float64) string {
	var sb strings.Builder

	lines := strings.SplitN(Summary(loc, rep, mark, maxScore), "\n", 2)
	sb.WriteString(t.markLineStyle(float64(mark), maxScore).Render(lines[0]))
	sb.WriteString("\n")
	if len(lines) > 1 {
		sb.WriteString(t.theme.Muted.Render(lines[1]))
		sb.WriteString("\n")
	}

	failed := rep.Failed()
	entries := make([]string, len(failed))
	for i, c := range failed {
		entries[i] = numbered(i, loc.Describe(c.Title))
	}
	rule := t.theme.Muted.Render(strings.Repeat(t.theme.Icons.Rule, t.ruleWidth(entries)))

	sb.WriteString(rule)
	sb.WriteString("\n")
	for i, c := range failed {
		sb.WriteString(t.theme.Error.Render(t.theme.Icons.Fail + " "))
		sb.WriteString(entries[i])
		sb.WriteString("\n")
		for _, line := range detailLines(c.ErrorMessage) {
			sb.WriteString("    ")
			sb.WriteString(t.theme.Muted.Render(runewidth.Truncate(line, t.width-4, "…")))
			sb.WriteString("\n")
		}
	}
	if len(failed) == 0 {
		sb.WriteString(t.theme.Success.Render(t.theme.Icons.Pass))
		sb.WriteString("\n")
	}
	sb.WriteString(rule)
	sb.WriteString("\n")
	return sb.String()
}

// ruleWidth is the widest entry in terminal cells, bounded by the
// delimiter length below and the terminal width above.
func (t *Terminal) ruleWidth(entries []string) int {
	w := runewidth.StringWidth(Delimiter)
	for _, e := range entries {
		// +2 for the status icon and its trailing space
		if ew := runewidth.StringWidth(e) + 2; ew > w {
			w = ew
		}
	}
	if w > t.width {
		w = t.width
	}
	return w
}

// markLineStyle colors the mark by outcome and adds the theme's emphasis.
func (t *Terminal) markLineStyle(mark, maxScore float64) lipgloss.Style {
	return t.markStyle(mark, maxScore).Inherit(t.theme.Bold)
}

func (t *Terminal) markStyle(mark, maxScore float64) lipgloss.Style {
	switch {
	case mark >= maxScore:
		return t.theme.Success
	case mark > 0:
		return t.theme.Partial
	default:
		return t.theme.Error
	}
}

// detailLines returns the non-empty leading lines of an error message.
func detailLines(msg string) []string {
	var out []string
	for _, line := range strings.Split(msg, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxDetailLines {
			break
		}
	}
	return out
}
