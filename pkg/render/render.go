// Package render produces the feedback text for a graded run: the plain
// trace persisted in the result document and a styled terminal echo.
package render

import (
	"strconv"
	"strings"

	"github.com/dkoosis/racefeedback/pkg/locale"
	"github.com/dkoosis/racefeedback/pkg/playwright"
	"github.com/dkoosis/racefeedback/pkg/score"
)

// Delimiter frames the list of failed tests.
const Delimiter = "---------------------------------"

// Trace renders the mark line, the pass/fail counts and the numbered list
// of failed tests. The output is plain text with no ANSI codes.
func Trace(loc *locale.Table, rep *playwright.Report, mark score.Mark, maxScore float64) string {
	var sb strings.Builder
	sb.WriteString(Summary(loc, rep, mark, maxScore))
	sb.WriteString(Failures(loc, rep.Failed()))
	return sb.String()
}

// Summary renders the mark and count lines without the failure list.
func Summary(loc *locale.Table, rep *playwright.Report, mark score.Mark, maxScore float64) string {
	p := loc.Printer()
	stats := rep.Stats()
	return p.Sprintf(loc.Messages.Mark, float64(mark), maxScore) + "\n" +
		p.Sprintf(loc.Messages.Summary, stats.Passed, stats.Total, stats.Failed)
}

// Failures renders failed cases as "<n>) <description>" between two
// delimiter lines. Numbering starts at 1 and follows report order. With no
// failures the list is a single empty line.
func Failures(loc *locale.Table, failed []playwright.Case) string {
	var sb strings.Builder
	sb.WriteString("\n" + Delimiter + "\n")
	for i, c := range failed {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(numbered(i, loc.Describe(c.Title)))
	}
	sb.WriteString("\n")
	sb.WriteString(Delimiter)
	return sb.String()
}

// ClosingFeedback renders the generic closing remarks. It does not depend
// on the run's outcome.
func ClosingFeedback(loc *locale.Table, maxScore float64) string {
	return loc.Printer().Sprintf(loc.Messages.Feedback, maxScore)
}

func numbered(i int, text string) string {
	return strconv.Itoa(i+1) + ") " + text
}
