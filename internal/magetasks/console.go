package magetasks

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// out is where task banners go; tests swap it.
var out io.Writer = os.Stdout

// PrintH1Header prints a top-level header with decoration.
func PrintH1Header(title string) {
	width := 80
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", width))
	padding := (width - len(title)) / 2
	if padding < 0 {
		padding = 0
	}
	fmt.Fprintf(out, "%s%s\n", strings.Repeat(" ", padding), title)
	fmt.Fprintln(out, strings.Repeat("=", width))
	fmt.Fprintln(out)
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	fmt.Fprintf(out, "\n=== %s ===\n\n", title)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Fprintf(out, "✅ %s\n", msg)
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	fmt.Fprintf(out, "⚠️  %s\n", msg)
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Fprintf(out, "❌ %s\n", msg)
}
