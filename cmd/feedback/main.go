// feedback grades a Playwright end-to-end run of the typing-race homework.
//
// Usage:
//
//	npm test 2>&1 | feedback <token> [en]
//
// Reads the runner output on stdin, extracts the JSON report that follows
// the "npx playwright test" banner, and writes two files into --out:
//
//	rawTestResult.json  pretty-printed report (only when grading succeeded)
//	result.json         token, buildNumber and either the mark, trace and
//	                    feedback, or an errorCode and errorDescription
//
// The trace is printed to stdout. On a terminal it is a styled view of the
// same run with status icons and the first lines of each failure's error;
// --plain (or a non-terminal stdout) prints exactly the trace stored in
// result.json. Exit codes: 0 graded, 1 grading failed
// (result.json holds the error), 2 usage error or result.json not written.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dkoosis/racefeedback/internal/config"
	"github.com/dkoosis/racefeedback/internal/logging"
	"github.com/dkoosis/racefeedback/internal/pipeline"
	"github.com/dkoosis/racefeedback/internal/version"
	"github.com/dkoosis/racefeedback/pkg/artifact"
	"github.com/dkoosis/racefeedback/pkg/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("feedback", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: feedback [flags] <token> [language]\n")
		fs.PrintDefaults()
	}
	outFlag := fs.String("out", "", "Directory for result.json and rawTestResult.json (default \".\")")
	scoresFlag := fs.String("scores", "", "Score table YAML replacing the built-in table")
	localesFlag := fs.String("locales", "", "Directory of <lang>.yaml locale tables replacing the built-in ones")
	themeFlag := fs.String("theme", "", "Terminal theme: default, mono")
	plainFlag := fs.Bool("plain", false, "Print the trace exactly as stored in result.json, even on a terminal")
	debugFlag := fs.Bool("debug", false, "Enable debug logging")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *versionFlag {
		fmt.Fprintln(stdout, version.String("feedback"))
		return 0
	}

	if err := config.LoadEnvFile(config.DefaultEnvFile); err != nil {
		fmt.Fprintf(stderr, "feedback: loading %s: %v\n", config.DefaultEnvFile, err)
		return 2
	}

	flags := config.CliFlags{
		OutDir:     *outFlag,
		ScoresFile: *scoresFlag,
		LocalesDir: *localesFlag,
		Theme:      *themeFlag,
		Plain:      *plainFlag,
		Debug:      *debugFlag,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "debug" {
			flags.DebugSet = true
		}
	})
	cfg := config.Resolve(flags, fs.Args(), os.Getenv)

	log := logging.New(stderr, cfg.Debug)
	defer func() { _ = log.Sync() }()
	log.Debug("configuration resolved",
		zap.String("version", version.Version),
		zap.String("out", cfg.OutDir),
		zap.String("out_source", cfg.OutDirSource),
		zap.String("scores_source", cfg.ScoresSource),
		zap.String("language", cfg.Language))

	if cfg.Token == "" {
		log.Warn("no token supplied; result.json will carry an empty token")
	}

	grader := pipeline.New(artifact.NewWriter(cfg.OutDir), log)
	res, err := grader.Run(stdin, pipeline.Request{
		Token:       cfg.Token,
		BuildNumber: cfg.BuildNumber,
		Language:    cfg.Language,
		ScoresFile:  cfg.ScoresFile,
		LocalesDir:  cfg.LocalesDir,
	})
	if err != nil {
		return 2
	}
	if res.Fault != nil {
		return 1
	}

	styled := !cfg.Plain && isTTYWriter(stdout)
	printTrace(stdout, styled, render.NewTerminal(render.ThemeByName(cfg.Theme), termWidth(stdout)), res.Graded)
	return 0
}

// printTrace writes the styled view when styled is set and the plain trace
// otherwise. NO_COLOR selects the mono theme during resolution.
func printTrace(w io.Writer, styled bool, t *render.Terminal, g *pipeline.Graded) {
	if !styled {
		fmt.Fprintln(w, g.Trace)
		return
	}
	fmt.Fprint(w, t.Render(g.Locale, g.Report, g.Mark, g.MaxScore))
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
