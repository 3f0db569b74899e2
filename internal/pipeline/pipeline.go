// Package pipeline wires extraction, scoring, rendering and persistence
// into a single pass. Every stage returns a value or a classified fault;
// the first fault becomes the error variant of the result document, which
// is written exactly once either way.
package pipeline

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/dkoosis/racefeedback/internal/config"
	"github.com/dkoosis/racefeedback/internal/detect"
	"github.com/dkoosis/racefeedback/internal/fault"
	"github.com/dkoosis/racefeedback/internal/logging"
	"github.com/dkoosis/racefeedback/pkg/artifact"
	"github.com/dkoosis/racefeedback/pkg/locale"
	"github.com/dkoosis/racefeedback/pkg/playwright"
	"github.com/dkoosis/racefeedback/pkg/render"
	"github.com/dkoosis/racefeedback/pkg/score"
)

// Request identifies one invocation.
type Request struct {
	Token       string
	BuildNumber string
	Language    string
	ScoresFile  string
	LocalesDir  string
}

// Tables is the read-only configuration shared by every stage.
type Tables struct {
	Scores *config.Scores
	Locale *locale.Table
}

// Graded is everything produced by a successful run.
type Graded struct {
	Report   *playwright.Report
	Locale   *locale.Table
	Mark     score.Mark
	MaxScore float64
	Trace    string
	Feedback string
}

// Result is the outcome of Run. Fault is nil when the run was graded.
type Result struct {
	Document artifact.Document
	Graded   *Graded
	Fault    error
}

// Grader runs the pipeline and persists its artifacts.
type Grader struct {
	writer *artifact.Writer
	log    *zap.Logger
}

// New creates a grader writing through w.
func New(w *artifact.Writer, log *zap.Logger) *Grader {
	if log == nil {
		log = logging.Nop()
	}
	return &Grader{writer: w, log: log}
}

// LoadTables loads the score table and the locale selected by req.Language.
func LoadTables(req Request) (*Tables, error) {
	scores, err := config.LoadScores(req.ScoresFile)
	if err != nil {
		return nil, err
	}
	loc, err := locale.Load(locale.Select(req.Language), req.LocalesDir)
	if err != nil {
		return nil, err
	}
	return &Tables{Scores: scores, Locale: loc}, nil
}

// Run grades the runner output read from r and writes the result document.
// The returned error is non-nil only when the result document itself could
// not be written; grading faults are reported through Result.Fault.
func (g *Grader) Run(r io.Reader, req Request) (Result, error) {
	graded, err := g.grade(r, req)

	var res Result
	if err != nil {
		res = Result{Fault: err, Document: Report(req.Token, req.BuildNumber, err)}
		g.log.Error("grading failed",
			zap.String("kind", fault.KindOf(err).String()),
			zap.Int("code", fault.CodeOf(err)),
			zap.Error(err))
	} else {
		res = Result{Graded: graded, Document: artifact.NewSuccess(req.Token, req.BuildNumber, artifact.Success{
			Mark:              float64(graded.Mark),
			GeneratedFeedback: graded.Feedback,
			Trace:             graded.Trace,
		})}
	}

	if err := g.writer.WriteResult(res.Document); err != nil {
		g.log.Error("result document not written", zap.String("path", g.writer.ResultPath()), zap.Error(err))
		return res, err
	}
	g.log.Debug("result written", zap.String("path", g.writer.ResultPath()))
	return res, nil
}

func (g *Grader) grade(r io.Reader, req Request) (*Graded, error) {
	// Drain stdin before anything can fail so the upstream writer never
	// sees a closed pipe.
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fault.Errorf(fault.InputMalformed, "reading runner output: %w", err)
	}
	g.log.Debug("runner output read", zap.Int("bytes", len(raw)), zap.Stringer("format", detect.Sniff(raw)))

	tables, err := LoadTables(req)
	if err != nil {
		return nil, err
	}
	g.log.Debug("tables loaded",
		zap.String("scores", tables.Scores.Weights.Describe()),
		zap.Stringer("locale", tables.Locale.Tag))

	rep, err := playwright.Extract(raw)
	if err != nil {
		return nil, err
	}

	graded, err := Grade(rep, tables)
	if err != nil {
		return nil, err
	}
	for _, title := range tables.Scores.Weights.Unmapped(rep.PassedTitles()) {
		g.log.Warn("passed test has no weight", zap.String("title", title))
	}
	for _, c := range rep.Failed() {
		g.log.Debug("test failed", zap.String("title", c.Title), zap.String("error", c.ErrorMessage))
	}

	g.writeDump(rep)
	stats := rep.Stats()
	g.log.Info("graded",
		zap.Stringer("mark", graded.Mark),
		zap.Float64("max", graded.MaxScore),
		zap.Int("passed", stats.Passed),
		zap.Int("failed", stats.Failed))
	return graded, nil
}

// writeDump is best-effort: the dump is diagnostic only.
func (g *Grader) writeDump(rep *playwright.Report) {
	pretty, err := rep.Indent("    ")
	if err == nil {
		err = g.writer.WriteDump(pretty)
	}
	if err != nil {
		g.log.Warn("diagnostic dump not written", zap.String("path", g.writer.DumpPath()), zap.Error(err))
	}
}

// Grade scores and renders an extracted report. It has no side effects.
func Grade(rep *playwright.Report, tables *Tables) (*Graded, error) {
	maxScore := tables.Scores.MaxScore
	mark, err := score.CalculateMark(rep.PassedTitles(), tables.Scores.Weights, maxScore)
	if err != nil {
		return nil, fmt.Errorf("calculate mark: %w", err)
	}
	return &Graded{
		Report:   rep,
		Locale:   tables.Locale,
		Mark:     mark,
		MaxScore: maxScore,
		Trace:    render.Trace(tables.Locale, rep, mark, maxScore),
		Feedback: render.ClosingFeedback(tables.Locale, maxScore),
	}, nil
}

// Report converts a fault into the error variant of the result document.
func Report(token, buildNumber string, err error) artifact.Document {
	return artifact.NewFailure(token, buildNumber, artifact.Failure{
		ErrorCode:        fault.CodeOf(err),
		ErrorDescription: err.Error(),
	})
}
