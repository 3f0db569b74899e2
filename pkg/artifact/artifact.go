// Package artifact persists the grading result document and the
// diagnostic dump of the parsed run.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkoosis/racefeedback/internal/fault"
)

// File names relative to the writer's directory.
const (
	DumpFile   = "rawTestResult.json"
	ResultFile = "result.json"
)

const indent = "    "

// Document is the authoritative result. Exactly one of Success or Failure
// is set; the embedded fields are flattened next to token and buildNumber.
type Document struct {
	Token       string `json:"token"`
	BuildNumber string `json:"buildNumber"`
	*Success
	*Failure
}

// Success carries the mark and rendered feedback of a graded run.
type Success struct {
	Mark              float64 `json:"mark"`
	GeneratedFeedback string  `json:"generatedFeedback"`
	Trace             string  `json:"trace"`
}

// Failure carries the error code and message of a run that could not be graded.
type Failure struct {
	ErrorCode        int    `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

// NewSuccess builds the success variant.
func NewSuccess(token, buildNumber string, s Success) Document {
	return Document{Token: token, BuildNumber: buildNumber, Success: &s}
}

// NewFailure builds the error variant.
func NewFailure(token, buildNumber string, f Failure) Document {
	return Document{Token: token, BuildNumber: buildNumber, Failure: &f}
}

// Validate reports whether exactly one variant is populated.
func (d Document) Validate() error {
	switch {
	case d.Success != nil && d.Failure != nil:
		return errors.New("result has both success and failure fields")
	case d.Success == nil && d.Failure == nil:
		return errors.New("result has neither success nor failure fields")
	}
	return nil
}

// Writer writes artifacts into Dir.
type Writer struct {
	Dir string
}

// NewWriter returns a writer rooted at dir. An empty dir means the working directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{Dir: dir}
}

// DumpPath is where WriteDump writes.
func (w *Writer) DumpPath() string { return filepath.Join(w.Dir, DumpFile) }

// ResultPath is where WriteResult writes.
func (w *Writer) ResultPath() string { return filepath.Join(w.Dir, ResultFile) }

// WriteDump overwrites the diagnostic dump with an already-indented payload.
func (w *Writer) WriteDump(pretty []byte) error {
	if err := os.WriteFile(w.DumpPath(), pretty, 0o644); err != nil { //nolint:gosec // artifacts are read by the grading host
		return fault.Errorf(fault.Filesystem, "write diagnostic dump: %w", err)
	}
	return nil
}

// WriteResult creates or truncates the result document. It is not retried.
func (w *Writer) WriteResult(doc Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", indent)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(w.ResultPath(), data, 0o644); err != nil { //nolint:gosec // artifacts are read by the grading host
		return fault.Errorf(fault.Filesystem, "write result: %w", err)
	}
	return nil
}

// Read parses and validates a result document from disk.
func Read(path string) (Document, error) {
	// #nosec G304 -- path is supplied by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read result: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode result: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}
