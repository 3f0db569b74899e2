// Package detect sniffs runner output to classify what was piped in.
package detect

import (
	"bytes"
	"encoding/json"

	"github.com/dkoosis/racefeedback/pkg/playwright"
)

// Format represents a recognized input shape.
type Format int

const (
	Unknown      Format = iota
	RunnerOutput        // npm output with the playwright banner
	BareReport          // a JSON reporter document with no banner
	Empty               // nothing but whitespace
)

func (f Format) String() string {
	switch f {
	case RunnerOutput:
		return "runner_output"
	case BareReport:
		return "bare_report"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// Sniff examines data to determine its shape. It never fails; anything it
// cannot place is Unknown and extraction reports the real cause.
func Sniff(data []byte) Format {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Empty
	}
	if bytes.Contains(data, []byte(playwright.Marker)) {
		return RunnerOutput
	}
	if data[0] == '{' && isReport(data) {
		return BareReport
	}
	return Unknown
}

func isReport(data []byte) bool {
	var doc struct {
		Suites []json.RawMessage `json:"suites"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	return doc.Suites != nil
}
