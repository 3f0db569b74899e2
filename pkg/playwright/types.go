// Package playwright extracts the Playwright JSON reporter document from
// captured runner output.
package playwright

import "encoding/json"

// Marker is the CLI invocation echoed by npm ahead of the JSON report.
const Marker = "npx playwright test"

// Report is the top level of Playwright's JSON reporter output.
// Only the fields the grader consumes are decoded; Raw keeps the full payload.
type Report struct {
	Suites []Suite `json:"suites"`

	// Raw is the exact JSON payload the report was decoded from.
	Raw json.RawMessage `json:"-"`
}

// Suite is one describe block or spec file.
type Suite struct {
	Title string `json:"title"`
	Specs []Spec `json:"specs"`
}

// Spec is a single test() declaration.
type Spec struct {
	Title string     `json:"title"`
	OK    bool       `json:"ok"`
	Err   *SpecError `json:"err,omitempty"`
	Tests []Test     `json:"tests,omitempty"`
}

// SpecError carries the assertion message of a failed spec.
type SpecError struct {
	Message string `json:"message"`
}

// Test is one project execution of a spec.
type Test struct {
	Results []TestResult `json:"results"`
}

// TestResult is one attempt of a test.
type TestResult struct {
	Status string     `json:"status"`
	Error  *SpecError `json:"error,omitempty"`
}

// Outcome is the pass/fail state of a case.
type Outcome int

const (
	Failed Outcome = iota
	Passed
)

func (o Outcome) String() string {
	if o == Passed {
		return "passed"
	}
	return "failed"
}

// Case is the flat per-test result the grader works with.
type Case struct {
	Title        string
	Outcome      Outcome
	ErrorMessage string
}

// Stats holds pass/fail counts for a report.
type Stats struct {
	Total  int
	Passed int
	Failed int
}
