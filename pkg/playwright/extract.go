package playwright

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkoosis/racefeedback/internal/fault"
)

// Extract locates the report after the first Marker in raw and decodes it.
// Without a marker the whole buffer is tried.
func Extract(raw []byte) (*Report, error) {
	payload := bytes.TrimSpace(raw[payloadOffset(raw):])
	if len(payload) == 0 {
		return nil, fault.Errorf(fault.InputMalformed, "no report found in runner output")
	}

	var rep Report
	if err := json.Unmarshal(payload, &rep); err != nil {
		return nil, fault.Errorf(fault.InputMalformed, "decode report: %w", err)
	}
	if len(rep.Suites) == 0 {
		return nil, fault.New(fault.InputMalformed, errors.New("report has no suites"))
	}
	rep.Raw = append(json.RawMessage(nil), payload...)
	return &rep, nil
}

func payloadOffset(raw []byte) int {
	i := bytes.Index(raw, []byte(Marker))
	if i < 0 {
		return 0
	}
	return i + len(Marker)
}

// Cases returns the first suite's specs as flat cases, in report order.
func (r *Report) Cases() []Case {
	if r == nil || len(r.Suites) == 0 {
		return nil
	}
	specs := r.Suites[0].Specs
	cases := make([]Case, 0, len(specs))
	for _, s := range specs {
		c := Case{Title: s.Title, Outcome: Failed}
		if s.OK {
			c.Outcome = Passed
		} else {
			c.ErrorMessage = s.errorMessage()
		}
		cases = append(cases, c)
	}
	return cases
}

// Passed returns the cases that passed, in report order.
func (r *Report) Passed() []Case { return r.filter(Passed) }

// Failed returns the cases that failed, in report order.
func (r *Report) Failed() []Case { return r.filter(Failed) }

// PassedTitles returns the titles of passing cases.
func (r *Report) PassedTitles() []string {
	passed := r.Passed()
	titles := make([]string, len(passed))
	for i, c := range passed {
		titles[i] = c.Title
	}
	return titles
}

// Stats counts the cases of the first suite.
func (r *Report) Stats() Stats {
	var s Stats
	for _, c := range r.Cases() {
		s.Total++
		if c.Outcome == Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

func (r *Report) filter(o Outcome) []Case {
	var out []Case
	for _, c := range r.Cases() {
		if c.Outcome == o {
			out = append(out, c)
		}
	}
	return out
}

// Indent returns the raw payload pretty-printed with the given indent.
func (r *Report) Indent(indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Raw, "", indent); err != nil {
		return nil, fmt.Errorf("indent report: %w", err)
	}
	return buf.Bytes(), nil
}

// errorMessage prefers the spec-level err and falls back to the first
// attempt that recorded an error.
func (s Spec) errorMessage() string {
	if s.Err != nil && s.Err.Message != "" {
		return s.Err.Message
	}
	for _, t := range s.Tests {
		for _, res := range t.Results {
			if res.Error != nil && res.Error.Message != "" {
				return res.Error.Message
			}
		}
	}
	return ""
}
