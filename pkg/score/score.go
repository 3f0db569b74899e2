// Package score computes the weighted mark for a graded run.
package score

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/dkoosis/racefeedback/internal/fault"
)

// Table maps a test title to its weight. Treat it as read-only once loaded.
type Table map[string]float64

// Weight returns the weight for title and whether the title is scored.
func (t Table) Weight(title string) (float64, bool) {
	w, ok := t[title]
	return w, ok
}

// Total sums every weight in the table, not only those exercised by a run.
func (t Table) Total() float64 {
	var sum float64
	for _, k := range t.keys() {
		sum += t[k]
	}
	return sum
}

// Unmapped returns the titles that have no weight, sorted and de-duplicated.
func (t Table) Unmapped(titles []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, title := range titles {
		if _, ok := t[title]; ok || seen[title] {
			continue
		}
		seen[title] = true
		out = append(out, title)
	}
	sort.Strings(out)
	return out
}

// Validate rejects empty tables and non-positive weights.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fault.New(fault.ConfigurationInvalid, errors.New("score table is empty"))
	}
	for _, k := range t.keys() {
		if w := t[k]; !(w > 0) || math.IsInf(w, 0) {
			return fault.Errorf(fault.ConfigurationInvalid, "score table: weight for %s must be positive, got %v", k, w)
		}
	}
	return nil
}

func (t Table) keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Mark is a score rounded to one decimal place.
type Mark float64

func (m Mark) String() string {
	return strconv.FormatFloat(float64(m), 'f', 1, 64)
}

// CalculateMark returns passed weight over the table total, scaled to
// maxScore and rounded to one decimal. Titles missing from the table add
// nothing; a title listed twice counts once.
func CalculateMark(passed []string, table Table, maxScore float64) (Mark, error) {
	if !(maxScore > 0) || math.IsInf(maxScore, 0) {
		return 0, fault.Errorf(fault.ConfigurationInvalid, "max score must be positive, got %v", maxScore)
	}
	total := table.Total()
	if !(total > 0) {
		return 0, fault.Errorf(fault.ConfigurationInvalid, "score table total weight must be positive, got %v", total)
	}

	// Sum in sorted title order so the result never depends on the order of passed.
	var earned float64
	for _, title := range dedupe(passed) {
		if w, ok := table.Weight(title); ok {
			earned += w
		}
	}

	return Mark(clamp(roundTenth(earned*maxScore/total), 0, maxScore)), nil
}

func dedupe(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// roundTenth rounds v to one decimal, half away from zero, using the exact
// binary value of v rather than v*10. 1.15 is stored as 1.1499... and so
// rounds to 1.1.
func roundTenth(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	neg := v < 0
	// 1100 fractional digits cover the full expansion of any float64.
	s := new(big.Float).SetFloat64(math.Abs(v)).Text('f', 1100)
	dot := strings.IndexByte(s, '.')
	tenths, err := strconv.ParseInt(s[:dot]+s[dot+1:dot+2], 10, 64)
	if err != nil {
		return math.Round(v*10) / 10
	}
	if s[dot+2] >= '5' {
		tenths++
	}
	r := float64(tenths) / 10
	if neg {
		return -r
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Describe summarises a table for logs.
func (t Table) Describe() string {
	return fmt.Sprintf("%d entries, total %s", len(t), strconv.FormatFloat(t.Total(), 'f', -1, 64))
}
