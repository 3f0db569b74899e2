package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkoosis/racefeedback/internal/pipeline"
	"github.com/dkoosis/racefeedback/pkg/artifact"
	"github.com/dkoosis/racefeedback/pkg/playwright"
	"github.com/dkoosis/racefeedback/pkg/render"
)

// --- E2E Tests ---
// These exercise the full pipeline: stdin → extract → score → render → files + stdout

const npmOutput = `
> typing-race-tests@1.0.0 test
> npx playwright test

{
  "config": {"workers": 1},
  "suites": [{
    "title": "uiTests.spec.js",
    "specs": [
      {"title": "SHOULD_SHOW_PROGRESS", "ok": true},
      {"title": "SHOULD_SHOW_READY_STATUS_OF_USERS_IN_ROOM", "ok": true},
      {"title": "SHOULD_CONNECT_TO_ROOM", "ok": false, "err": {"message": "User has not entered the room"}},
      {"title": "SHOULD_CLEAR_AFTER_END_GAME", "ok": false, "err": {"message": "Timeout"}}
    ]
  }]
}
`

func readResult(t *testing.T, dir string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, artifact.ResultFile))
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decoding result: %v\n%s", err, data)
	}
	return out
}

func TestE2E_GradesRunInEnglish(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BUILD_NUMBER", "314")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--out", dir, "secret-token", "en"}, strings.NewReader(npmOutput), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr:\n%s", code, stderr.String())
	}

	result := readResult(t, dir)
	if result["token"] != "secret-token" {
		t.Errorf("token not passed through: %v", result["token"])
	}
	if result["buildNumber"] != "314" {
		t.Errorf("buildNumber not passed through: %v", result["buildNumber"])
	}
	// (1.1 + 1.1) / 9.5 * 9 = 2.08…
	if result["mark"] != 2.1 {
		t.Errorf("expected mark 2.1, got %v", result["mark"])
	}
	if _, ok := result["errorCode"]; ok {
		t.Error("success result must not carry errorCode")
	}

	trace, _ := result["trace"].(string)
	for _, want := range []string{
		"Your mark: 2.1",
		"Tests passed: 2 of 4, failed: 2",
		"1) Should connect to a room",
		"2) Should reset the room after the game ends",
		render.Delimiter,
	} {
		if !strings.Contains(trace, want) {
			t.Errorf("trace missing %q:\n%s", want, trace)
		}
	}

	if got := strings.TrimSuffix(stdout.String(), "\n"); got != trace {
		t.Errorf("stdout should be the plain trace when piped.\nstdout:\n%s\ntrace:\n%s", got, trace)
	}
	if strings.Contains(stdout.String(), "\033[") {
		t.Error("piped output contains ANSI escape codes")
	}

	if _, err := os.Stat(filepath.Join(dir, artifact.DumpFile)); err != nil {
		t.Errorf("expected diagnostic dump: %v", err)
	}
}

func TestE2E_DefaultsToUkrainian(t *testing.T) {
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--out", dir, "tok", "fr"}, strings.NewReader(npmOutput), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Ваша оцінка") {
		t.Errorf("expected Ukrainian trace, got:\n%s", stdout.String())
	}
}

func TestE2E_MalformedInput(t *testing.T) {
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--out", dir, "tok"}, strings.NewReader("> npx playwright test\nError: no tests found\n"), &stdout, &stderr)
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should be printed to stdout on failure, got:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "grading failed") {
		t.Errorf("expected failure on stderr, got:\n%s", stderr.String())
	}

	result := readResult(t, dir)
	if result["errorCode"] != float64(1001) {
		t.Errorf("expected errorCode 1001, got %v", result["errorCode"])
	}
	if desc, _ := result["errorDescription"].(string); desc == "" {
		t.Error("expected non-empty errorDescription")
	}
	if _, ok := result["mark"]; ok {
		t.Error("error result must not carry a mark")
	}
	if _, err := os.Stat(filepath.Join(dir, artifact.DumpFile)); !os.IsNotExist(err) {
		t.Errorf("diagnostic dump must not be written on failure (stat err: %v)", err)
	}
}

func TestE2E_ResultDirMissing(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--out", filepath.Join(t.TempDir(), "nope"), "tok"}, strings.NewReader(npmOutput), &stdout, &stderr)
	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestE2E_ScoresOverride(t *testing.T) {
	dir := t.TempDir()
	scores := filepath.Join(dir, "scores.yaml")
	if err := os.WriteFile(scores, []byte("max_score: 10\nweights:\n  SHOULD_SHOW_PROGRESS: 1\n  SHOULD_CONNECT_TO_ROOM: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"--out", dir, "--scores", scores, "tok", "en"}, strings.NewReader(npmOutput), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr:\n%s", code, stderr.String())
	}
	if got := readResult(t, dir)["mark"]; got != 5.0 {
		t.Errorf("expected mark 5, got %v", got)
	}
	if !strings.Contains(stderr.String(), "passed test has no weight") {
		t.Errorf("expected warning for unscored pass, got:\n%s", stderr.String())
	}
}

func TestE2E_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "feedback ") {
		t.Errorf("unexpected version output %q", stdout.String())
	}
}

func TestE2E_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--bogus"}, strings.NewReader(""), &stdout, &stderr); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestE2E_SampleRunFromTestdata(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "sample_run.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--out", dir, "--debug", "tok", "en"}, f, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr:\n%s", code, stderr.String())
	}
	if got := readResult(t, dir)["mark"]; got != 2.1 {
		t.Errorf("expected mark 2.1, got %v", got)
	}
	// Failure details come from tests[].results[].error when a Playwright spec entry has no err.
	if !strings.Contains(stderr.String(), "Timeout of 30000ms exceeded") {
		t.Errorf("expected debug log of failure detail, got:\n%s", stderr.String())
	}
}

func TestE2E_PlainFlag(t *testing.T) {
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{"--out", dir, "--plain", "tok", "en"}, strings.NewReader(npmOutput), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d; stderr:\n%s", code, stderr.String())
	}
	trace, _ := readResult(t, dir)["trace"].(string)
	if got := strings.TrimSuffix(stdout.String(), "\n"); got != trace {
		t.Errorf("--plain stdout should be the stored trace.\nstdout:\n%s\ntrace:\n%s", got, trace)
	}
}

func TestPrintTrace_StyledViewDiffersFromStoredTrace(t *testing.T) {
	tables, err := pipeline.LoadTables(pipeline.Request{Language: "en"})
	if err != nil {
		t.Fatal(err)
	}
	rep, err := playwright.Extract([]byte(npmOutput))
	if err != nil {
		t.Fatal(err)
	}
	graded, err := pipeline.Grade(rep, tables)
	if err != nil {
		t.Fatal(err)
	}
	term := render.NewTerminal(render.MonoTheme(), 80)

	var plain, styled bytes.Buffer
	printTrace(&plain, false, term, graded)
	printTrace(&styled, true, term, graded)

	if plain.String() != graded.Trace+"\n" {
		t.Errorf("plain output should be the trace:\n%s", plain.String())
	}
	for _, want := range []string{"x 1) Should connect to a room", "    User has not entered the room"} {
		if !strings.Contains(styled.String(), want) {
			t.Errorf("styled output missing %q:\n%s", want, styled.String())
		}
	}
	if strings.Contains(graded.Trace, "User has not entered the room") {
		t.Error("stored trace must not carry error details")
	}
}
