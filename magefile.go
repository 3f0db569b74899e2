//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/dkoosis/racefeedback/internal/magetasks"
	"github.com/magefile/mage/mg"
)

// Default target - build the binary
var Default = Build

func init() {
	if err := magetasks.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

// Build builds the feedback binary
func Build() error {
	return magetasks.BuildAll()
}

// Clean removes build artifacts
func Clean() error {
	return magetasks.Clean()
}

// Grade builds the binary and grades the bundled sample run (lang: en or uk)
func Grade(lang string) error {
	return magetasks.Grade(lang)
}

// QA runs lint and the race-enabled test suite
func QA() error {
	magetasks.PrintH1Header("feedback Quality Assurance")
	mg.SerialDeps(Lint.All, Test.Race)
	return nil
}

type Lint mg.Namespace

// All runs all linters
func (Lint) All() error {
	return magetasks.LintAll()
}

// Format checks gofmt
func (Lint) Format() error {
	return magetasks.LintFormat()
}

// Vet runs go vet
func (Lint) Vet() error {
	return magetasks.LintVet()
}

// Golangci runs golangci-lint
func (Lint) Golangci() error {
	return magetasks.LintGolangci()
}

type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return magetasks.TestAll()
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	return magetasks.TestCoverage()
}

// Race runs tests with the race detector
func (Test) Race() error {
	return magetasks.TestRace()
}
