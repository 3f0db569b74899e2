package magetasks

// TestAll runs all tests.
func TestAll() error {
	if err := run("Tests", "go", "test", "./..."); err != nil {
		return err
	}
	PrintSuccess("All tests passed")
	return nil
}

// TestCoverage runs tests with coverage and prints the per-function report.
func TestCoverage() error {
	if err := run("Test Coverage", "go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	_ = run("Coverage Report", "go", "tool", "cover", "-func=coverage.out")
	return nil
}

// TestRace runs tests with the race detector.
func TestRace() error {
	if err := run("Race Detector", "go", "test", "-race", "./..."); err != nil {
		return err
	}
	PrintSuccess("No race conditions detected")
	return nil
}
