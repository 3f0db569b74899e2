package magetasks

import (
	"os"
	"path/filepath"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/racefeedback"

	// MainPackage is the package built into the grader binary.
	MainPackage = "./cmd/feedback"

	// BinPath is the output path for the built binary.
	BinPath = "./bin/feedback"

	// SampleRun is captured runner output used by the Grade task.
	SampleRun = "cmd/feedback/testdata/sample_run.txt"

	// ProjectRoot is the root directory of the project.
	ProjectRoot string
)

// Initialize sets up the magetasks package.
// Call this from the Magefile init() function.
func Initialize() error {
	var err error
	ProjectRoot, err = os.Getwd()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(ProjectRoot, "bin"), 0o750)
}
