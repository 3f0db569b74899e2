package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_InfoByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Info("graded", zap.Float64("mark", 5.4))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level:\n%s", out)
	}
	if !strings.Contains(out, "graded") || !strings.Contains(out, `"mark": 5.4`) {
		t.Errorf("missing info entry:\n%s", out)
	}
	if !strings.Contains(out, `"run": "`) {
		t.Errorf("missing run id:\n%s", out)
	}
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug entry, got:\n%s", buf.String())
	}
}
