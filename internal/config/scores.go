package config

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/racefeedback/internal/fault"
	"github.com/dkoosis/racefeedback/pkg/score"
)

//go:embed scores.yaml
var builtinScores []byte

// Scores is the score table together with the mark ceiling.
type Scores struct {
	MaxScore float64     `yaml:"max_score"`
	Weights  score.Table `yaml:"weights"`
}

// LoadScores reads the score table from path, or the embedded table when
// path is empty. Any problem is a ConfigurationInvalid fault.
func LoadScores(path string) (*Scores, error) {
	data := builtinScores
	if path != "" {
		// #nosec G304 -- path comes from the operator's flags or environment
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fault.Errorf(fault.ConfigurationInvalid, "read score table: %w", err)
		}
		data = b
	}

	var s Scores
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fault.Errorf(fault.ConfigurationInvalid, "parse score table: %w", err)
	}
	if !(s.MaxScore > 0) {
		return nil, fault.Errorf(fault.ConfigurationInvalid, "score table: max_score must be positive, got %v", s.MaxScore)
	}
	if err := s.Weights.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
