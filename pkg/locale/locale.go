// Package locale loads the per-language description tables used to render
// feedback. Tables are read once and passed explicitly; nothing here is
// global mutable state.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/racefeedback/internal/fault"
)

//go:embed locales/*.yaml
var builtin embed.FS

// Base is used whenever the selector is not a recognized language.
var Base = language.Ukrainian

// supported lists the languages that ship with built-in tables.
var supported = []language.Tag{language.Ukrainian, language.English}

// Messages are the format strings for the run-independent parts of the trace.
type Messages struct {
	Mark     string `yaml:"mark"`     // args: mark, max score
	Summary  string `yaml:"summary"`  // args: passed, total, failed
	Feedback string `yaml:"feedback"` // args: max score
}

// Table holds one language's messages and test descriptions.
type Table struct {
	Tag      language.Tag      `yaml:"-"`
	Messages Messages          `yaml:"messages"`
	Tests    map[string]string `yaml:"tests"`
}

// Select maps the CLI language argument to a supported tag. Only "en"
// (any case) selects English; everything else, including "", is Base.
func Select(selector string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(selector))
	if err != nil {
		return Base
	}
	for _, s := range supported {
		if tag == s {
			return s
		}
	}
	return Base
}

// Load reads the table for tag. When dir is empty the built-in tables are
// used; otherwise dir/<lang>.yaml is read.
func Load(tag language.Tag, dir string) (*Table, error) {
	name := fileName(tag)
	var (
		data []byte
		err  error
	)
	if dir == "" {
		data, err = builtin.ReadFile("locales/" + name)
	} else {
		// #nosec G304 -- dir comes from the operator's flags or environment
		data, err = os.ReadFile(filepath.Join(dir, name))
	}
	if err != nil {
		return nil, fault.Errorf(fault.LocalizationMissing, "load locale %s: %w", tag, err)
	}

	t := &Table{Tag: tag}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fault.Errorf(fault.LocalizationMissing, "parse locale %s: %w", tag, err)
	}
	if err := t.validate(); err != nil {
		return nil, fault.Errorf(fault.LocalizationMissing, "locale %s: %w", tag, err)
	}
	return t, nil
}

func (t *Table) validate() error {
	var missing []string
	if t.Messages.Mark == "" {
		missing = append(missing, "messages.mark")
	}
	if t.Messages.Summary == "" {
		missing = append(missing, "messages.summary")
	}
	if t.Messages.Feedback == "" {
		missing = append(missing, "messages.feedback")
	}
	if len(missing) > 0 {
		return errors.New("missing " + strings.Join(missing, ", "))
	}
	return nil
}

// Describe returns the localized description of a test, or the id itself
// when the table has no entry for it.
func (t *Table) Describe(id string) string {
	if t != nil {
		if d, ok := t.Tests[id]; ok && strings.TrimSpace(d) != "" {
			return d
		}
	}
	return id
}

// Printer returns a printer that formats numbers for the table's language.
func (t *Table) Printer() *message.Printer {
	return message.NewPrinter(t.Tag)
}

func fileName(tag language.Tag) string {
	base, _ := tag.Base()
	return fmt.Sprintf("%s.yaml", base)
}
