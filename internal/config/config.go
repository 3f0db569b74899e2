package config

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvBuildNumber = "BUILD_NUMBER"
	EnvOutDir      = "FEEDBACK_OUT_DIR"
	EnvScores      = "FEEDBACK_SCORES"
	EnvLocales     = "FEEDBACK_LOCALES"
	EnvTheme       = "FEEDBACK_THEME"
	EnvDebug       = "FEEDBACK_DEBUG"
	EnvNoColor     = "NO_COLOR"
)

// Defaults.
const (
	DefaultOutDir  = "."
	DefaultTheme   = "default"
	DefaultEnvFile = ".env"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	OutDir     string
	ScoresFile string
	LocalesDir string
	Theme      string
	Plain      bool
	Debug      bool

	// Set when the flag was given explicitly.
	DebugSet bool
}

// Config is the fully resolved configuration for one invocation.
type Config struct {
	Token       string
	Language    string
	BuildNumber string

	OutDir     string
	ScoresFile string // empty means the embedded table
	LocalesDir string // empty means the embedded tables
	Theme      string
	NoColor    bool
	Plain      bool // never style the stdout trace
	Debug      bool

	// Resolution metadata (for debug logs)
	OutDirSource string // "cli", "env", "default"
	ScoresSource string // "cli", "env", "builtin"
}

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(string) string

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Resolve merges flags, positional arguments and the environment.
func Resolve(flags CliFlags, args []string, getenv Getenv) *Config {
	cfg := &Config{
		BuildNumber:  getenv(EnvBuildNumber),
		OutDir:       DefaultOutDir,
		OutDirSource: "default",
		ScoresSource: "builtin",
		Theme:        DefaultTheme,
	}
	if len(args) > 0 {
		cfg.Token = args[0]
	}
	if len(args) > 1 {
		cfg.Language = args[1]
	}

	switch {
	case flags.OutDir != "":
		cfg.OutDir, cfg.OutDirSource = flags.OutDir, "cli"
	case getenv(EnvOutDir) != "":
		cfg.OutDir, cfg.OutDirSource = getenv(EnvOutDir), "env"
	}

	switch {
	case flags.ScoresFile != "":
		cfg.ScoresFile, cfg.ScoresSource = flags.ScoresFile, "cli"
	case getenv(EnvScores) != "":
		cfg.ScoresFile, cfg.ScoresSource = getenv(EnvScores), "env"
	}

	cfg.LocalesDir = firstNonEmpty(flags.LocalesDir, getenv(EnvLocales))
	cfg.Theme = firstNonEmpty(flags.Theme, getenv(EnvTheme), DefaultTheme)
	cfg.Plain = flags.Plain

	if flags.DebugSet {
		cfg.Debug = flags.Debug
	} else {
		cfg.Debug = parseBool(getenv(EnvDebug))
	}

	// NO_COLOR disables color when present with any value.
	cfg.NoColor = getenv(EnvNoColor) != ""
	if cfg.NoColor {
		cfg.Theme = "mono"
	}
	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
