// Package logging builds the zap logger used for diagnostics on stderr.
package logging

import (
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a console logger writing to w. Debug enables debug-level
// output; otherwise info and above are written. Every entry carries a
// per-invocation run id.
func New(w io.Writer, debug bool) *zap.Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.TimeKey = "time"
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	config.CallerKey = ""

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core).With(zap.String("run", uuid.NewString()))
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
