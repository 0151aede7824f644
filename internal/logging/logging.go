// Package logging builds the zap-backed logr.Logger every component logs through.
package logging

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nanodesign/internal/config"
)

// New returns a logger writing to stderr as configured, together with a flush
// function to call before exit
func New(c config.LogConfig) (logr.Logger, func(), error) {
	return NewWithSink(c, zapcore.Lock(os.Stderr))
}

// NewWithSink is New with an explicit output
func NewWithSink(c config.LogConfig, sink zapcore.WriteSyncer) (logr.Logger, func(), error) {
	level, err := zapcore.ParseLevel(orDefault(c.Level, "info"))
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("invalid log level: %w", err)
	}

	var encoder zapcore.Encoder
	switch orDefault(c.Format, "console") {
	case "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(ec)
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return logr.Discard(), func() {}, fmt.Errorf("invalid log format %q", c.Format)
	}

	// the inner core accepts everything down to the lowest logr verbosity;
	// moduleCore decides what passes
	inner := zapcore.NewCore(encoder, sink, zap.LevelEnablerFunc(func(zapcore.Level) bool { return true }))
	core := &moduleCore{Core: inner, level: level, modules: c.DebugModules}

	z := zap.New(core)
	flush := func() { _ = z.Sync() }
	return zapr.NewLogger(z), flush, nil
}

// moduleCore filters entries by level, letting named component loggers listed
// in modules through at debug level
type moduleCore struct {
	zapcore.Core
	level   zapcore.Level
	modules []string
}

func (c *moduleCore) Enabled(l zapcore.Level) bool {
	if len(c.modules) > 0 {
		return l >= zapcore.DebugLevel
	}
	return l >= c.level
}

func (c *moduleCore) With(fields []zapcore.Field) zapcore.Core {
	return &moduleCore{Core: c.Core.With(fields), level: c.level, modules: c.modules}
}

func (c *moduleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Level >= c.level || (ent.Level >= zapcore.DebugLevel && c.debugModule(ent.LoggerName)) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *moduleCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, fields)
}

// debugModule reports whether any segment of a dotted logger name is listed
func (c *moduleCore) debugModule(name string) bool {
	if name == "" || len(c.modules) == 0 {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if slices.Contains(c.modules, part) {
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
