// Package log carries a logrus entry on the context so every layer logs
// with the fields of the command that invoked it.
package log

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var rootLogger = logrus.NewEntry(logrus.StandardLogger())

// Config controls log level, format and destination.
type Config struct {
	Level  string // error, warn, info, debug, trace
	Format string // simple (default) or json
	// File diverts logs to a rotating file instead of stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Defaults applied for zero-valued fields.
var Defaults = Config{
	Level:      "warn",
	Format:     "simple",
	MaxSizeMB:  10,
	MaxBackups: 2,
	MaxAgeDays: 7,
}

// InitConfig applies conf to the process-wide logrus logger.
func InitConfig(conf Config) {
	SetLevel(stringOr(conf.Level, Defaults.Level))

	var out io.Writer = os.Stderr
	if conf.File != "" {
		out = &lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    intOr(conf.MaxSizeMB, Defaults.MaxSizeMB),
			MaxBackups: intOr(conf.MaxBackups, Defaults.MaxBackups),
			MaxAge:     intOr(conf.MaxAgeDays, Defaults.MaxAgeDays),
		}
	}
	logrus.SetOutput(out)

	switch stringOr(conf.Format, Defaults.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&prefixed.TextFormatter{
			DisableColors:   conf.File != "",
			ForceFormatting: true,
			FullTimestamp:   true,
		})
	}
}

// VerbosityLevel maps the -v / --vv flags to a level name.
func VerbosityLevel(verbose, veryVerbose bool) string {
	switch {
	case veryVerbose:
		return "debug"
	case verbose:
		return "info"
	default:
		return Defaults.Level
	}
}

func IsDebugEnabled() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

// maxFieldLen caps context field values; longer ones are cut and marked.
const maxFieldLen = 61

type entryKey struct{}

// L returns the entry stored on ctx by WithLogField, or the root entry.
func L(ctx context.Context) *logrus.Entry {
	if e, ok := ctx.Value(entryKey{}).(*logrus.Entry); ok {
		return e
	}
	return rootLogger
}

// WithLogField returns a context whose entry carries key=value on top of
// the fields already on ctx.
func WithLogField(ctx context.Context, key, value string) context.Context {
	if len(value) > maxFieldLen {
		value = value[:maxFieldLen] + "..."
	}
	return context.WithValue(ctx, entryKey{}, L(ctx).WithField(key, value))
}

// GetLevel names the current level, using "warn" rather than logrus's
// "warning".
func GetLevel() string {
	if lvl := logrus.GetLevel(); lvl != logrus.WarnLevel {
		return lvl.String()
	}
	return "warn"
}

// SetLevel sets the process-wide level by name. Unknown names mean info.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func intOr(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
