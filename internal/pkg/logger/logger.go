// Package logger is a thin structured-logging layer over zerolog. All
// packages log through it so the output format is decided in one place.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the log level and output format
type Config struct {
	Level  string
	Format string // json or console
}

// Logger emits structured log events
type Logger struct {
	logger zerolog.Logger
}

// New builds a logger writing to stdout. Unknown levels fall back to
// info; any format other than "console" produces JSON lines.
func New(cfg Config) *Logger {
	zerolog.SetGlobalLevel(levelFor(cfg.Level))

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return &Logger{
		logger: zerolog.New(out).With().Timestamp().Caller().Logger(),
	}
}

func levelFor(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug logs at debug level
func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

// Info logs at info level
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Warn logs at warn level
func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

// Error logs at error level
func (l *Logger) Error(msg string) {
	l.logger.Error().Msg(msg)
}

// ErrorWithErr logs at error level with the error attached
func (l *Logger) ErrorWithErr(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// Fatal logs at fatal level and exits the process
func (l *Logger) Fatal(msg string) {
	l.logger.Fatal().Msg(msg)
}

// WithFields returns a child logger carrying the given fields on every
// event
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	ctx := l.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{logger: ctx.Logger()}
}

// WithError returns a child logger carrying the error field
func (l *Logger) WithError(err error) *Logger {
	return &Logger{logger: l.logger.With().Err(err).Logger()}
}
