// Package logging wraps zerolog with the structured, leveled logger used
// throughout the scraping, storage, and quality packages.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level is the configured minimum severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects between machine-readable JSON and a human console format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Config configures a Logger.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Logger is a thin wrapper around a configured zerolog.Logger, adding
// structured child-logger builders scoped to a run, match, or component.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger from cfg, defaulting to stdout and info level.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	var out io.Writer = cfg.Output
	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(out).With().Timestamp().Logger()
	zl = zl.Level(levelToZerolog(cfg.Level))

	return &Logger{zl: zl}
}

func levelToZerolog(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }

// Error logs msg at error level, attaching err if non-nil.
func (l *Logger) Error(msg string, err error) {
	event := l.zl.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}

// WithRun returns a child logger tagged with tournament/season/run, used
// for the duration of one scraping or consensus pass.
func (l *Logger) WithRun(tournamentID, seasonID int64, runID int) *Logger {
	return &Logger{zl: l.zl.With().
		Int64("tournament_id", tournamentID).
		Int64("season_id", seasonID).
		Int("run_id", runID).
		Logger()}
}

// WithMatch returns a child logger tagged with a match id.
func (l *Logger) WithMatch(matchID int64) *Logger {
	return &Logger{zl: l.zl.With().Int64("match_id", matchID).Logger()}
}

// WithComponent returns a child logger tagged with a component kind.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// WithCorrelation returns a child logger tagged with a correlation id, so
// every line emitted by one repair cycle (which may span several runs and
// retry rounds) can be grepped out as a single unit.
func (l *Logger) WithCorrelation(id string) *Logger {
	return &Logger{zl: l.zl.With().Str("correlation_id", id).Logger()}
}

// Nop returns a Logger that discards everything, for tests and library
// callers that don't want output.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}
