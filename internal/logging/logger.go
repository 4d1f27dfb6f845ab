// Package logging provides structured logging for the tray application.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// LogFileName is the file written inside the log directory.
const LogFileName = "autoclick.log"

// Logger wraps zerolog with the console and file outputs used by the app.
type Logger struct {
	zlog zerolog.Logger
	file *os.File // log file, nil when logging to the console only
}

// NewLogger creates a logger that writes human-readable lines to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{
		zlog: zerolog.New(consoleWriter(w)).With().Timestamp().Logger(),
	}
}

// NewAppLogger creates the application logger. Lines go to stderr and, when
// logDir is non-empty and writable, to a log file truncated at each start.
// A log file that cannot be opened is reported on stderr and skipped.
func NewAppLogger(logDir string) *Logger {
	l := NewLogger(os.Stderr)
	if logDir == "" {
		return l
	}

	if err := os.MkdirAll(logDir, 0700); err != nil {
		l.Warn().Err(err).Str("dir", logDir).Msg("Log directory unavailable, logging to stderr only")
		return l
	}

	path := filepath.Join(logDir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		l.Warn().Err(err).Str("path", path).Msg("Log file unavailable, logging to stderr only")
		return l
	}

	output := zerolog.MultiLevelWriter(
		consoleWriter(os.Stderr),
		zerolog.ConsoleWriter{Out: f, TimeFormat: "2006-01-02 15:04:05", NoColor: true},
	)
	l.zlog = zerolog.New(output).With().Timestamp().Logger()
	l.file = f
	return l
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// consoleWriter colours output only when w is a terminal.
func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{
		zlog: l.zlog.With().Str("component", name).Logger(),
	}
}

// Close flushes and closes the log file, if any. Safe to call more than once.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	return f.Close()
}

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

func init() {
	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Configure global logger
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	})
}
