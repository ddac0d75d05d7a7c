package shared

import "github.com/charmbracelet/log"

// Reporter is the logging interface injected into core components so they
// stay testable without console or filesystem side effects.
//
// [log.Logger] satisfies it directly.
type Reporter interface {
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var (
	_ Reporter = (*log.Logger)(nil)
	_ Reporter = (*TeeReporter)(nil)
)

// TeeReporter sends every entry to the console logger and duplicates
// error-level entries to an append-mode log file.
type TeeReporter struct {
	console *log.Logger
	file    *log.Logger
}

// NewTeeReporter wraps console with a file logger appending to logPath.
func NewTeeReporter(console *log.Logger, logPath string) (*TeeReporter, error) {
	if console == nil {
		console = NewLogger(nil)
	}

	file, err := NewFileLogger(logPath)
	if err != nil {
		return nil, err
	}
	SetLogLevel(file, log.ErrorLevel)

	return &TeeReporter{console: console, file: file}, nil
}

func (t *TeeReporter) Info(msg any, keyvals ...any) { t.console.Info(msg, keyvals...) }
func (t *TeeReporter) Warn(msg any, keyvals ...any) { t.console.Warn(msg, keyvals...) }

func (t *TeeReporter) Error(msg any, keyvals ...any) {
	t.console.Error(msg, keyvals...)
	t.file.Error(msg, keyvals...)
}

func (t *TeeReporter) Infof(format string, args ...any) { t.console.Infof(format, args...) }
func (t *TeeReporter) Warnf(format string, args ...any) { t.console.Warnf(format, args...) }

func (t *TeeReporter) Errorf(format string, args ...any) {
	t.console.Errorf(format, args...)
	t.file.Errorf(format, args...)
}
