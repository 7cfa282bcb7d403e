// pkg/logging/logging.go - colored console logging for nero.

package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// LogLevel represents the severity of the log message.
type LogLevel int

const (
	// Define log levels.
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the string representation of the LogLevel.
func (ll LogLevel) String() string {
	switch ll {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGreen  = "\033[32m"
	colorBold   = "\033[1m"
)

// Logger writes leveled, colored messages to the console.
type Logger struct {
	mu       sync.RWMutex
	logger   *log.Logger
	logLevel LogLevel
}

// New creates a new Logger instance. Verbosity maps to log levels:
// 0 => WARN, 1 => INFO, 2+ => DEBUG.
func New(verbosity int) *Logger {
	enableColors()

	var level LogLevel
	switch verbosity {
	case 0:
		level = LevelWarn
	case 1:
		level = LevelInfo
	default:
		level = LevelDebug
	}

	return &Logger{
		logger:   log.New(os.Stdout, "", 0),
		logLevel: level,
	}
}

// SetOutput changes the output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

// SetLevel changes the minimum level that gets printed.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logLevel = level
}

// colorPrintf prints a colored message.
func (l *Logger) colorPrintf(color, format string, v ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, v...)
	l.logger.Printf("%s[%s] %s%s", color, ts, msg, colorReset)
}

// Printf prints a regular message.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, v...)
	l.logger.Printf("[%s] %s", ts, msg)
}

// Step prints a section header for a new phase of the run.
func (l *Logger) Step(format string, v ...interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	msg := fmt.Sprintf(format, v...)
	l.logger.Printf("\n%s/// %s ///%s", colorYellow, msg, colorReset)
}

// Info prints an informational message.
func (l *Logger) Info(format string, v ...interface{}) {
	if l.logLevel < LevelInfo {
		return
	}
	l.Printf(format, v...)
}

// Success prints a success message in green.
func (l *Logger) Success(format string, v ...interface{}) {
	l.colorPrintf(colorGreen, format, v...)
}

// Error prints an error message in red.
func (l *Logger) Error(format string, v ...interface{}) {
	l.colorPrintf(colorRed, format, v...)
}

// Warning prints a warning message in yellow.
func (l *Logger) Warning(format string, v ...interface{}) {
	if l.logLevel < LevelWarn {
		return
	}
	l.colorPrintf(colorYellow, format, v...)
}

// Debug prints a debug message in blue.
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.logLevel < LevelDebug {
		return
	}
	l.colorPrintf(colorBlue, format, v...)
}

// DryRun prints what a mutating action would have done.
func (l *Logger) DryRun(format string, v ...interface{}) {
	l.colorPrintf(colorYellow, "[DRY RUN] "+format, v...)
}

// Fatal prints an error message in red and exits.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.Error(format, v...)
	os.Exit(1)
}
