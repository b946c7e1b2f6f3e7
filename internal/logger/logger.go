package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

// Log levels
const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	CRITICAL
	FATAL
)

// String returns the lower-case level name
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	case CRITICAL:
		return "critical"
	case FATAL:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Logger handles logging functionalities
type Logger struct {
	mu        sync.Mutex
	level     LogLevel
	logger    *log.Logger
	file      *os.File
	useColors bool
	exit      func(code int)
}

// levelColors maps log levels to ANSI color codes
var levelColors = map[LogLevel]string{
	DEBUG:    "\033[36m", // Cyan
	INFO:     "\033[32m", // Green
	WARN:     "\033[33m", // Yellow
	ERROR:    "\033[31m", // Red
	CRITICAL: "\033[1;31m",
	FATAL:    "\033[35m", // Magenta
}

// levelPrefixes maps log levels to text prefixes
var levelPrefixes = map[LogLevel]string{
	DEBUG:    "DEBUG",
	INFO:     "INFO ",
	WARN:     "WARN ",
	ERROR:    "ERROR",
	CRITICAL: "CRIT ",
	FATAL:    "FATAL",
}

// ParseLevel converts a level name to a LogLevel. Unknown names map to INFO.
func ParseLevel(levelStr string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "critical", "crit":
		return CRITICAL
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// NewLogger creates a new logger with the specified log level
func NewLogger(levelStr string) *Logger {
	logger := &Logger{
		level:     ParseLevel(levelStr),
		logger:    log.New(os.Stdout, "", 0), // prefix is formatted manually
		useColors: true,
		exit:      os.Exit,
	}

	// Disable colors if not in a terminal
	if fileInfo, err := os.Stdout.Stat(); err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		logger.useColors = false
	}

	return logger
}

// NewWriterLogger creates a logger that writes uncolored output to w
func NewWriterLogger(levelStr string, w io.Writer) *Logger {
	logger := NewLogger(levelStr)
	logger.logger.SetOutput(w)
	logger.useColors = false
	return logger
}

// Discard returns a logger that drops everything below FATAL.
// FATAL still terminates the process.
func Discard() *Logger {
	logger := NewWriterLogger("fatal", io.Discard)
	return logger
}

// NewFileLogger creates a new logger that writes to a file
func NewFileLogger(levelStr, filePath string) (*Logger, error) {
	file, err := openLogFile(filePath)
	if err != nil {
		return nil, err
	}

	logger := NewWriterLogger(levelStr, file)
	logger.file = file

	return logger, nil
}

// NewMultiLogger creates a logger that writes to both console and file
func NewMultiLogger(levelStr, filePath string) (*Logger, error) {
	file, err := openLogFile(filePath)
	if err != nil {
		return nil, err
	}

	logger := NewLogger(levelStr)
	logger.logger.SetOutput(io.MultiWriter(os.Stdout, file))
	logger.file = file

	return logger, nil
}

func openLogFile(filePath string) (*os.File, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// output writes one record; depth is the caller depth for file:line
func (l *Logger) output(level LogLevel, depth int, msg string) {
	l.mu.Lock()
	if level < l.level {
		l.mu.Unlock()
		return
	}

	_, file, line, ok := runtime.Caller(depth)
	if !ok {
		file = "unknown"
		line = 0
	}
	file = filepath.Base(file)

	now := time.Now().Format("2006/01/02 15:04:05")
	prefix := fmt.Sprintf("%s [%s] %s:%d:", now, levelPrefixes[level], file, line)

	if l.useColors {
		prefix = levelColors[level] + prefix + "\033[0m"
	}

	l.logger.Println(prefix, msg)

	if level != FATAL {
		l.mu.Unlock()
		return
	}

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	exit := l.exit
	l.mu.Unlock()
	exit(1)
}

// Debug logs a debug message
func (l *Logger) Debug(v ...interface{}) {
	l.output(DEBUG, 2, fmt.Sprint(v...))
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.output(DEBUG, 2, fmt.Sprintf(format, v...))
}

// Info logs an info message
func (l *Logger) Info(v ...interface{}) {
	l.output(INFO, 2, fmt.Sprint(v...))
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.output(INFO, 2, fmt.Sprintf(format, v...))
}

// Warn logs a warning message
func (l *Logger) Warn(v ...interface{}) {
	l.output(WARN, 2, fmt.Sprint(v...))
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.output(WARN, 2, fmt.Sprintf(format, v...))
}

// Error logs an error message
func (l *Logger) Error(v ...interface{}) {
	l.output(ERROR, 2, fmt.Sprint(v...))
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.output(ERROR, 2, fmt.Sprintf(format, v...))
}

// Critical logs a message about a condition the process cannot render past.
// Unlike Fatal it returns to the caller.
func (l *Logger) Critical(v ...interface{}) {
	l.output(CRITICAL, 2, fmt.Sprint(v...))
}

// Criticalf logs a formatted critical message
func (l *Logger) Criticalf(format string, v ...interface{}) {
	l.output(CRITICAL, 2, fmt.Sprintf(format, v...))
}

// Fatal logs a fatal message and exits the program
func (l *Logger) Fatal(v ...interface{}) {
	l.output(FATAL, 2, fmt.Sprint(v...))
}

// Fatalf logs a formatted fatal message and exits the program
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.output(FATAL, 2, fmt.Sprintf(format, v...))
}

// SetLevel sets the log level
func (l *Logger) SetLevel(levelStr string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = ParseLevel(levelStr)
}

// Level returns the current minimum level
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetOutput sets the output writer for the logger
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

// SetExitFunc replaces the function FATAL calls after logging.
// Passing nil restores os.Exit.
func (l *Logger) SetExitFunc(fn func(code int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if fn == nil {
		fn = os.Exit
	}
	l.exit = fn
}

// EnableColors enables or disables colored output
func (l *Logger) EnableColors(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.useColors = enable
}

// Close closes the logger's file if it exists
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

// OrDiscard returns l, or a discarding logger when l is nil
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}
