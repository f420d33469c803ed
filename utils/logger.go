package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level orders log severities; messages below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides leveled, timestamped logging throughout the pipeline.
type Logger struct {
	level Level
	out   *log.Logger
	err   *log.Logger
	color bool
}

// NewLogger creates a Logger writing info and below to stdout, errors to stderr.
func NewLogger() *Logger {
	return &Logger{
		level: LevelInfo,
		out:   log.New(os.Stdout, "", 0),
		err:   log.New(os.Stderr, "", 0),
		color: true,
	}
}

// NewLoggerTo sends every level to w without color codes.
func NewLoggerTo(w io.Writer, level Level) *Logger {
	l := log.New(w, "", 0)
	return &Logger{level: level, out: l, err: l}
}

// SetLevel changes the minimum level that gets printed.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) tag(name, code string) string {
	if !l.color {
		return name
	}
	return "\033[" + code + "m" + name + "\033[0m"
}

func (l *Logger) print(dst *log.Logger, tag, format string, args ...any) {
	dst.Printf("[%s] %s %s", l.timestamp(), tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	if l.level > LevelInfo {
		return
	}
	l.print(l.out, l.tag("INFO ", "32"), format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	if l.level > LevelWarn {
		return
	}
	l.print(l.out, l.tag("WARN ", "33"), format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.print(l.err, l.tag("ERROR", "31"), format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.level > LevelDebug {
		return
	}
	l.print(l.out, l.tag("DEBUG", "36"), format, args...)
}
