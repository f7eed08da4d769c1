package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type Logger struct {
	level     Level
	component string
	logger    *log.Logger
}

func NewLogger(levelStr string) *Logger {
	level := LevelInfo
	switch strings.ToLower(levelStr) {
	case "debug":
		level = LevelDebug
	case "info":
		level = LevelInfo
	case "warn":
		level = LevelWarn
	case "error":
		level = LevelError
	}

	return &Logger{
		level:  level,
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// WithComponent returns a logger whose lines carry a component tag.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{level: l.level, component: name, logger: l.logger}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.printf(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.printf(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.printf(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.printf(LevelError, format, args...) }

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.printf(LevelError, format, args...)
	os.Exit(1)
}

// Structured variants: an event name plus sorted key=value fields.
func (l *Logger) Debugw(event string, fields map[string]any) { l.write(LevelDebug, event, fields) }
func (l *Logger) Infow(event string, fields map[string]any)  { l.write(LevelInfo, event, fields) }
func (l *Logger) Warnw(event string, fields map[string]any)  { l.write(LevelWarn, event, fields) }
func (l *Logger) Errorw(event string, fields map[string]any) { l.write(LevelError, event, fields) }

var levelTags = map[Level]string{
	LevelDebug: "[DEBUG]",
	LevelInfo:  "[INFO]",
	LevelWarn:  "[WARN]",
	LevelError: "[ERROR]",
}

func (l *Logger) printf(level Level, format string, args ...interface{}) {
	if l.level > level {
		return
	}
	l.logger.Printf(l.prefix(level)+format, args...)
}

func (l *Logger) write(level Level, event string, fields map[string]any) {
	if l.level > level {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(l.prefix(level))
	b.WriteString(event)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	l.logger.Print(b.String())
}

func (l *Logger) prefix(level Level) string {
	if l.component != "" {
		return levelTags[level] + " " + l.component + ": "
	}
	return levelTags[level] + " "
}
