package logging

import (
	"log"
	"os"
)

// SimpleLogger is a leveled logger on top of the standard library.
type SimpleLogger struct {
	out   *log.Logger
	err   *log.Logger
	level int
}

// Config for logger
type Config struct {
	Level string // "debug", "info", "warn", "error"
}

var levels = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// NewSimpleLogger creates a new logger instance.
func NewSimpleLogger(cfg Config) *SimpleLogger {
	level, ok := levels[cfg.Level]
	if !ok {
		level = levels["info"]
	}
	return &SimpleLogger{
		out:   log.New(os.Stdout, "", log.Ldate|log.Ltime),
		err:   log.New(os.Stderr, "", log.Ldate|log.Ltime),
		level: level,
	}
}

func (l *SimpleLogger) Debug(message string, args ...interface{}) {
	if l.level <= levels["debug"] {
		l.out.Printf("DEBUG "+message, args...)
	}
}

func (l *SimpleLogger) Info(message string, args ...interface{}) {
	if l.level <= levels["info"] {
		l.out.Printf("INFO "+message, args...)
	}
}

func (l *SimpleLogger) Warn(message string, args ...interface{}) {
	if l.level <= levels["warn"] {
		l.out.Printf("WARN "+message, args...)
	}
}

func (l *SimpleLogger) Error(message string, args ...interface{}) {
	l.err.Printf("ERROR "+message, args...)
}
