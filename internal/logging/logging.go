package logging

// Logger is the logging surface used across the engine.
type Logger interface {
	Info(message string, args ...interface{})
	Error(message string, args ...interface{})
	Debug(message string, args ...interface{})
	Warn(message string, args ...interface{})
}

// NewLogger creates a logger with default settings.
func NewLogger() Logger {
	return NewSimpleLogger(Config{Level: "info"})
}
