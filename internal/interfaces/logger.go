package interfaces

// Logger defines a generic structured logging interface.
// keyvals are alternating keys and values, non-string keys are skipped.
type Logger interface {
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	Debug(msg string, keyvals ...interface{})
	SetLevel(level string)
	// WithContext returns a child logger that adds the given fields to every entry.
	WithContext(ctx map[string]interface{}) Logger
}
