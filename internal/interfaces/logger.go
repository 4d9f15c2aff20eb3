package interfaces

// Logger defines a generic key/value logging interface.
type Logger interface {
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	Debug(msg string, keyvals ...any)
	SetLevel(level string)
	WithContext(ctx map[string]any) Logger
}
