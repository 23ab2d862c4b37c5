// Package logger is a thin dispatch facade over one or more logging
// backends. Handlers and workers log through the package functions so
// backends can be swapped without touching call sites.
package logger

// LoggerInstance is one logging backend.
type LoggerInstance interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

var backends []LoggerInstance

// Init sets the global backends. Must run before any logging call;
// calls made with no backends configured are dropped silently.
func Init(instances ...LoggerInstance) {
	backends = instances
}

func dispatch(fn func(LoggerInstance)) {
	for _, instance := range backends {
		fn(instance)
	}
}

// Log writes at the backend's default level.
func Log(message string, keyvals ...any) {
	dispatch(func(l LoggerInstance) { l.Log(message, keyvals...) })
}

// Debug writes at DEBUG level.
func Debug(message string, keyvals ...any) {
	dispatch(func(l LoggerInstance) { l.Debug(message, keyvals...) })
}

// Info writes at INFO level.
func Info(message string, keyvals ...any) {
	dispatch(func(l LoggerInstance) { l.Info(message, keyvals...) })
}

// Warn writes at WARN level.
func Warn(message string, keyvals ...any) {
	dispatch(func(l LoggerInstance) { l.Warn(message, keyvals...) })
}

// Error writes at ERROR level.
func Error(message string, keyvals ...any) {
	dispatch(func(l LoggerInstance) { l.Error(message, keyvals...) })
}

// Fatal writes at FATAL level; the backend terminates the process.
func Fatal(message string, keyvals ...any) {
	dispatch(func(l LoggerInstance) { l.Fatal(message, keyvals...) })
}
