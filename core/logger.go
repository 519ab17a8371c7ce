package core

// Logger is any service that can log messages at the usual levels.
// Error/Fatal args may include an error whose stack trace should be reported.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
