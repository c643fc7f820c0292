// Package logging is the structured logging facade used by every package.
// Components depend on Logger; the CLI wires a LogrusAdapter and tests a
// MockLogger.
package logging

// Logger is a leveled logger carrying structured fields.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError attaches err to every entry of the returned logger.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry. Keys should come from
// the Field* constants.
type Field struct {
	Key   string
	Value interface{}
}

