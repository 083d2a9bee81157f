package logger

// Field is a single structured key/value attached to a log event.
type Field struct {
	Key   string
	Value any
}

// Client is the logging contract used across the service.
type Client interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Client
}

// Err is shorthand for the conventional error field.
func Err(err error) Field {
	return Field{Key: "err", Value: err}
}

type nopLogger struct{}

// NewNop returns a Client that discards everything. Handy in tests.
func NewNop() Client { return nopLogger{} }

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}
func (n nopLogger) With(...Field) Client { return n }
