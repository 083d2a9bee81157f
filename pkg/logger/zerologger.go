package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type ZeroLogger struct {
	zlogger zerolog.Logger
}

func NewZeroLog(env string) *ZeroLogger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *ZeroLogger {
	logger := zerolog.New(w).With().Timestamp().Logger()

	switch env {
	case "production":
		logger = logger.Level(zerolog.InfoLevel)
	default:
		logger = logger.Level(zerolog.DebugLevel)
	}

	return &ZeroLogger{zlogger: logger}
}

// logWithFields applies dynamic fields efficiently using typed methods
func logWithFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event.Str(f.Key, v)
		case int:
			event.Int(f.Key, v)
		case int64:
			event.Int64(f.Key, v)
		case float64:
			event.Float64(f.Key, v)
		case bool:
			event.Bool(f.Key, v)
		case time.Duration:
			event.Dur(f.Key, v)
		case error:
			event.AnErr(f.Key, v)
		default:
			event.Interface(f.Key, v) // fallback for complex types
		}
	}
	return event
}

func (l *ZeroLogger) Debug(msg string, fields ...Field) {
	logWithFields(l.zlogger.Debug(), fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields ...Field) {
	logWithFields(l.zlogger.Info(), fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields ...Field) {
	logWithFields(l.zlogger.Warn(), fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, fields ...Field) {
	logWithFields(l.zlogger.Error(), fields).Msg(msg)
}

// With returns a child logger that stamps the given fields on every event.
func (l *ZeroLogger) With(fields ...Field) Client {
	ctx := l.zlogger.With()
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ctx = ctx.Str(f.Key, v)
		case int:
			ctx = ctx.Int(f.Key, v)
		case error:
			ctx = ctx.AnErr(f.Key, v)
		default:
			ctx = ctx.Interface(f.Key, v)
		}
	}
	return &ZeroLogger{zlogger: ctx.Logger()}
}
