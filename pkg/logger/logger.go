package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Interface interface {
	Debug(message interface{}, args ...interface{})
	Info(message string, args ...interface{})
	Warn(message string, args ...interface{})
	Error(message interface{}, args ...interface{})
	Fatal(message interface{}, args ...interface{})
}

type Logger struct {
	logger *zerolog.Logger
}

var _ Interface = (*Logger)(nil)

func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

func NewWithWriter(level string, w io.Writer) *Logger {
	var l zerolog.Level

	switch strings.ToLower(level) {
	case "error":
		l = zerolog.ErrorLevel
	case "warn":
		l = zerolog.WarnLevel
	case "info":
		l = zerolog.InfoLevel
	case "debug":
		l = zerolog.DebugLevel
	default:
		l = zerolog.InfoLevel
	}

	logger := zerolog.New(w).
		Level(l).
		With().
		Timestamp().
		Logger()

	return &Logger{logger: &logger}
}

func (l *Logger) Debug(message interface{}, args ...interface{}) {
	l.msg(l.logger.Debug(), message, args...)
}

func (l *Logger) Info(message string, args ...interface{}) {
	l.msg(l.logger.Info(), message, args...)
}

func (l *Logger) Warn(message string, args ...interface{}) {
	l.msg(l.logger.Warn(), message, args...)
}

func (l *Logger) Error(message interface{}, args ...interface{}) {
	l.msg(l.logger.Error(), message, args...)
}

func (l *Logger) Fatal(message interface{}, args ...interface{}) {
	l.msg(l.logger.WithLevel(zerolog.FatalLevel), message, args...)

	os.Exit(1)
}

// msg accepts both call styles used across the code base:
// Info("deleted %d events", n) and Error(err, "Component - Method - callee").
func (l *Logger) msg(event *zerolog.Event, message interface{}, args ...interface{}) {
	switch m := message.(type) {
	case error:
		event = event.Err(m)
		if len(args) == 0 {
			event.Msg(m.Error())
			return
		}
		if format, ok := args[0].(string); ok {
			event.Msg(sprintf(format, args[1:]...))
			return
		}
		event.Msg(fmt.Sprint(args...))
	case string:
		event.Msg(sprintf(m, args...))
	default:
		event.Msg(fmt.Sprintf("message %v has unknown type %T", message, message))
	}
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}

	return fmt.Sprintf(format, args...)
}
