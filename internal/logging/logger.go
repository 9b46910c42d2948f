package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Fields map[string]interface{}

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init configures level ("debug", "info", ...) and format ("json" or
// "text"). Unknown levels fall back to info.
func Init(level, format string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Logger exposes the underlying logrus logger for libraries that want one.
func Logger() *logrus.Logger {
	return log
}

func entry(fields Fields) *logrus.Entry {
	return log.WithFields(logrus.Fields(fields))
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields Fields) {
	entry(fields).Debug(msg)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	entry(fields).Info(msg)
}

// Warn logs a warning with optional fields.
func Warn(msg string, fields Fields) {
	entry(fields).Warn(msg)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	e := entry(fields)
	if err != nil {
		e = e.WithError(err)
	}
	e.Error(msg)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	e := entry(fields)
	if err != nil {
		e = e.WithError(err)
	}
	e.Fatal(msg)
}
