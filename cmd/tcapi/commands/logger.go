package commands

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger writes library log lines through logrus.
type Logger struct {
	log *logrus.Logger
}

// NewLogger returns a text logger on out. Verbose enables debug lines.
func NewLogger(out io.Writer, verbose bool) *Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return &Logger{log: log}
}

// Debug logs msg with fields at debug level.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Debug(msg)
}

// Info logs msg with fields at info level.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Info(msg)
}

// Warn logs msg with fields at warn level.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Warn(msg)
}

// Error logs msg with fields at error level.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.WithFields(fields).Error(msg)
}
