package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/silinternational/intake-api/domain"
)

var logger = newLogger(os.Stdout)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	if domain.IsProduction() {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Logger returns the shared logrus logger so it can be handed to other frameworks
func Logger() *logrus.Logger {
	return logger
}

// SetOutput redirects log output, mostly useful in tests
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetHook adds a logrus hook, such as the SentryHook
func SetHook(hook logrus.Hook) {
	if hook == nil {
		return
	}
	logger.AddHook(hook)
}

func WithFields(fields map[string]any) *logrus.Entry {
	return logger.WithFields(fields)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warn(args ...any) {
	logger.Warn(args...)
}

func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

// Errorf logs at error level, including the caller location
func Errorf(format string, args ...any) {
	logger.WithField("function", domain.GetFunctionName(2)).Errorf(format, args...)
}
