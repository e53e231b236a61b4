// Package logging owns the shared logger. Mapping fallbacks and skipped
// elements are logged here rather than surfaced as errors, so the level
// can be raised when a model converts suspiciously.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Init configures the shared logger from the LOG_LEVEL environment
// variable. Called once from the command layer.
func Init(appName string) {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "warn"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		logger.Warnf("invalid LOG_LEVEL %q, defaulting to warn", levelStr)
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if appName != "" {
		logger.AddHook(&appNameHook{appName: appName})
	}
}

// Component returns an entry scoped to one subsystem.
func Component(name string) *logrus.Entry {
	return logger.WithField("component", name)
}

// SetOutput redirects log output; tests use this to keep stderr quiet.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

type appNameHook struct {
	appName string
}

func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.appName + "] " + entry.Message
	return nil
}
