// Package logging constructs the process-wide logrus logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger configured for the given environment:
// text with debug level in development, JSON at info level otherwise.
func New(appEnv string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if appEnv == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
