package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// Init configures the process logger. Development gets coloured text output,
// everything else JSON.
func Init(level string, development bool) *logrus.Logger {
	log := logrus.New()

	if level == "" {
		if development {
			level = "debug"
		} else {
			level = "info"
		}
	}

	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", level).Warn("Invalid LOG_LEVEL, using INFO")
	}

	if development {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}
	log.SetOutput(os.Stdout)

	Logger = log
	return log
}

func Get() *logrus.Logger {
	if Logger == nil {
		return Init("info", false)
	}
	return Logger
}

// WithComponent tags log lines with the subsystem that wrote them.
func WithComponent(name string) *logrus.Entry {
	return Get().WithField("component", name)
}
