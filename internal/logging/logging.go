package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging returns the process logger: JSON lines on stdout with the
// level reported under "loglevel". An empty level means info.
func SetupLogging(level string) (*logrus.Logger, error) {
	logger := &logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Level: logrus.InfoLevel,
	}

	if level == "" {
		return logger, nil
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logger, err
	}
	logger.SetLevel(parsed)

	return logger, nil
}
