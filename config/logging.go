package config

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ApplyLogging configures logger according to lc. A nil logger selects the
// logrus standard logger; a nil out keeps the logger's current output.
func ApplyLogging(logger *logrus.Logger, lc LogConfig, out io.Writer) error {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, lc.Level)
	}

	switch lc.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, lc.Format)
	}

	logger.SetLevel(level)
	if out != nil {
		logger.SetOutput(out)
	}
	return nil
}
