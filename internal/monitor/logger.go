package monitor

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus logger. Everything goes to stderr so that a
// scheduled run's diagnostics end up where the scheduler captures them.
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a logger for the given level, falling back to info
// on an unparseable level.
func NewLogger(level string) *Logger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &Logger{Logger: logger}
}

// Truncate shortens s to at most max characters, appending "..." when
// something was cut. Keeps request/response bodies and diagnostics at a
// bounded length in logs and failure notifications.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
