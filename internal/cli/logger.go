package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"tasktrack/internal/log"
	loglogrus "tasktrack/internal/log/logrus"
)

// NewLogger builds the process logger from the common flags. Logs go to
// errOut. Only warnings and errors are shown unless debug is set.
func NewLogger(opts Options, errOut io.Writer) (log.Logger, error) {
	if opts.NoLog {
		return log.Noop, nil
	}

	l := logrus.New()
	l.Out = errOut
	switch opts.LogFormat {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !opts.Debug})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format: %s (want text or json)", opts.LogFormat)
	}

	switch {
	case opts.Debug:
		l.SetLevel(logrus.DebugLevel)
	case opts.Quiet:
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.WarnLevel)
	}

	return loglogrus.NewLogrus(logrus.NewEntry(l)).WithValues(log.Kv{"app": "tasktrack"}), nil
}
