package csp

import (
	"io"

	"github.com/sirupsen/logrus"
)

// noopEntry returns a logrus.Entry that discards everything, so a System
// constructed without WithLogger pays no tracing overhead on the hot
// propagation path.
func noopEntry() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
