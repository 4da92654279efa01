// Package logging constructs the service logger.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New builds a structured logger writing to w at the given level.
// Unknown level strings fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "tpflow",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.TextFormatter,
	})
}
