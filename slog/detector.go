package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docingest"
)

// Ensure LoggingDetector implements docingest.FrameworkDetector.
var _ docingest.FrameworkDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a FrameworkDetector with debug logging.
type LoggingDetector struct {
	next   docingest.FrameworkDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next docingest.FrameworkDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the result.
func (d *LoggingDetector) Detect(html string) docingest.Framework {
	begin := time.Now()
	framework := d.next.Detect(html)
	name := string(framework)
	if framework == docingest.FrameworkUnknown {
		name = "(unknown)"
	}
	d.logger.Debug("framework detection",
		"framework", name,
		"duration", time.Since(begin),
	)
	return framework
}
