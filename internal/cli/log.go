// Package cli implements the kinview command-line interface.
//
// The commands read a kinship dataset (a directory of JSON files or a
// MongoDB database), lay trees out around a focus person and render them,
// name relationships, and serve the same operations over HTTP.
//
// # Commands
//
//   - layout, render: positioned documents and diagrams
//   - relate, index, birthdays, lineage: listings over the dataset
//   - browse: terminal navigator
//   - serve: HTTP API
//   - cache, db, config: maintenance
//
// # Logging
//
// --verbose (-v) switches to debug level and also logs pipeline, cache and
// request events. Commands take their logger from the command context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs a finished step with its elapsed time, e.g.
// "Loaded 1204 people from data (1.234s)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default when the
// context carries none (commands run outside setup).
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
