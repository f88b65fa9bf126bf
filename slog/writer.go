package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newscrawl"
)

// Ensure LoggingRecordWriter implements newscrawl.RecordWriter.
var _ newscrawl.RecordWriter = (*LoggingRecordWriter)(nil)

// LoggingRecordWriter wraps a RecordWriter with logging. Writes are logged
// at info level since they happen once per run.
type LoggingRecordWriter struct {
	next   newscrawl.RecordWriter
	logger *slog.Logger
}

// NewLoggingRecordWriter creates a new LoggingRecordWriter.
func NewLoggingRecordWriter(next newscrawl.RecordWriter, logger *slog.Logger) *LoggingRecordWriter {
	return &LoggingRecordWriter{next: next, logger: logger}
}

// WriteRecords delegates to the wrapped writer and logs the outcome.
func (w *LoggingRecordWriter) WriteRecords(ctx context.Context, records []*newscrawl.Record) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		w.logger.Log(ctx, level, "write records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRecords(ctx, records)
}
