package mock

import (
	"context"

	"github.com/fwojciec/newscrawl"
)

var _ newscrawl.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of newscrawl.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []*newscrawl.Record) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []*newscrawl.Record) error {
	return w.WriteRecordsFn(ctx, records)
}
