package mock

import (
	"context"

	"github.com/msaveliev/ozonkw"
)

var _ ozonkw.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of ozonkw.RecordWriter.
type RecordWriter struct {
	WriteRecordFn func(ctx context.Context, rec *ozonkw.Record) error
}

func (w *RecordWriter) WriteRecord(ctx context.Context, rec *ozonkw.Record) error {
	return w.WriteRecordFn(ctx, rec)
}
