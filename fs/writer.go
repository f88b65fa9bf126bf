// Package fs writes the harvest output document to the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/newscrawl"
)

// Ensure RecordWriter implements newscrawl.RecordWriter at compile time.
var _ newscrawl.RecordWriter = (*RecordWriter)(nil)

// RecordWriter writes the record collection as a single JSON document.
// The file is replaced atomically: the document is written to a temporary
// file in the same directory, synced and renamed over the target.
type RecordWriter struct {
	path string
	perm os.FileMode
}

// NewRecordWriter creates a RecordWriter targeting path.
func NewRecordWriter(path string) *RecordWriter {
	return &RecordWriter{
		path: path,
		perm: 0644,
	}
}

// WriteRecords replaces the output file with records. On failure the
// previous file, if any, is left untouched.
func (w *RecordWriter) WriteRecords(ctx context.Context, records []*newscrawl.Record) error {
	if w.path == "" {
		return newscrawl.Errorf(newscrawl.EINVALID, "output path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := newscrawl.MarshalRecords(records)
	if err != nil {
		return err
	}

	return WriteFileAtomic(w.path, data, w.perm)
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it over path once the data is on disk.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
