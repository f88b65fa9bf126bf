package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/fwojciec/newscrawl"
	newsfs "github.com/fwojciec/newscrawl/fs"
)

// Options configures Preprocess.
type Options struct {
	// Keyword removes every row that contains it. Empty disables filtering.
	Keyword string

	// Dedupe removes exact duplicate rows before filtering.
	Dedupe bool

	// Header keeps the first row untouched as a column header.
	Header bool
}

// Stats reports what Preprocess changed.
type Stats struct {
	Read       int
	Duplicates int
	Filtered   int
	Written    int
}

// ReadRows parses the CSV file at path. Rows may have differing lengths.
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseRows(f)
}

func parseRows(r io.Reader) ([]Row, error) {
	cr := stdcsv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.EINVALID, "parsing CSV: %v", err)
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row(rec)
	}
	return rows, nil
}

// WriteRows replaces the file at path with rows. The file is either fully
// replaced or left untouched. An existing file keeps its permissions; a new
// one is created with mode 0644.
func WriteRows(path string, rows []Row) error {
	perm := os.FileMode(0644)
	info, err := os.Stat(path)
	if err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var buf bytes.Buffer
	w := stdcsv.NewWriter(&buf)
	for _, row := range rows {
		if err = w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}

	return newsfs.WriteFileAtomic(path, buf.Bytes(), perm)
}

// Preprocess deduplicates and keyword-filters the CSV file at path in place.
// If the file cannot be read or parsed nothing is written.
func Preprocess(path string, opts Options) (*Stats, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var header []Row
	if opts.Header && len(rows) > 0 {
		header, rows = rows[:1], rows[1:]
	}

	stats := &Stats{Read: len(rows)}

	if opts.Dedupe {
		deduped := Dedupe(rows)
		stats.Duplicates = len(rows) - len(deduped)
		rows = deduped
	}

	filtered := Filter(rows, opts.Keyword)
	stats.Filtered = len(rows) - len(filtered)
	stats.Written = len(filtered)

	if err := WriteRows(path, slices.Concat(header, filtered)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	return stats, nil
}

// ReadURLs returns the first column of every row in the CSV file at path.
// Rows whose first cell is blank are skipped.
func ReadURLs(path string, header bool) ([]string, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if header && len(rows) > 0 {
		rows = rows[1:]
	}

	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		u := strings.TrimSpace(row[0])
		if u == "" {
			continue
		}
		urls = append(urls, u)
	}
	return urls, nil
}
