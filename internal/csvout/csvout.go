// Package csvout writes the semicolon separated CSV files produced by the
// scrapers. Rows are flushed as soon as they are written so an aborted run
// keeps everything scraped so far.
package csvout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brogergvhs/choirscrape/internal/normalize"
)

const (
	Delimiter = ';'
	bom       = "\ufeff"
	keySep    = "\x1f"
)

type Options struct {
	// Append keeps existing rows; the header is only written to a new or empty file.
	Append bool
	// BOM prefixes the header with a UTF-8 byte order mark for spreadsheet apps.
	BOM bool
	// Sync fsyncs the file after every row.
	Sync bool
}

type Writer struct {
	f    *os.File
	w    *csv.Writer
	sync bool
	rows int
}

func Open(path string, header []string, opts Options) (*Writer, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if opts.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = Delimiter
	w.UseCRLF = true

	out := &Writer{f: f, w: w, sync: opts.Sync}

	if info.Size() == 0 && len(header) > 0 {
		if opts.BOM {
			if _, err := f.WriteString(bom); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("csv: writing BOM: %w", err)
			}
		}

		if err := out.flushRow(header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("csv: writing header: %w", err)
		}
	}

	return out, nil
}

// Write appends one row and flushes it to disk.
func (w *Writer) Write(row []string) error {
	if err := w.flushRow(row); err != nil {
		return err
	}
	w.rows++

	return nil
}

func (w *Writer) flushRow(row []string) error {
	if err := w.w.Write(row); err != nil {
		return err
	}

	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return err
	}

	if w.sync {
		// some filesystems (pipes, /dev/stdout) reject fsync
		_ = w.f.Sync()
	}

	return nil
}

// Rows reports how many data rows were written through this writer.
func (w *Writer) Rows() int {
	return w.rows
}

func (w *Writer) Close() error {
	w.w.Flush()
	werr := w.w.Error()
	cerr := w.f.Close()

	return errors.Join(werr, cerr)
}

// Key builds the dedup key of a row from already normalized fields.
func Key(fields ...string) string {
	return strings.Join(fields, keySep)
}

// LoadKeys reads an existing CSV and returns the dedup keys of its rows over
// the given columns. Columns missing from the file count as empty. A missing
// file yields an empty set.
func LoadKeys(path string, columns []string) (map[string]bool, error) {
	seen := map[string]bool{}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return seen, nil
	}
	if err != nil {
		return seen, err
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.Comma = Delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return seen, nil
	}
	if err != nil {
		return seen, fmt.Errorf("csv: reading header of %s: %w", path, err)
	}

	pos := map[string]int{}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		pos[strings.TrimSpace(h)] = i
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return seen, fmt.Errorf("csv: reading %s: %w", path, err)
		}

		vals := make([]string, len(columns))
		for i, c := range columns {
			if p, ok := pos[c]; ok && p < len(rec) {
				vals[i] = normalize.Spaces(rec[p])
			}
		}

		seen[Key(vals...)] = true
	}

	return seen, nil
}
