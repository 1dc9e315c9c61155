// internal/app/system/csvutil/table.go
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrEmptyTable is returned when the input has no header row.
	ErrEmptyTable = errors.New("table has no header row")

	// ErrTooManyRows is returned when the table exceeds ReadOptions.MaxRows.
	ErrTooManyRows = errors.New("table exceeds the maximum number of rows")
)

// ReadOptions controls how ReadTable parses its input.
type ReadOptions struct {
	Comma      rune // field delimiter; ';' when zero
	MaxRows    int  // 0 means unlimited
	LazyQuotes bool // tolerate bare quotes inside unquoted fields
}

// DefaultReadOptions returns the options used for resource tables:
// semicolon-delimited, bounded by MaxRows, with a bare quote inside an
// unquoted cell (Asociación "Alba") read as a literal character.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Comma: ';', MaxRows: MaxRows, LazyQuotes: true}
}

// Table is a header row plus data rows, exactly as read (no trimming).
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns row[i], or "" when the row is shorter than the header.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ReadTable reads a delimited table with a header row.
//
// A UTF-8 BOM in the first header cell is stripped. Rows may have any number
// of fields; rows whose cells are all blank are skipped. Any parse error
// aborts the read, so callers never see a partial table.
func ReadTable(r io.Reader, opts ReadOptions) (Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = opts.Comma
	if reader.Comma == 0 {
		reader.Comma = ';'
	}
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = opts.LazyQuotes

	var t Table

	header, err := reader.Read()
	if err == io.EOF {
		return t, ErrEmptyTable
	}
	if err != nil {
		return t, fmt.Errorf("read header: %w", err)
	}

	// Handle BOM in first cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	t.Header = header

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row: %w", err)
		}
		if blank(rec) {
			continue
		}
		if opts.MaxRows > 0 && len(t.Rows) >= opts.MaxRows {
			return Table{}, ErrTooManyRows
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
