package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// LoadCSV reads a CSV file and returns rows as maps of column to value.
// The first row is treated as headers (column names). Files ending in .gz or
// .zst are decompressed transparently.
func LoadCSV(path string) ([]Row, error) {
	rc, err := openMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck

	reader := csv.NewReader(rc)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	rows := make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// RowRange selects data rows by 1-based inclusive position; row 1 is the
// first row after the header. End 0 means through the last row.
type RowRange struct {
	Start int
	End   int
}

// ParseRowRange parses "start:end", "start:" or ":end".
func ParseRowRange(s string) (RowRange, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return RowRange{}, fmt.Errorf("csv: row range %q must look like start:end", s)
	}
	r := RowRange{Start: 1}
	var err error
	if lo != "" {
		if r.Start, err = strconv.Atoi(lo); err != nil {
			return RowRange{}, fmt.Errorf("csv: row range start %q: %w", lo, err)
		}
	}
	if hi != "" {
		if r.End, err = strconv.Atoi(hi); err != nil {
			return RowRange{}, fmt.Errorf("csv: row range end %q: %w", hi, err)
		}
	}
	return r, r.validate()
}

func (r RowRange) validate() error {
	if r.Start < 1 {
		return fmt.Errorf("csv: range start must be >= 1, got %d", r.Start)
	}
	if r.End != 0 && r.End < r.Start {
		return fmt.Errorf("csv: range end (%d) must be >= start (%d)", r.End, r.Start)
	}
	return nil
}

// LoadCSVRange is LoadCSV restricted to the rows in r. An end past the last
// row is clamped, and a start past it yields no rows.
func LoadCSVRange(path string, r RowRange) ([]Row, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	rows, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}

	end := r.End
	if end == 0 || end > len(rows) {
		end = len(rows)
	}
	if r.Start > len(rows) {
		return []Row{}, nil
	}
	return rows[r.Start-1 : end], nil
}

// FloatColumn parses the named column of every row as a float64. Errors
// report the 1-based file line, counting the header as line 1.
func FloatColumn(rows []Row, name string) ([]float64, error) {
	return parseColumn(rows, name, func(raw string) (float64, error) {
		return strconv.ParseFloat(raw, 64)
	})
}

// LabelColumn parses a binary label column. Besides numbers it accepts
// true/false, which map to 1/0; range checks are left to the caller.
func LabelColumn(rows []Row, name string) ([]float64, error) {
	return parseColumn(rows, name, func(raw string) (float64, error) {
		switch strings.ToLower(raw) {
		case "true":
			return 1, nil
		case "false":
			return 0, nil
		}
		return strconv.ParseFloat(raw, 64)
	})
}

func parseColumn(rows []Row, name string, parse func(string) (float64, error)) ([]float64, error) {
	if len(rows) > 0 {
		if _, ok := rows[0][name]; !ok {
			return nil, fmt.Errorf("csv: column %q not found (available: %s)", name, strings.Join(columns(rows[0]), ", "))
		}
	}

	values := make([]float64, len(rows))
	for i, row := range rows {
		raw := strings.TrimSpace(row[name])
		v, err := parse(raw)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d column %q: %q is not a number", i+2, name, raw)
		}
		values[i] = v
	}
	return values, nil
}

func columns(row Row) []string {
	names := make([]string, 0, len(row))
	for k := range row {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openMaybeCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("csv: gzip %s: %w", path, err)
		}
		return &multiCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("csv: zstd %s: %w", path, err)
		}
		zr := dec.IOReadCloser()
		return &multiCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	}
	return f, nil
}
