// SPDX-License-Identifier: MIT
// Package: stochgrid/dataset
//
// csv.go - delimited-text sources.

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CSVFile reads Dir/Name (or Name alone when Dir is empty).
type CSVFile struct {
	Name  string
	Dir   string
	Comma rune // field delimiter; zero means ','
}

// Path is the resolved file path.
func (f CSVFile) Path() string {
	if f.Dir == "" {
		return f.Name
	}
	return filepath.Join(f.Dir, f.Name)
}

// Rows opens and parses the file.
func (f CSVFile) Rows(ctx context.Context) ([]Row, error) {
	fh, err := os.Open(f.Path())
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w: %w", MethodCSVFile, f.Path(), ErrSourceNotFound, err)
	}
	defer fh.Close()

	rows, err := parse(ctx, fh, f.Comma)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", MethodCSVFile, f.Path(), err)
	}
	return rows, nil
}

// Reader parses the CSV format from R. It can be read only once unless R is
// rewound by the caller.
type Reader struct {
	R     io.Reader
	Comma rune
}

// Rows parses R.
func (r Reader) Rows(ctx context.Context) ([]Row, error) {
	rows, err := parse(ctx, r.R, r.Comma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodReader, err)
	}
	return rows, nil
}

func parse(ctx context.Context, r io.Reader, comma rune) ([]Row, error) {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	// header
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("header: %w: %w", ErrSourceFormat, err)
	}

	var out []Row
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrSourceFormat, err)
		}
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if n := len(out); n > 0 && row.Index < out[n-1].Index {
			return nil, fmt.Errorf("line %d: index %d after %d: %w", line, row.Index, out[n-1].Index, ErrSourceFormat)
		}
		out = append(out, row)
	}
	return out, nil
}

// parseRecord normalises a record to (index, value) fields and parses them.
func parseRecord(rec []string) (Row, error) {
	fields := rec
	if len(fields) == 1 {
		fields = strings.Fields(fields[0])
	}
	if len(fields) < 2 {
		return Row{}, fmt.Errorf("want index and value, got %q: %w", rec, ErrSourceFormat)
	}
	idx, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("index %q: %w", fields[0], ErrSourceFormat)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return Row{}, fmt.Errorf("value %q: %w", fields[1], ErrSourceFormat)
	}
	return Row{Index: idx, Value: val}, nil
}
