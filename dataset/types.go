// SPDX-License-Identifier: MIT

package dataset

import (
	"context"
	"errors"
)

var (
	// ErrSourceNotFound indicates the referenced source could not be opened.
	ErrSourceNotFound = errors.New("dataset: source not found")

	// ErrSourceFormat indicates a row that cannot be parsed as (index, value).
	ErrSourceFormat = errors.New("dataset: malformed source")
)

// Method names used as error prefixes.
const (
	MethodCSVFile   = "CSVFile.Rows"
	MethodReader    = "Reader.Rows"
	MethodSynthetic = "Synthetic.Rows"
)

// Row is one observation of the historical series.
type Row struct {
	Index int64
	Value float64
}

// Source yields the full ordered series. Implementations must be safe to call
// more than once.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}

// Values projects rows onto their values, preserving order.
func Values(rows []Row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}
	return out
}
