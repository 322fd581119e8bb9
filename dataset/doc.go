// SPDX-License-Identifier: MIT

// Package dataset supplies the historical series that sampling draws from.
//
// A Source yields ordered (index, value) rows. Implementations:
//
//   - CSVFile: a delimited file on disk; first row is a header.
//   - Reader:  the same format from any io.Reader.
//   - Series:  an in-memory []float64 (index = position).
//   - Synthetic: a reproducible geometric-Brownian price path, handy for
//     examples, benchmarks and dry runs of the CLI.
//
// Row normalisation: when a record arrives as a single field holding
// whitespace-separated tokens ("3 1.25"), it is split on whitespace first.
// Indices must be non-decreasing.
//
// Errors:
//
//   - ErrSourceNotFound: the file cannot be opened (wraps the os error).
//   - ErrSourceFormat: unparsable fields, missing value or decreasing index.
package dataset
