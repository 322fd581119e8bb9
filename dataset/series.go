// SPDX-License-Identifier: MIT

package dataset

import "context"

// Series is an in-memory source; row i has index i.
type Series []float64

// Rows returns the series as rows.
func (s Series) Rows(_ context.Context) ([]Row, error) {
	out := make([]Row, len(s))
	for i, v := range s {
		out[i] = Row{Index: int64(i), Value: v}
	}
	return out, nil
}
