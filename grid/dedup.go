// SPDX-License-Identifier: MIT

package grid

// Dedup returns the first occurrence of every element of seq, in input order.
// The input is not modified. Dedup(Dedup(x)) == Dedup(x).
//
// Complexity: O(n) time, O(n) extra memory.
func Dedup[T comparable](seq []T) []T {
	seen := make(map[T]struct{}, len(seq))
	out := make([]T, 0, len(seq))
	for _, v := range seq {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
