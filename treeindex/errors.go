// SPDX-License-Identifier: MIT

package treeindex

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a (scenario, time) pair or a flat index outside
	// the tree bounds.
	ErrOutOfRange = errors.New("treeindex: coordinate out of range")

	// ErrDegenerateConfiguration indicates a tree or call parameter that cannot
	// describe a usable tree (branching 0, non-positive stage length, negative
	// tolerances, ...). Other packages return it wrapped so callers can branch
	// on a single sentinel with errors.Is.
	ErrDegenerateConfiguration = errors.New("treeindex: degenerate configuration")
)

// Errorf prefixes an error with the canonical method name.
// The format must contain exactly one %w verb when a sentinel is wrapped.
func Errorf(method, format string, args ...interface{}) error {
	return fmt.Errorf(method+": "+format, args...)
}
