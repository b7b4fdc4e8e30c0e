// SPDX-License-Identifier: EPL-2.0

package anim

import "errors"

var (
	// ErrInvalidCount is the panic value of New for component counts below one.
	ErrInvalidCount = errors.New("anim: component count must be at least 1")

	// ErrShortData is returned when a write gets fewer values than it needs.
	ErrShortData = errors.New("anim: not enough values for the requested frames")
)
