// SPDX-License-Identifier: EPL-2.0

package sequence

import "errors"

var (
	ErrNotPlaying = errors.New("sequence: entry has no live handle")
	ErrNoOwner    = errors.New("sequence: entry is not attached to a live sequence")
	ErrInvalidFPS = errors.New("sequence: frames per second must be positive")
)
