// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"github.com/ik5/audseq/audio"
)

// Sound is a shareable piece of audio.
type Sound interface {
	Specs() audio.Specs
	// Length in frames, -1 when unknown.
	Length() int
	// NewReader opens an independent cursor positioned at frame 0.
	NewReader() (Reader, error)
}

// Reader is a seekable stream over a Sound.
type Reader interface {
	audio.Source

	// Seek moves to frame. Seeking to Length() is allowed and yields EOF.
	Seek(frame int) error
	Position() int
}

// Seconds returns the duration of s, or -1 when its length is unknown.
func Seconds(s Sound) float64 {
	n := s.Length()
	if n < 0 {
		return -1
	}

	return s.Specs().Seconds(n)
}
