// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidRatio   = errors.New("resampling ratio must be positive")
	ErrInvalidSpecs   = errors.New("sample rate and channel count must be positive")
	ErrUnknownQuality = errors.New("unknown resampling quality")
)
