// SPDX-License-Identifier: EPL-2.0

package sound

import "errors"

var (
	ErrUnsupportedFormat = errors.New("sound: no decoder for file extension")
	ErrSeekOutOfRange    = errors.New("sound: seek position out of range")
	ErrSampleCount       = errors.New("sound: sample count is not a multiple of the channel count")
)
