// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrOnlyPCMSupported    = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrInvalidSpecs        = errors.New("sample rate and channel count must be positive")
	ErrWriterClosed        = errors.New("wav writer is closed")
)
