// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 on both sides keeps the scale symmetric
	return int16(x * 32767.0)
}

// AppendPCM16LE converts src to little-endian 16-bit PCM and appends the
// bytes to dst. Reusing dst[:0] between calls keeps the conversion allocation
// free once dst has grown to the working size.
func AppendPCM16LE(dst []byte, src []float32) []byte {
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint16(dst, uint16(Float32ToInt16(v)))
	}

	return dst
}

// IntToFloat32 normalizes a signed PCM sample of the given bit depth into
// [-1, 1). Unknown depths are treated as 16-bit.
func IntToFloat32(v, bitDepth int) float32 {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		bitDepth = 16
	}

	return float32(float64(v) / float64(int64(1)<<(bitDepth-1)))
}
