// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Signed integer PCM at 8, 16, 24 and 32 bits is supported. The frame count
// from the COMM chunk is exposed through audio.Lengther.
package aiff
