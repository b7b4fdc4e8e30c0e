// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams with
// github.com/hajimehoshi/go-mp3.
//
// The decoder always produces interleaved stereo float32 samples at the
// file's own rate. Length (via audio.Lengther) is only known when the input
// is an io.Seeker; otherwise it reports -1.
package mp3
