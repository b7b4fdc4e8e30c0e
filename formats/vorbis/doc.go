// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
// Samples come out interleaved in the stream's native channel layout.
package vorbis
