// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes RIFF/WAVE files on top of
// github.com/go-audio/wav.
//
// The Decoder accepts integer PCM at 8, 16, 24 or 32 bits and yields
// interleaved float32 samples in [-1, 1). The returned source also
// implements audio.Lengther, so callers can size buffers up front:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	frames := src.(audio.Lengther).Length()
//
// Writer goes the other way and stores float32 samples as 16-bit PCM. The
// RIFF sizes are patched on Close, so the destination must be an
// io.WriteSeeker such as an *os.File:
//
//	w, err := wav.NewWriter(file, audio.Specs{Rate: 48000, Channels: 2})
//	...
//	err = w.Write(samples)
//	...
//	err = w.Close()
package wav
