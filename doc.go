// SPDX-License-Identifier: EPL-2.0

// Package audseq renders audio timelines.
//
// The heavy lifting lives in the subpackages:
//   - sequence: the timeline (entries, keyframes, listener) and its Reader
//   - anim: keyframed properties with stepped gaps and cubic interpolation
//   - device: the mixing device contract and the Software mixer
//   - sound: in-memory sounds and file loading
//   - audio: the Source pull contract, resampling and channel mixing
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//
// This package adds a few helpers on top for the common case of turning a
// source into a finished buffer or file:
//
//	seq := sequence.New(audio.Specs{Rate: 48000, Channels: 2}, 24, false)
//	seq.Add(snd, 0, 5, 0)
//	r, _ := sequence.NewReader(seq)
//
//	samples, err := audseq.Render(r, 5*48000)
//
// or, straight to disk:
//
//	f, _ := os.Create("out.wav")
//	err := audseq.WriteWAV(f, r, 5*48000)
package audseq
