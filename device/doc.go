// SPDX-License-Identifier: EPL-2.0

// Package device defines the mixing device the sequencer drives and ships a
// software implementation of it.
//
// A Device turns sounds into playback handles and mixes every live handle
// into an interleaved float32 buffer on demand. Handle covers the controls
// every backend has (pause, seek, volume, pitch). Panner and Handle3D are
// optional capabilities discovered with a type assertion:
//
//	h, err := dev.Play(snd, true)
//	if p, ok := h.(device.Panner); ok {
//	    p.SetPanning(-0.5)
//	}
//
// Software mixes in process: every voice runs through an audio.Resampler for
// rate and pitch, then an audio.ChannelMixer for layout and panning. It
// records the 3D parameters it receives but does not spatialize them.
package device
