// SPDX-License-Identifier: EPL-2.0

// Package sequence plays a mutable timeline of sounds.
//
// A Sequence holds entries, each placing a sound.Sound on the timeline
// between a begin and an end time (in seconds) with keyframed volume,
// pitch, panning, location and orientation (see package anim). Keyframes are
// addressed in animation frames: seconds multiplied by the sequence FPS.
//
// The timeline may be edited from one goroutine while a Reader renders it
// from another. Each Read diffs the entry list against its playback
// handles, then renders in chunks that end on animation frame boundaries so
// that every parameter is updated exactly once per frame:
//
//	seq := sequence.New(audio.Specs{Rate: 48000, Channels: 2}, 24, false)
//	e := seq.Add(snd, 0, 10, 0)
//	e.AnimProperty(anim.Volume).WriteFrames([]float32{0.5}, 48, 1)
//
//	r, err := sequence.NewReader(seq)
//	...
//	r.Read(buf, 1024)
//
// Entries outside their window are paused while the play head is within
// KeepTime of it and released further away, so scrubbing near an edge does
// not churn device handles.
package sequence
