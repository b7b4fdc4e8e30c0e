// SPDX-License-Identifier: EPL-2.0

// Package anim stores keyframed parameter vectors sampled against an
// animation clock.
//
// A Property holds a fixed number of float32 components per frame. Until a
// frame is written it is a plain constant. Writing frames turns it into an
// animated property whose buffer grows on demand:
//
//	volume := anim.NewWithValue(1, 1.0)
//	_ = volume.WriteFrames([]float32{0.2}, 48, 1) // key at frame 48
//	v := volume.ReadSingle(47.5)
//
// Frames skipped over by a write are "unknown": they hold the last known value
// (zero-order hold) because upstream animation systems only emit keys when a
// value changes. Reads between two known integer frames use a Catmull-Rom
// spline over the four surrounding frames; reads on an integer frame return
// the stored value exactly. Positions are clamped into the stored range.
//
// Every Property carries its own mutex so the render goroutine can sample it
// while a control goroutine writes keys.
package anim
