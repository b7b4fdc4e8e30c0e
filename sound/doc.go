// SPDX-License-Identifier: EPL-2.0

// Package sound holds playable material for the sequencer.
//
// A Sound is an immutable description (layout and length) that can spawn
// any number of independent, seekable Readers. Buffer is the in-memory
// implementation: decode a file once with Open, or synthesize one with
// Generate, and share the same *Buffer between as many entries as needed.
package sound
