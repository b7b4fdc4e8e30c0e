// SPDX-License-Identifier: EPL-2.0

// Package scene loads a sequence.Sequence from a YAML description.
//
//	specs: {rate: 48000, channels: 2}
//	fps: 24
//	duration: 6
//	listener:
//	  distance_model: linear_clamped
//	  keys:
//	    volume:
//	      - {frame: 0, value: 1}
//	      - {frame: 96, value: 0.5}
//	entries:
//	  - sound: {file: drums.wav}
//	    begin: 0
//	    end: 4
//	  - sound: {tone: {frequency: 440, seconds: 2, amplitude: 0.3}}
//	    begin: 1.5
//	    end: -1
//	    relative: false
//	    distance_reference: 2
//	    keys:
//	      panning: [{frame: 36, value: -1}, {frame: 72, value: 1}]
//	      location: [{frame: 36, value: [0, 0, -10]}]
//
// Keyframes are written one animation frame each; frames between them hold
// the previous value. A value may be a scalar or a list with one number per
// component of the property. Relative file paths resolve against the
// directory of the scene file.
//
// Scenes are read-only: nothing is written back.
package scene
