// SPDX-License-Identifier: EPL-2.0

package device

import (
	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/sound"
)

// Vector3 is a position or velocity in listener space.
type Vector3 [3]float32

// Quaternion is a rotation stored as w, x, y, z.
type Quaternion [4]float32

// Identity is the rotation that leaves everything unchanged.
var Identity = Quaternion{1, 0, 0, 0}

// Handle is one sound playing on a device. Every method fails with
// ErrHandleStopped once Stop has been called.
type Handle interface {
	Pause() error
	Resume() error
	Stop() error
	// Seek moves playback to seconds into the sound.
	Seek(seconds float64) error
	SetVolume(volume float32) error
	// SetPitch scales playback speed; it must be positive.
	SetPitch(pitch float32) error
}

// Panner is implemented by handles that support stereo balance.
type Panner interface {
	SetPanning(panning float32) error
}

// Handle3D is implemented by handles that can be positioned in space.
type Handle3D interface {
	SetRelative(relative bool) error
	SetVolumeMaximum(volume float32) error
	SetVolumeMinimum(volume float32) error
	SetDistanceMaximum(distance float32) error
	SetDistanceReference(distance float32) error
	SetAttenuation(factor float32) error
	SetConeAngleOuter(degrees float32) error
	SetConeAngleInner(degrees float32) error
	SetConeVolumeOuter(volume float32) error
	SetOrientation(q Quaternion) error
	SetLocation(v Vector3) error
	SetVelocity(v Vector3) error
}

// Device mixes playing handles into an output stream.
type Device interface {
	Specs() audio.Specs
	ChangeSpecs(specs audio.Specs) error
	SetQuality(q audio.Quality)
	// SetVolume is the master gain applied after mixing.
	SetVolume(volume float32)

	SetSpeedOfSound(speed float32)
	SetDistanceModel(model DistanceModel)
	SetDopplerFactor(factor float32)
	SetListenerOrientation(q Quaternion)
	SetListenerLocation(v Vector3)
	SetListenerVelocity(v Vector3)

	// Play starts s, optionally paused, and returns its handle.
	Play(s sound.Sound, paused bool) (Handle, error)
	// Mix overwrites dst[:frames*Specs().Channels] with the next frames
	// of output.
	Mix(dst []float32, frames int)
}

// Factory creates a device for the given output layout.
type Factory func(specs audio.Specs) (Device, error)
