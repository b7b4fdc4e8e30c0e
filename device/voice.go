// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"math"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/sound"
)

// Spatial holds the 3D parameters last set on a voice.
type Spatial struct {
	Relative          bool
	VolumeMaximum     float32
	VolumeMinimum     float32
	DistanceMaximum   float32
	DistanceReference float32
	Attenuation       float32
	ConeAngleOuter    float32
	ConeAngleInner    float32
	ConeVolumeOuter   float32
	Orientation       Quaternion
	Location          Vector3
	Velocity          Vector3
}

// Voice is the Handle returned by Software. It implements Panner and
// Handle3D as well.
type Voice struct {
	dev       *Software
	reader    sound.Reader
	resampler *audio.Resampler
	mixer     *audio.ChannelMixer

	volume  float32
	pitch   float32
	paused  bool
	stopped bool
	// ended is set when the reader ran dry; a Seek revives the voice
	ended   bool
	spatial Spatial
}

func newVoice(d *Software, r sound.Reader) *Voice {
	rs := audio.NewResampler(r, d.specs.Rate)
	rs.SetQuality(d.quality)

	return &Voice{
		dev:       d,
		reader:    r,
		resampler: rs,
		mixer:     audio.NewChannelMixer(rs, d.specs.Channels),
		volume:    1,
		pitch:     1,
		spatial: Spatial{
			Relative:          true,
			VolumeMaximum:     1,
			DistanceMaximum:   math.MaxFloat32,
			DistanceReference: 1,
			Attenuation:       1,
			ConeAngleOuter:    360,
			ConeAngleInner:    360,
			Orientation:       Identity,
		},
	}
}

// render fills buf from the voice pipeline and returns how many samples
// were produced. Callers hold dev.mu.
func (v *Voice) render(buf []float32) int {
	got := 0
	for got < len(buf) {
		n, err := v.mixer.ReadSamples(buf[got:])
		got += n
		if err != nil {
			// decoder errors end the voice the same way EOF does
			v.ended = true
			break
		}
		if n == 0 {
			break
		}
	}

	return got
}

// with runs fn under the device lock unless the voice was stopped.
func (v *Voice) with(fn func() error) error {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	if v.stopped {
		return ErrHandleStopped
	}

	return fn()
}

func (v *Voice) Pause() error {
	return v.with(func() error {
		v.paused = true
		return nil
	})
}

func (v *Voice) Resume() error {
	return v.with(func() error {
		v.paused = false
		return nil
	})
}

func (v *Voice) Stop() error {
	return v.with(func() error {
		v.stopped = true
		v.dev.remove(v)

		if err := v.mixer.Close(); err != nil {
			return fmt.Errorf("stop voice: %w", err)
		}
		return nil
	})
}

// Seek clamps seconds into the sound and revives an ended voice.
func (v *Voice) Seek(seconds float64) error {
	return v.with(func() error {
		frame := 0
		if seconds > 0 {
			frame = int(math.Round(seconds * float64(v.reader.SampleRate())))
		}
		if l, ok := v.reader.(audio.Lengther); ok && l.Length() >= 0 {
			frame = min(frame, l.Length())
		}

		if err := v.reader.Seek(frame); err != nil {
			return fmt.Errorf("seek voice: %w", err)
		}
		v.resampler.Reset()
		v.ended = false

		return nil
	})
}

func (v *Voice) SetVolume(volume float32) error {
	return v.with(func() error {
		v.volume = volume
		return nil
	})
}

func (v *Voice) SetPitch(pitch float32) error {
	return v.with(func() error {
		if err := v.resampler.SetPitch(float64(pitch)); err != nil {
			return fmt.Errorf("set pitch %v: %w", pitch, err)
		}
		v.pitch = pitch
		return nil
	})
}

func (v *Voice) SetPanning(panning float32) error {
	return v.with(func() error {
		v.mixer.SetPanning(panning)
		return nil
	})
}

func (v *Voice) SetRelative(relative bool) error {
	return v.with(func() error { v.spatial.Relative = relative; return nil })
}

func (v *Voice) SetVolumeMaximum(volume float32) error {
	return v.with(func() error { v.spatial.VolumeMaximum = volume; return nil })
}

func (v *Voice) SetVolumeMinimum(volume float32) error {
	return v.with(func() error { v.spatial.VolumeMinimum = volume; return nil })
}

func (v *Voice) SetDistanceMaximum(distance float32) error {
	return v.with(func() error { v.spatial.DistanceMaximum = distance; return nil })
}

func (v *Voice) SetDistanceReference(distance float32) error {
	return v.with(func() error { v.spatial.DistanceReference = distance; return nil })
}

func (v *Voice) SetAttenuation(factor float32) error {
	return v.with(func() error { v.spatial.Attenuation = factor; return nil })
}

func (v *Voice) SetConeAngleOuter(degrees float32) error {
	return v.with(func() error { v.spatial.ConeAngleOuter = degrees; return nil })
}

func (v *Voice) SetConeAngleInner(degrees float32) error {
	return v.with(func() error { v.spatial.ConeAngleInner = degrees; return nil })
}

func (v *Voice) SetConeVolumeOuter(volume float32) error {
	return v.with(func() error { v.spatial.ConeVolumeOuter = volume; return nil })
}

func (v *Voice) SetOrientation(q Quaternion) error {
	return v.with(func() error { v.spatial.Orientation = q; return nil })
}

func (v *Voice) SetLocation(l Vector3) error {
	return v.with(func() error { v.spatial.Location = l; return nil })
}

func (v *Voice) SetVelocity(vel Vector3) error {
	return v.with(func() error { v.spatial.Velocity = vel; return nil })
}

// Spatial returns the recorded 3D parameters.
func (v *Voice) Spatial() Spatial {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	return v.spatial
}

// State reports the playback flags: paused, stopped and ended.
func (v *Voice) State() (paused, stopped, ended bool) {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	return v.paused, v.stopped, v.ended
}

func (v *Voice) Volume() float32 {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	return v.volume
}

func (v *Voice) Pitch() float32 {
	v.dev.mu.Lock()
	defer v.dev.mu.Unlock()

	return v.pitch
}

var (
	_ Handle   = (*Voice)(nil)
	_ Panner   = (*Voice)(nil)
	_ Handle3D = (*Voice)(nil)
	_ Device   = (*Software)(nil)
)
