// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/sound"
	"github.com/viterin/vek/vek32"
)

// Listener is the device-wide state set through the Device interface.
type Listener struct {
	Volume        float32
	SpeedOfSound  float32
	DopplerFactor float32
	DistanceModel DistanceModel
	Orientation   Quaternion
	Location      Vector3
	Velocity      Vector3
}

// Software is an in-process mixing device. It is safe for concurrent use;
// one mutex covers the device and all of its voices.
type Software struct {
	mu       sync.Mutex
	specs    audio.Specs
	quality  audio.Quality
	listener Listener
	voices   []*Voice
	scratch  []float32
}

// NewSoftware creates a device producing specs-shaped output.
func NewSoftware(specs audio.Specs) (*Software, error) {
	if !specs.Valid() {
		return nil, fmt.Errorf("software device: %w", audio.ErrInvalidSpecs)
	}

	return &Software{
		specs:   specs,
		quality: audio.QualityCubic,
		listener: Listener{
			Volume:        1,
			SpeedOfSound:  343.3,
			DopplerFactor: 1,
			DistanceModel: DistanceInverseClamped,
			Orientation:   Identity,
		},
	}, nil
}

// SoftwareFactory adapts NewSoftware to Factory.
func SoftwareFactory(specs audio.Specs) (Device, error) {
	return NewSoftware(specs)
}

func (d *Software) Specs() audio.Specs {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.specs
}

// ChangeSpecs retargets every voice to the new layout. Playback positions
// are kept.
func (d *Software) ChangeSpecs(specs audio.Specs) error {
	if !specs.Valid() {
		return fmt.Errorf("software device: %w", audio.ErrInvalidSpecs)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if specs == d.specs {
		return nil
	}

	for _, v := range d.voices {
		if err := v.resampler.SetTargetRate(specs.Rate); err != nil {
			return fmt.Errorf("software device: %w", err)
		}
		if specs.Channels != d.specs.Channels {
			panning := v.mixer.Panning()
			v.mixer = audio.NewChannelMixer(v.resampler, specs.Channels)
			v.mixer.SetPanning(panning)
		}
	}
	d.specs = specs

	return nil
}

func (d *Software) SetQuality(q audio.Quality) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.quality = q
	for _, v := range d.voices {
		v.resampler.SetQuality(q)
	}
}

func (d *Software) SetVolume(volume float32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listener.Volume = volume
}

func (d *Software) SetSpeedOfSound(speed float32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listener.SpeedOfSound = speed
}

func (d *Software) SetDistanceModel(model DistanceModel) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listener.DistanceModel = model
}

func (d *Software) SetDopplerFactor(factor float32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listener.DopplerFactor = factor
}

func (d *Software) SetListenerOrientation(q Quaternion) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listener.Orientation = q
}

func (d *Software) SetListenerLocation(v Vector3) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listener.Location = v
}

func (d *Software) SetListenerVelocity(v Vector3) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listener.Velocity = v
}

// Listener returns a snapshot of the device-wide parameters.
func (d *Software) Listener() Listener {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.listener
}

// Voices reports how many handles are live (paused ones included).
func (d *Software) Voices() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.voices)
}

func (d *Software) Play(s sound.Sound, paused bool) (Handle, error) {
	if s == nil || !s.Specs().Valid() {
		return nil, ErrInvalidSound
	}

	r, err := s.NewReader()
	if err != nil {
		return nil, fmt.Errorf("software device: open reader: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	v := newVoice(d, r)
	v.paused = paused
	d.voices = append(d.voices, v)

	return v, nil
}

func (d *Software) Mix(dst []float32, frames int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := frames * d.specs.Channels
	out := vek32.Zeros_Into(dst, n)

	if cap(d.scratch) < n {
		d.scratch = make([]float32, n)
	}
	buf := d.scratch[:n]

	for _, v := range d.voices {
		if v.paused || v.ended {
			continue
		}

		got := v.render(buf)
		if got == 0 {
			continue
		}

		part := buf[:got]
		vek32.MulNumber_Inplace(part, v.volume)
		vek32.Add_Inplace(out[:got], part)
	}

	if d.listener.Volume != 1 {
		vek32.MulNumber_Inplace(out, d.listener.Volume)
	}
}

// remove drops v from the voice list. Callers hold d.mu.
func (d *Software) remove(v *Voice) {
	d.voices = slices.DeleteFunc(d.voices, func(o *Voice) bool { return o == v })
}
