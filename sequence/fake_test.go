// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"sync"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/device"
	"github.com/ik5/audseq/sound"
)

// fakeDevice records everything the reader pushes. Mix writes the sum of
// the volumes of running handles so tests can see who is audible.
type fakeDevice struct {
	mu sync.Mutex

	specs    audio.Specs
	quality  audio.Quality
	listener device.Listener

	playErr error
	plays   int
	handles []*fakeHandle
	mixes   []int
}

func newFakeDevice(specs audio.Specs) *fakeDevice {
	return &fakeDevice{specs: specs}
}

// factory hands out d for whatever specs the reader asks for.
func (d *fakeDevice) factory(specs audio.Specs) (device.Device, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.specs = specs
	return d, nil
}

func (d *fakeDevice) Specs() audio.Specs {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.specs
}

func (d *fakeDevice) ChangeSpecs(specs audio.Specs) error {
	if !specs.Valid() {
		return audio.ErrInvalidSpecs
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.specs = specs
	return nil
}

func (d *fakeDevice) SetQuality(q audio.Quality) {
	d.mu.Lock()
	d.quality = q
	d.mu.Unlock()
}

func (d *fakeDevice) SetVolume(v float32) {
	d.mu.Lock()
	d.listener.Volume = v
	d.mu.Unlock()
}

func (d *fakeDevice) SetSpeedOfSound(s float32) {
	d.mu.Lock()
	d.listener.SpeedOfSound = s
	d.mu.Unlock()
}

func (d *fakeDevice) SetDistanceModel(m device.DistanceModel) {
	d.mu.Lock()
	d.listener.DistanceModel = m
	d.mu.Unlock()
}

func (d *fakeDevice) SetDopplerFactor(f float32) {
	d.mu.Lock()
	d.listener.DopplerFactor = f
	d.mu.Unlock()
}

func (d *fakeDevice) SetListenerOrientation(q device.Quaternion) {
	d.mu.Lock()
	d.listener.Orientation = q
	d.mu.Unlock()
}

func (d *fakeDevice) SetListenerLocation(v device.Vector3) {
	d.mu.Lock()
	d.listener.Location = v
	d.mu.Unlock()
}

func (d *fakeDevice) SetListenerVelocity(v device.Vector3) {
	d.mu.Lock()
	d.listener.Velocity = v
	d.mu.Unlock()
}

func (d *fakeDevice) Play(s sound.Sound, paused bool) (device.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.plays++
	if d.playErr != nil {
		return nil, d.playErr
	}

	h := &fakeHandle{dev: d, sound: s, paused: paused, volume: 1, pitch: 1}
	d.handles = append(d.handles, h)
	return h, nil
}

func (d *fakeDevice) Mix(dst []float32, frames int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sum float32
	for _, h := range d.handles {
		if !h.paused && !h.stopped {
			sum += h.volume
		}
	}

	out := dst[:frames*d.specs.Channels]
	for i := range out {
		out[i] = sum * d.listener.Volume
	}
	d.mixes = append(d.mixes, frames)
}

func (d *fakeDevice) snapshot() (plays int, handles []*fakeHandle, listener device.Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.plays, append([]*fakeHandle(nil), d.handles...), d.listener
}

func (d *fakeDevice) mixCalls() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.mixes...)
}

type fakeHandle struct {
	dev   *fakeDevice
	sound sound.Sound

	paused  bool
	stopped bool
	volume  float32
	pitch   float32
	panning float32
	seeks   []float64
	// pitch in effect when each seek happened
	seekPitch  []float32
	spatial    device.Spatial
	spatialSet int
}

func (h *fakeHandle) do(fn func()) error {
	h.dev.mu.Lock()
	defer h.dev.mu.Unlock()

	if h.stopped {
		return device.ErrHandleStopped
	}
	fn()
	return nil
}

func (h *fakeHandle) Pause() error  { return h.do(func() { h.paused = true }) }
func (h *fakeHandle) Resume() error { return h.do(func() { h.paused = false }) }
func (h *fakeHandle) Stop() error   { return h.do(func() { h.stopped = true }) }

func (h *fakeHandle) Seek(seconds float64) error {
	return h.do(func() {
		h.seeks = append(h.seeks, seconds)
		h.seekPitch = append(h.seekPitch, h.pitch)
	})
}

func (h *fakeHandle) SetVolume(v float32) error  { return h.do(func() { h.volume = v }) }
func (h *fakeHandle) SetPitch(p float32) error   { return h.do(func() { h.pitch = p }) }
func (h *fakeHandle) SetPanning(p float32) error { return h.do(func() { h.panning = p }) }

func (h *fakeHandle) SetRelative(r bool) error {
	return h.do(func() {
		h.spatial.Relative = r
		h.spatialSet++
	})
}

func (h *fakeHandle) SetVolumeMaximum(v float32) error {
	return h.do(func() { h.spatial.VolumeMaximum = v })
}

func (h *fakeHandle) SetVolumeMinimum(v float32) error {
	return h.do(func() { h.spatial.VolumeMinimum = v })
}

func (h *fakeHandle) SetDistanceMaximum(d float32) error {
	return h.do(func() { h.spatial.DistanceMaximum = d })
}

func (h *fakeHandle) SetDistanceReference(d float32) error {
	return h.do(func() { h.spatial.DistanceReference = d })
}

func (h *fakeHandle) SetAttenuation(a float32) error {
	return h.do(func() { h.spatial.Attenuation = a })
}

func (h *fakeHandle) SetConeAngleOuter(a float32) error {
	return h.do(func() { h.spatial.ConeAngleOuter = a })
}

func (h *fakeHandle) SetConeAngleInner(a float32) error {
	return h.do(func() { h.spatial.ConeAngleInner = a })
}

func (h *fakeHandle) SetConeVolumeOuter(v float32) error {
	return h.do(func() { h.spatial.ConeVolumeOuter = v })
}

func (h *fakeHandle) SetOrientation(q device.Quaternion) error {
	return h.do(func() { h.spatial.Orientation = q })
}

func (h *fakeHandle) SetLocation(v device.Vector3) error {
	return h.do(func() { h.spatial.Location = v })
}

func (h *fakeHandle) SetVelocity(v device.Vector3) error {
	return h.do(func() { h.spatial.Velocity = v })
}

// view copies the recorded state under the device lock.
func (h *fakeHandle) view() fakeHandle {
	h.dev.mu.Lock()
	defer h.dev.mu.Unlock()

	c := *h
	c.seeks = append([]float64(nil), h.seeks...)
	c.seekPitch = append([]float32(nil), h.seekPitch...)
	return c
}
