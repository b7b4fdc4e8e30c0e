// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"slices"
	"sync"

	"github.com/ik5/audseq/anim"
	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/device"
	"github.com/ik5/audseq/sound"
)

// DefaultSpeedOfSound is the speed of sound in air in m/s.
const DefaultSpeedOfSound = 343.3

// Sequence is the timeline: an id-ordered list of entries plus the listener
// and device-wide parameters. It is safe for concurrent use.
//
// A Sequence is itself a sound.Sound of unknown length, so sequences can be
// nested as the sound of another sequence's entry.
type Sequence struct {
	mu sync.Mutex

	specs         audio.Specs
	fps           float64
	muted         bool
	speedOfSound  float32
	dopplerFactor float32
	distanceModel device.DistanceModel

	// status tracks specs and the device-wide 3D settings, entryStatus the
	// entry list itself
	status      uint64
	entryStatus uint64

	nextID  int
	entries []*Entry

	volume      *anim.Property
	location    *anim.Property
	orientation *anim.Property
}

// New creates an empty timeline rendering to specs, with keyframes counted
// at fps frames per second.
func New(specs audio.Specs, fps float64, muted bool) *Sequence {
	return &Sequence{
		specs:         specs,
		fps:           fps,
		muted:         muted,
		speedOfSound:  DefaultSpeedOfSound,
		dopplerFactor: 1,
		distanceModel: device.DistanceInverseClamped,
		volume:        anim.NewWithValue(1, 1),
		location:      anim.New(3),
		orientation:   newOrientation(),
	}
}

func (s *Sequence) Specs() audio.Specs {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.specs
}

func (s *Sequence) SetSpecs(specs audio.Specs) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.specs != specs {
		s.specs = specs
		s.status++
	}
}

func (s *Sequence) FPS() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fps
}

// SetFPS changes the animation clock. Readers pick it up on their next chunk.
func (s *Sequence) SetFPS(fps float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fps = fps
}

func (s *Sequence) IsMuted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.muted
}

// Mute silences the whole timeline without stopping playback.
func (s *Sequence) Mute(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = muted
}

func (s *Sequence) SpeedOfSound() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.speedOfSound
}

func (s *Sequence) SetSpeedOfSound(speed float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.speedOfSound != speed {
		s.speedOfSound = speed
		s.status++
	}
}

func (s *Sequence) DopplerFactor() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dopplerFactor
}

func (s *Sequence) SetDopplerFactor(factor float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dopplerFactor != factor {
		s.dopplerFactor = factor
		s.status++
	}
}

func (s *Sequence) DistanceModel() device.DistanceModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.distanceModel
}

func (s *Sequence) SetDistanceModel(model device.DistanceModel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.distanceModel != model {
		s.distanceModel = model
		s.status++
	}
}

// Status is the change stamp of specs, speed of sound, doppler factor and
// distance model.
func (s *Sequence) Status() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// EntryStatus grows on every Add and every successful Remove.
func (s *Sequence) EntryStatus() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entryStatus
}

// AnimProperty returns the listener's volume, location or orientation, and
// nil for any other type.
func (s *Sequence) AnimProperty(t anim.Type) *anim.Property {
	switch t {
	case anim.Volume:
		return s.volume
	case anim.Location:
		return s.location
	case anim.Orientation:
		return s.orientation
	default:
		return nil
	}
}

// Add places snd on the timeline from begin to end seconds, starting skip
// seconds into the sound. snd may be nil and set later.
func (s *Sequence) Add(snd sound.Sound, begin, end, skip float64) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := newEntry(s.nextID, s, snd, begin, end, skip)
	s.nextID++
	s.entries = append(s.entries, e)
	s.entryStatus++

	return e
}

// Remove takes e off the timeline and reports whether it was there.
func (s *Sequence) Remove(e *Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.entries, e)
	if i < 0 {
		return false
	}

	s.entries = slices.Delete(s.entries, i, i+1)
	s.entryStatus++

	return true
}

// Entries returns the current entries in id order.
func (s *Sequence) Entries() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.entries)
}

// Length is always -1: a live timeline has no fixed end.
func (s *Sequence) Length() int { return -1 }

// NewReader renders the sequence through a software device.
func (s *Sequence) NewReader() (sound.Reader, error) {
	r, err := NewReader(s)
	if err != nil {
		return nil, err
	}

	return r, nil
}

var _ sound.Sound = (*Sequence)(nil)
