// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"math"
	"sync"
	"weak"

	"github.com/ik5/audseq/anim"
	"github.com/ik5/audseq/sound"
)

// Versions are the change stamps of an entry. Each one grows only when a
// setter in its group actually changes a value.
type Versions struct {
	// Status covers the static 3D parameters and the mute flag.
	Status uint64
	// Position covers begin, end and skip.
	Position uint64
	// Sound covers the sound reference.
	Sound uint64
}

// Entry places one sound on the timeline. Entries are created by
// Sequence.Add and stay usable after removal; a Reader that still holds one
// simply drops it on its next Read.
type Entry struct {
	mu sync.Mutex

	id    int
	owner weak.Pointer[Sequence]

	versions Versions

	sound sound.Sound
	begin float64
	end   float64
	skip  float64
	muted bool

	relative          bool
	volumeMaximum     float32
	volumeMinimum     float32
	distanceMaximum   float32
	distanceReference float32
	attenuation       float32
	coneAngleOuter    float32
	coneAngleInner    float32
	coneVolumeOuter   float32

	volume      *anim.Property
	pitch       *anim.Property
	panning     *anim.Property
	location    *anim.Property
	orientation *anim.Property
}

func newEntry(id int, owner *Sequence, s sound.Sound, begin, end, skip float64) *Entry {
	return &Entry{
		id:    id,
		owner: weak.Make(owner),
		sound: s,
		begin: begin,
		end:   end,
		skip:  skip,

		relative:          true,
		volumeMaximum:     1,
		distanceMaximum:   math.MaxFloat32,
		distanceReference: 1,
		attenuation:       1,
		coneAngleOuter:    360,
		coneAngleInner:    360,

		volume:      anim.NewWithValue(1, 1),
		pitch:       anim.NewWithValue(1, 1),
		panning:     anim.New(1),
		location:    anim.New(3),
		orientation: newOrientation(),
	}
}

func newOrientation() *anim.Property {
	p := anim.New(4)
	_ = p.Write([]float32{1, 0, 0, 0})
	return p
}

// ID is unique within the owning sequence and grows with creation order.
func (e *Entry) ID() int { return e.id }

// Versions returns the current change stamps.
func (e *Entry) Versions() Versions {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.versions
}

// AnimProperty returns the keyframed parameter t, or nil for a type entries
// do not carry.
func (e *Entry) AnimProperty(t anim.Type) *anim.Property {
	switch t {
	case anim.Volume:
		return e.volume
	case anim.Pitch:
		return e.pitch
	case anim.Panning:
		return e.panning
	case anim.Location:
		return e.location
	case anim.Orientation:
		return e.orientation
	default:
		return nil
	}
}

func (e *Entry) Sound() sound.Sound {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sound
}

// SetSound replaces the sound. Sounds are compared by identity, so
// implementations must be comparable (pointer types are).
func (e *Entry) SetSound(s sound.Sound) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sound != s {
		e.sound = s
		e.versions.Sound++
	}
}

// Window returns begin, end and skip in seconds. A negative end means the
// entry lasts as long as its sound.
func (e *Entry) Window() (begin, end, skip float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.begin, e.end, e.skip
}

// Move sets the timeline window: the entry plays from begin to end, starting
// skip seconds into its sound.
func (e *Entry) Move(begin, end, skip float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.begin != begin || e.end != end || e.skip != skip {
		e.begin = begin
		e.end = end
		e.skip = skip
		e.versions.Position++
	}
}

func (e *Entry) IsMuted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.muted
}

func (e *Entry) Mute(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	setBool(&e.muted, muted, &e.versions.Status)
}

func (e *Entry) IsRelative() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.relative
}

// SetRelative chooses whether location is relative to the listener.
func (e *Entry) SetRelative(relative bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	setBool(&e.relative, relative, &e.versions.Status)
}

func (e *Entry) VolumeMaximum() float32 { return e.getFloat(&e.volumeMaximum) }
func (e *Entry) SetVolumeMaximum(v float32) { e.setFloat(&e.volumeMaximum, v) }

func (e *Entry) VolumeMinimum() float32 { return e.getFloat(&e.volumeMinimum) }
func (e *Entry) SetVolumeMinimum(v float32) { e.setFloat(&e.volumeMinimum, v) }

func (e *Entry) DistanceMaximum() float32 { return e.getFloat(&e.distanceMaximum) }
func (e *Entry) SetDistanceMaximum(d float32) { e.setFloat(&e.distanceMaximum, d) }

func (e *Entry) DistanceReference() float32 { return e.getFloat(&e.distanceReference) }
func (e *Entry) SetDistanceReference(d float32) { e.setFloat(&e.distanceReference, d) }

func (e *Entry) Attenuation() float32 { return e.getFloat(&e.attenuation) }
func (e *Entry) SetAttenuation(a float32) { e.setFloat(&e.attenuation, a) }

func (e *Entry) ConeAngleOuter() float32 { return e.getFloat(&e.coneAngleOuter) }
func (e *Entry) SetConeAngleOuter(deg float32) { e.setFloat(&e.coneAngleOuter, deg) }

func (e *Entry) ConeAngleInner() float32 { return e.getFloat(&e.coneAngleInner) }
func (e *Entry) SetConeAngleInner(deg float32) { e.setFloat(&e.coneAngleInner, deg) }

func (e *Entry) ConeVolumeOuter() float32 { return e.getFloat(&e.coneVolumeOuter) }
func (e *Entry) SetConeVolumeOuter(v float32) { e.setFloat(&e.coneVolumeOuter, v) }

func (e *Entry) getFloat(field *float32) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return *field
}

func (e *Entry) setFloat(field *float32, v float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if *field != v {
		*field = v
		e.versions.Status++
	}
}

func setBool(field *bool, v bool, stamp *uint64) {
	if *field != v {
		*field = v
		*stamp++
	}
}

// entryState is a consistent copy of everything a handle needs from its
// entry for one update.
type entryState struct {
	versions Versions
	sound    sound.Sound
	begin    float64
	end      float64
	skip     float64
	muted    bool
	spatial  spatialParams
}

type spatialParams struct {
	relative          bool
	volumeMaximum     float32
	volumeMinimum     float32
	distanceMaximum   float32
	distanceReference float32
	attenuation       float32
	coneAngleOuter    float32
	coneAngleInner    float32
	coneVolumeOuter   float32
}

func (e *Entry) state() entryState {
	st := e.copyState()

	// an open end lasts as long as the sound, or forever if that is unknown
	if st.end < 0 {
		st.end = math.Inf(1)
		if st.sound != nil {
			if secs := sound.Seconds(st.sound); secs >= 0 {
				st.end = st.begin + secs - st.skip
			}
		}
	}

	return st
}

func (e *Entry) copyState() entryState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return entryState{
		versions: e.versions,
		sound:    e.sound,
		begin:    e.begin,
		end:      e.end,
		skip:     e.skip,
		muted:    e.muted,
		spatial: spatialParams{
			relative:          e.relative,
			volumeMaximum:     e.volumeMaximum,
			volumeMinimum:     e.volumeMinimum,
			distanceMaximum:   e.distanceMaximum,
			distanceReference: e.distanceReference,
			attenuation:       e.attenuation,
			coneAngleOuter:    e.coneAngleOuter,
			coneAngleInner:    e.coneAngleInner,
			coneVolumeOuter:   e.coneVolumeOuter,
		},
	}
}
