// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"math"
	"testing"

	"github.com/ik5/audseq/anim"
	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/device"
	"github.com/ik5/audseq/sound"
)

var testSpecs = audio.Specs{Rate: 1000, Channels: 1}

func testSound(t *testing.T, seconds float64) *sound.Buffer {
	t.Helper()

	b, err := sound.Generate(testSpecs, int(seconds*float64(testSpecs.Rate)), func(int, int) float32 { return 0.5 })
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return b
}

func TestSequenceDefaults(t *testing.T) {
	t.Parallel()

	seq := New(testSpecs, 24, false)

	if seq.SpeedOfSound() != DefaultSpeedOfSound || seq.DopplerFactor() != 1 {
		t.Errorf("speed of sound / doppler = %v / %v", seq.SpeedOfSound(), seq.DopplerFactor())
	}
	if seq.DistanceModel() != device.DistanceInverseClamped {
		t.Errorf("DistanceModel() = %v, want inverse_clamped", seq.DistanceModel())
	}
	if got := seq.AnimProperty(anim.Volume).ReadSingle(7); got != 1 {
		t.Errorf("listener volume = %v, want 1", got)
	}

	q := make([]float32, 4)
	seq.AnimProperty(anim.Orientation).Read(0, q)
	if q[0] != 1 || q[1] != 0 || q[2] != 0 || q[3] != 0 {
		t.Errorf("listener orientation = %v, want identity", q)
	}

	if seq.AnimProperty(anim.Pitch) != nil || seq.AnimProperty(anim.Panning) != nil {
		t.Error("sequence exposes entry-only properties")
	}
	if seq.Length() != -1 {
		t.Errorf("Length() = %d, want -1", seq.Length())
	}
}

func TestSequenceAddRemove(t *testing.T) {
	t.Parallel()

	seq := New(testSpecs, 24, false)
	snd := testSound(t, 1)

	var entries []*Entry
	last := seq.EntryStatus()
	for i := range 5 {
		e := seq.Add(snd, float64(i), float64(i+1), 0)
		if i > 0 && e.ID() <= entries[i-1].ID() {
			t.Fatalf("id %d after %d is not increasing", e.ID(), entries[i-1].ID())
		}
		if st := seq.EntryStatus(); st <= last {
			t.Fatalf("EntryStatus() = %d after Add, want > %d", st, last)
		} else {
			last = st
		}
		entries = append(entries, e)
	}

	if !seq.Remove(entries[2]) {
		t.Fatal("Remove() = false for a member")
	}
	if st := seq.EntryStatus(); st <= last {
		t.Errorf("EntryStatus() = %d after Remove, want > %d", st, last)
	} else {
		last = st
	}

	if seq.Remove(entries[2]) {
		t.Error("second Remove() = true")
	}
	if st := seq.EntryStatus(); st != last {
		t.Errorf("EntryStatus() = %d after failed Remove, want %d", st, last)
	}

	got := seq.Entries()
	if len(got) != 4 {
		t.Fatalf("len(Entries()) = %d, want 4", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ID() >= got[i].ID() {
			t.Errorf("Entries() not in id order: %d before %d", got[i-1].ID(), got[i].ID())
		}
		if got[i] == entries[2] {
			t.Error("removed entry still enumerated")
		}
	}

	// a new entry never reuses an id
	if e := seq.Add(nil, 0, 1, 0); e.ID() <= entries[4].ID() {
		t.Errorf("new id %d reuses an old one", e.ID())
	}
}

func TestSequenceStatus(t *testing.T) {
	t.Parallel()

	seq := New(testSpecs, 24, false)

	tests := []struct {
		name   string
		change func()
		bump   bool
	}{
		{"same specs", func() { seq.SetSpecs(testSpecs) }, false},
		{"new specs", func() { seq.SetSpecs(audio.Specs{Rate: 2000, Channels: 2}) }, true},
		{"same speed of sound", func() { seq.SetSpeedOfSound(DefaultSpeedOfSound) }, false},
		{"speed of sound", func() { seq.SetSpeedOfSound(300) }, true},
		{"doppler", func() { seq.SetDopplerFactor(2) }, true},
		{"same doppler", func() { seq.SetDopplerFactor(2) }, false},
		{"distance model", func() { seq.SetDistanceModel(device.DistanceLinear) }, true},
		{"fps", func() { seq.SetFPS(30) }, false},
		{"mute", func() { seq.Mute(true) }, false},
	}

	// steps depend on each other, so no t.Parallel in subtests
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := seq.Status()
			tt.change()
			if bumped := seq.Status() != before; bumped != tt.bump {
				t.Errorf("status bumped = %v, want %v", bumped, tt.bump)
			}
		})
	}

	if seq.FPS() != 30 || !seq.IsMuted() {
		t.Errorf("FPS() = %v, IsMuted() = %v", seq.FPS(), seq.IsMuted())
	}
}

func TestEntryDefaults(t *testing.T) {
	t.Parallel()

	e := New(testSpecs, 24, false).Add(nil, 0, -1, 0)

	checks := []struct {
		name string
		got  float32
		want float32
	}{
		{"volume maximum", e.VolumeMaximum(), 1},
		{"volume minimum", e.VolumeMinimum(), 0},
		{"distance maximum", e.DistanceMaximum(), math.MaxFloat32},
		{"distance reference", e.DistanceReference(), 1},
		{"attenuation", e.Attenuation(), 1},
		{"cone outer", e.ConeAngleOuter(), 360},
		{"cone inner", e.ConeAngleInner(), 360},
		{"cone volume", e.ConeVolumeOuter(), 0},
		{"volume", e.AnimProperty(anim.Volume).ReadSingle(0), 1},
		{"pitch", e.AnimProperty(anim.Pitch).ReadSingle(0), 1},
		{"panning", e.AnimProperty(anim.Panning).ReadSingle(0), 0},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if !e.IsRelative() || e.IsMuted() {
		t.Errorf("relative = %v, muted = %v, want true, false", e.IsRelative(), e.IsMuted())
	}
	if e.AnimProperty(anim.Type(99)) != nil {
		t.Error("AnimProperty(unknown) != nil")
	}
	if n := e.AnimProperty(anim.Orientation).Count(); n != 4 {
		t.Errorf("orientation count = %d, want 4", n)
	}
	if e.Versions() != (Versions{}) {
		t.Errorf("fresh entry versions = %+v, want zero", e.Versions())
	}
}

func TestEntryVersions(t *testing.T) {
	t.Parallel()

	seq := New(testSpecs, 24, false)
	snd := testSound(t, 1)
	other := testSound(t, 2)
	e := seq.Add(snd, 0, 1, 0)

	tests := []struct {
		name   string
		change func()
		want   Versions
	}{
		{"same sound", func() { e.SetSound(snd) }, Versions{}},
		{"new sound", func() { e.SetSound(other) }, Versions{Sound: 1}},
		{"same window", func() { e.Move(0, 1, 0) }, Versions{}},
		{"new window", func() { e.Move(0, 2, 0) }, Versions{Position: 1}},
		{"skip only", func() { e.Move(0, 2, 0.5) }, Versions{Position: 1}},
		{"same mute", func() { e.Mute(false) }, Versions{}},
		{"mute", func() { e.Mute(true) }, Versions{Status: 1}},
		{"same relative", func() { e.SetRelative(true) }, Versions{}},
		{"relative", func() { e.SetRelative(false) }, Versions{Status: 1}},
		{"same attenuation", func() { e.SetAttenuation(1) }, Versions{}},
		{"attenuation", func() { e.SetAttenuation(2) }, Versions{Status: 1}},
		{"volume maximum", func() { e.SetVolumeMaximum(0.8) }, Versions{Status: 1}},
		{"volume minimum", func() { e.SetVolumeMinimum(0.1) }, Versions{Status: 1}},
		{"distance maximum", func() { e.SetDistanceMaximum(50) }, Versions{Status: 1}},
		{"distance reference", func() { e.SetDistanceReference(2) }, Versions{Status: 1}},
		{"cone outer", func() { e.SetConeAngleOuter(90) }, Versions{Status: 1}},
		{"cone inner", func() { e.SetConeAngleInner(45) }, Versions{Status: 1}},
		{"cone volume", func() { e.SetConeVolumeOuter(0.3) }, Versions{Status: 1}},
		{"same cone volume", func() { e.SetConeVolumeOuter(0.3) }, Versions{}},
		{"keyframe", func() { _ = e.AnimProperty(anim.Volume).WriteFrames([]float32{0}, 3, 1) }, Versions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := e.Versions()
			tt.change()
			after := e.Versions()

			delta := Versions{
				Status:   after.Status - before.Status,
				Position: after.Position - before.Position,
				Sound:    after.Sound - before.Sound,
			}
			if delta != tt.want {
				t.Errorf("version delta = %+v, want %+v", delta, tt.want)
			}
		})
	}

	if begin, end, skip := e.Window(); begin != 0 || end != 2 || skip != 0.5 {
		t.Errorf("Window() = %v, %v, %v", begin, end, skip)
	}
	if e.Sound() != other {
		t.Error("Sound() did not return the new sound")
	}
}

func TestEntryOpenEnd(t *testing.T) {
	t.Parallel()

	seq := New(testSpecs, 24, false)

	tests := []struct {
		name string
		snd  sound.Sound
		skip float64
		want float64
	}{
		{"sound length", testSound(t, 3), 0, 5},
		{"minus skip", testSound(t, 3), 1, 4},
		{"no sound", nil, 0, math.Inf(1)},
		{"unknown length", New(testSpecs, 24, false), 0, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := seq.Add(tt.snd, 2, -1, tt.skip)
			if got := e.state().end; got != tt.want {
				t.Errorf("effective end = %v, want %v", got, tt.want)
			}
		})
	}
}
