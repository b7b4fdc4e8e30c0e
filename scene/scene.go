// SPDX-License-Identifier: EPL-2.0

package scene

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audseq/anim"
	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/device"
	"github.com/ik5/audseq/sequence"
	"github.com/ik5/audseq/sound"
)

// Scene is the decoded YAML document.
type Scene struct {
	Specs    audio.Specs `yaml:"specs"`
	FPS      float64     `yaml:"fps"`
	Muted    bool        `yaml:"muted,omitempty"`
	Duration float64     `yaml:"duration,omitempty"`
	Listener Listener    `yaml:"listener,omitempty"`
	Entries  []Entry     `yaml:"entries"`

	// dir resolves relative sound files.
	dir string
}

type Listener struct {
	SpeedOfSound  *float32 `yaml:"speed_of_sound,omitempty"`
	DopplerFactor *float32 `yaml:"doppler_factor,omitempty"`
	DistanceModel string   `yaml:"distance_model,omitempty"`
	Keys          Keys     `yaml:"keys,omitempty"`
}

type Entry struct {
	Sound Sound   `yaml:"sound"`
	Begin float64 `yaml:"begin"`
	End   float64 `yaml:"end"`
	Skip  float64 `yaml:"skip,omitempty"`
	Muted bool    `yaml:"muted,omitempty"`

	Relative          *bool    `yaml:"relative,omitempty"`
	VolumeMaximum     *float32 `yaml:"volume_maximum,omitempty"`
	VolumeMinimum     *float32 `yaml:"volume_minimum,omitempty"`
	DistanceMaximum   *float32 `yaml:"distance_maximum,omitempty"`
	DistanceReference *float32 `yaml:"distance_reference,omitempty"`
	Attenuation       *float32 `yaml:"attenuation,omitempty"`
	ConeAngleOuter    *float32 `yaml:"cone_angle_outer,omitempty"`
	ConeAngleInner    *float32 `yaml:"cone_angle_inner,omitempty"`
	ConeVolumeOuter   *float32 `yaml:"cone_volume_outer,omitempty"`

	Keys Keys `yaml:"keys,omitempty"`
}

// Sound names a file or describes a generated tone. Exactly one is set.
type Sound struct {
	File string `yaml:"file,omitempty"`
	Tone *Tone  `yaml:"tone,omitempty"`
}

// Tone is a mono sine. Rate defaults to the scene rate and Amplitude to 1.
type Tone struct {
	Frequency float64  `yaml:"frequency"`
	Seconds   float64  `yaml:"seconds"`
	Amplitude *float32 `yaml:"amplitude,omitempty"`
	Rate      int      `yaml:"rate,omitempty"`
}

// Keys maps a property name (see anim.ParseType) to its keyframes.
type Keys map[string][]Keyframe

type Keyframe struct {
	Frame int    `yaml:"frame"`
	Value Values `yaml:"value,flow"`
}

// Values accepts either a scalar or a sequence of numbers.
type Values []float32

func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var f float32
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = Values{f}
		return nil
	}

	var list []float32
	if err := node.Decode(&list); err != nil {
		return err
	}
	*v = list

	return nil
}

// Load reads and decodes the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	return Parse(data, filepath.Dir(path))
}

// Parse decodes a YAML scene. Relative file paths resolve against dir.
func Parse(data []byte, dir string) (*Scene, error) {
	var sc Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	sc.dir = dir

	if !sc.Specs.Valid() {
		return nil, fmt.Errorf("parse scene: %w", audio.ErrInvalidSpecs)
	}
	if sc.FPS <= 0 || math.IsNaN(sc.FPS) {
		return nil, ErrInvalidFPS
	}

	return &sc, nil
}

// Length is how long the scene plays: Duration when set, otherwise the
// latest finite entry end. Open-ended entries count with their tone length;
// files count as zero until built.
func (sc *Scene) Length() float64 {
	if sc.Duration > 0 {
		return sc.Duration
	}

	var end float64
	for _, e := range sc.Entries {
		switch {
		case e.End >= 0:
			end = max(end, e.End)
		case e.Sound.Tone != nil:
			end = max(end, e.Begin+e.Sound.Tone.Seconds-e.Skip)
		}
	}

	return end
}

// Build creates the sequence, loading every sound file. Files referenced by
// more than one entry are decoded once.
func (sc *Scene) Build() (*sequence.Sequence, error) {
	seq := sequence.New(sc.Specs, sc.FPS, sc.Muted)

	if err := sc.Listener.apply(seq); err != nil {
		return nil, err
	}

	cache := make(map[string]sound.Sound)
	for i, e := range sc.Entries {
		snd, err := sc.sound(e.Sound, cache)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		entry := seq.Add(snd, e.Begin, e.End, e.Skip)
		if err := e.apply(entry); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	return seq, nil
}

func (sc *Scene) sound(s Sound, cache map[string]sound.Sound) (sound.Sound, error) {
	switch {
	case s.File != "" && s.Tone == nil:
		path := s.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(sc.dir, path)
		}
		if snd, ok := cache[path]; ok {
			return snd, nil
		}

		snd, err := sound.Open(path)
		if err != nil {
			return nil, err
		}
		cache[path] = snd

		return snd, nil

	case s.Tone != nil && s.File == "":
		t := s.Tone
		rate := t.Rate
		if rate <= 0 {
			rate = sc.Specs.Rate
		}
		amp := float32(1)
		if t.Amplitude != nil {
			amp = *t.Amplitude
		}

		return sound.Sine(audio.Specs{Rate: rate, Channels: 1}, t.Seconds, t.Frequency, amp)

	default:
		return nil, ErrNoSound
	}
}

func (l Listener) apply(seq *sequence.Sequence) error {
	if l.SpeedOfSound != nil {
		seq.SetSpeedOfSound(*l.SpeedOfSound)
	}
	if l.DopplerFactor != nil {
		seq.SetDopplerFactor(*l.DopplerFactor)
	}
	if l.DistanceModel != "" {
		m, err := device.ParseDistanceModel(l.DistanceModel)
		if err != nil {
			return fmt.Errorf("listener: %w", err)
		}
		seq.SetDistanceModel(m)
	}

	if err := l.Keys.apply(seq.AnimProperty); err != nil {
		return fmt.Errorf("listener: %w", err)
	}

	return nil
}

func (e Entry) apply(entry *sequence.Entry) error {
	entry.Mute(e.Muted)
	if e.Relative != nil {
		entry.SetRelative(*e.Relative)
	}

	setters := []struct {
		v   *float32
		set func(float32)
	}{
		{e.VolumeMaximum, entry.SetVolumeMaximum},
		{e.VolumeMinimum, entry.SetVolumeMinimum},
		{e.DistanceMaximum, entry.SetDistanceMaximum},
		{e.DistanceReference, entry.SetDistanceReference},
		{e.Attenuation, entry.SetAttenuation},
		{e.ConeAngleOuter, entry.SetConeAngleOuter},
		{e.ConeAngleInner, entry.SetConeAngleInner},
		{e.ConeVolumeOuter, entry.SetConeVolumeOuter},
	}
	for _, s := range setters {
		if s.v != nil {
			s.set(*s.v)
		}
	}

	return e.Keys.apply(entry.AnimProperty)
}

// apply writes the keyframes in a stable property order so errors are
// reproducible.
func (k Keys) apply(lookup func(anim.Type) *anim.Property) error {
	names := make([]string, 0, len(k))
	for name := range k {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		t, err := anim.ParseType(name)
		if err != nil {
			return err
		}
		p := lookup(t)
		if p == nil {
			return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
		}

		for _, kf := range k[name] {
			if kf.Frame < 0 {
				return fmt.Errorf("%s: %w", name, ErrNegativeKeyframe)
			}
			if err := p.WriteFrames(kf.Value, kf.Frame, 1); err != nil {
				return fmt.Errorf("%s frame %d: %w", name, kf.Frame, err)
			}
		}
	}

	return nil
}
