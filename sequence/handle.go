// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"fmt"
	"log"
	"math"

	"github.com/ik5/audseq/anim"
	"github.com/ik5/audseq/device"
)

const (
	// KeepTime is how long (seconds) a handle outside its window is kept
	// paused before it is released.
	KeepTime = 10.0

	// positionEpsilon absorbs float drift at begin and end; it is one
	// sample at 192 kHz.
	positionEpsilon = 1.0 / 192000
)

type playState int

const (
	// stateStopped has no device handle but may start one.
	stateStopped playState = iota
	// statePlaying owns a device handle, paused or running.
	statePlaying
	// stateInvalid gave up starting; only a new sound revives it.
	stateInvalid
)

func (s playState) String() string {
	switch s {
	case stateStopped:
		return "stopped"
	case statePlaying:
		return "playing"
	case stateInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("playState(%d)", int(s))
	}
}

// handle drives one entry on the device. It is only touched by the Reader
// that owns it, under the Reader's lock.
type handle struct {
	entry *Entry
	dev   device.Device
	log   *log.Logger

	state  playState
	play   device.Handle
	play3D device.Handle3D
	panner device.Panner
	paused bool

	seen Versions
	// forceProps pushes the static 3D parameters on the next update even
	// when the entry's status did not change
	forceProps bool
}

func newHandle(e *Entry, dev device.Device, logger *log.Logger) *handle {
	return &handle{entry: e, dev: dev, log: logger}
}

// updatePosition pauses, resumes, stops or starts the device handle for
// the play head at pos seconds. It reports whether a live handle remains.
func (h *handle) updatePosition(st *entryState, pos float64) bool {
	if h.state == statePlaying {
		switch {
		case pos-positionEpsilon >= st.end:
			if pos >= st.end+KeepTime {
				h.stop()
				return false
			}
			h.pause()
			return true
		case pos+positionEpsilon >= st.begin:
			h.resume()
			return true
		default:
			if pos < st.begin-KeepTime {
				h.stop()
				return false
			}
			h.pause()
			return true
		}
	}

	if pos+positionEpsilon >= st.begin && pos-positionEpsilon <= st.end {
		return h.start(st)
	}

	return false
}

// start opens a paused device handle for the entry's sound. Failures are
// logged and leave the handle invalid until the sound changes.
func (h *handle) start(st *entryState) bool {
	if h.state == stateInvalid {
		return false
	}

	h.stop()

	if st.sound != nil {
		p, err := h.dev.Play(st.sound, true)
		if err != nil {
			h.log.Printf("sequence: entry %d: start: %v", h.entry.id, err)
		} else {
			h.play = p
			h.play3D, _ = p.(device.Handle3D)
			h.panner, _ = p.(device.Panner)
			h.paused = true
			h.state = statePlaying
		}
		h.forceProps = true
	}

	if h.state != statePlaying {
		h.state = stateInvalid
		return false
	}

	return true
}

// stop releases the device handle. An invalid handle stays invalid.
func (h *handle) stop() {
	if h.play != nil {
		h.check("stop", h.play.Stop())
	}

	h.play = nil
	h.play3D = nil
	h.panner = nil
	h.paused = false

	if h.state == statePlaying {
		h.state = stateStopped
	}
}

func (h *handle) pause() {
	h.check("pause", h.play.Pause())
	h.paused = true
}

func (h *handle) resume() {
	h.check("resume", h.play.Resume())
	h.paused = false
}

// seek positions the handle for timeline time pos, starting it when
// needed. Sound time is found by integrating the pitch curve from the
// entry's origin, so time-varying playback speed lands on the right sample.
func (h *handle) seek(st *entryState, pos float64) error {
	if h.state == stateInvalid {
		return ErrNotPlaying
	}

	if !h.updatePosition(st, pos) {
		return ErrNotPlaying
	}

	seq := h.entry.owner.Value()
	if seq == nil {
		return ErrNoOwner
	}

	fps := seq.FPS()
	if fps <= 0 {
		return ErrInvalidFPS
	}

	seekFrame := max(0, (pos-st.begin)*fps) + st.skip*fps
	target := integratePitch(h.entry.pitch, int((st.begin-st.skip)*fps), seekFrame)

	h.check("reset pitch", h.play.SetPitch(1))
	h.check("seek", h.play.Seek(target/fps))

	return nil
}

// integratePitch sums pitch over unit frame steps starting at origin until
// frames are consumed; the last step is weighted by its fraction.
func integratePitch(pitch *anim.Property, origin int, frames float64) float64 {
	if !pitch.IsAnimated() {
		return frames * float64(pitch.ReadSingle(0))
	}

	target := 0.0
	for i := 0; frames > 0; i++ {
		target += float64(pitch.ReadSingle(float64(origin+i))) * math.Min(frames, 1)
		frames--
	}

	return target
}

// update brings the device handle in line with the entry for the chunk at
// pos seconds, which is animation frame frame.
func (h *handle) update(pos, frame, fps float64) {
	st := h.entry.state()

	switch {
	case st.versions.Sound != h.seen.Sound:
		// a new sound gets a new chance
		h.seen.Sound = st.versions.Sound
		h.stop()
		h.state = stateStopped
		if h.seek(&st, pos) != nil {
			return
		}
	case h.state == stateInvalid:
		return
	case h.state == statePlaying:
		if !h.updatePosition(&st, pos) {
			return
		}
	default:
		if h.seek(&st, pos) != nil {
			return
		}
	}

	if st.versions.Position != h.seen.Position {
		h.seen.Position = st.versions.Position
		if h.seek(&st, pos) != nil {
			return
		}
	}

	if st.versions.Status != h.seen.Status || h.forceProps {
		h.seen.Status = st.versions.Status
		h.forceProps = false
		h.pushSpatial(&st.spatial)
	}

	h.pushAnimated(frame, fps)

	if st.muted {
		h.check("mute", h.play.SetVolume(0))
	}
}

func (h *handle) pushSpatial(sp *spatialParams) {
	if h.play3D == nil {
		return
	}

	h.check("relative", h.play3D.SetRelative(sp.relative))
	h.check("volume maximum", h.play3D.SetVolumeMaximum(sp.volumeMaximum))
	h.check("volume minimum", h.play3D.SetVolumeMinimum(sp.volumeMinimum))
	h.check("distance maximum", h.play3D.SetDistanceMaximum(sp.distanceMaximum))
	h.check("distance reference", h.play3D.SetDistanceReference(sp.distanceReference))
	h.check("attenuation", h.play3D.SetAttenuation(sp.attenuation))
	h.check("cone outer", h.play3D.SetConeAngleOuter(sp.coneAngleOuter))
	h.check("cone inner", h.play3D.SetConeAngleInner(sp.coneAngleInner))
	h.check("cone volume", h.play3D.SetConeVolumeOuter(sp.coneVolumeOuter))
}

func (h *handle) pushAnimated(frame, fps float64) {
	e := h.entry

	h.check("volume", h.play.SetVolume(e.volume.ReadSingle(frame)))
	h.check("pitch", h.play.SetPitch(e.pitch.ReadSingle(frame)))
	if h.panner != nil {
		h.check("panning", h.panner.SetPanning(e.panning.ReadSingle(frame)))
	}

	if h.play3D == nil {
		return
	}

	var q device.Quaternion
	e.orientation.Read(frame, q[:])
	h.check("orientation", h.play3D.SetOrientation(q))

	loc, vel := locationAndVelocity(e.location, frame, fps)
	h.check("location", h.play3D.SetLocation(loc))
	h.check("velocity", h.play3D.SetVelocity(vel))
}

// locationAndVelocity samples p at frame and estimates velocity in units per
// second from the step to the next frame.
func locationAndVelocity(p *anim.Property, frame, fps float64) (loc, vel device.Vector3) {
	var next device.Vector3
	p.Read(frame, loc[:])
	p.Read(frame+1, next[:])

	for i := range vel {
		vel[i] = (next[i] - loc[i]) * float32(fps)
	}

	return loc, vel
}

func (h *handle) check(op string, err error) {
	if err != nil {
		h.log.Printf("sequence: entry %d: %s: %v", h.entry.id, op, err)
	}
}
