// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sync"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/device"
)

// Option configures a Reader.
type Option func(*readerConfig)

type readerConfig struct {
	factory device.Factory
	quality audio.Quality
	logger  *log.Logger
}

// WithDevice renders into devices made by factory instead of a
// device.Software.
func WithDevice(factory device.Factory) Option {
	return func(c *readerConfig) {
		c.factory = factory
	}
}

// WithQuality sets the resampling quality of the device.
func WithQuality(q audio.Quality) Option {
	return func(c *readerConfig) {
		c.quality = q
	}
}

// WithLogger receives start failures and device errors, which are otherwise
// discarded.
func WithLogger(l *log.Logger) Option {
	return func(c *readerConfig) {
		c.logger = l
	}
}

// Reader renders a Sequence. It pulls audio like any audio.Source but never
// ends; Read always produces the requested number of frames.
type Reader struct {
	mu sync.Mutex

	seq *Sequence
	dev device.Device
	log *log.Logger

	// position in frames
	position int

	synced      bool
	status      uint64
	entryStatus uint64

	handles []*handle
}

// NewReader creates a reader positioned at the start of seq.
func NewReader(seq *Sequence, opts ...Option) (*Reader, error) {
	cfg := readerConfig{
		factory: device.SoftwareFactory,
		quality: audio.QualityCubic,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	dev, err := cfg.factory(seq.Specs())
	if err != nil {
		return nil, fmt.Errorf("sequence reader: create device: %w", err)
	}
	dev.SetQuality(cfg.quality)

	return &Reader{
		seq: seq,
		dev: dev,
		log: cfg.logger,
	}, nil
}

func (r *Reader) IsSeekable() bool { return true }

// Length is -1: the timeline can always grow.
func (r *Reader) Length() int { return -1 }

// Position is the next frame Read will produce.
func (r *Reader) Position() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.position
}

// Specs is the output layout of the device.
func (r *Reader) Specs() audio.Specs { return r.dev.Specs() }

func (r *Reader) SampleRate() int { return r.dev.Specs().Rate }
func (r *Reader) Channels() int   { return r.dev.Specs().Channels }
func (r *Reader) BufSize() int    { return 4096 }

// Seek moves the play head to frame and re-seeks every live entry.
// Negative frames clamp to 0.
func (r *Reader) Seek(frame int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.position = max(frame, 0)
	t := float64(r.position) / float64(r.dev.Specs().Rate)

	for _, h := range r.handles {
		st := h.entry.state()
		// entries out of range simply have nothing to seek
		if err := h.seek(&st, t); err != nil && !errors.Is(err, ErrNotPlaying) {
			r.log.Printf("sequence reader: seek entry %d: %v", h.entry.id, err)
		}
	}

	return nil
}

// Read renders frames frames into dst and returns how many were written
// with an end-of-stream flag that is always false. Fewer frames are
// written only when dst is too short to hold them.
func (r *Reader) Read(dst []float32, frames int) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fps, muted := r.sync()

	specs := r.dev.Specs()
	frames = max(0, min(frames, len(dst)/specs.Channels))
	rate := float64(specs.Rate)

	done := 0
	for done < frames {
		t := float64(r.position) / rate
		frame := 0.0
		n := frames - done

		if fps > 0 {
			// multiply first so integer rates and fps land on exact frames
			frame = float64(r.position) * fps / rate
			n = max(1, min(framesToBoundary(r.position, frame, fps, rate), n))
		}

		for _, h := range r.handles {
			h.update(t, frame, fps)
		}
		r.pushListener(frame, fps, muted)

		r.dev.Mix(dst[done*specs.Channels:], n)

		done += n
		r.position += n
	}

	return frames, false
}

// framesToBoundary counts the frames from position up to the start of the
// next animation frame.
func framesToBoundary(position int, frame, fps, rate float64) int {
	cfra := math.Floor(frame)
	next := int(math.Ceil((cfra+1)*rate/fps)) - position
	if next < 1 {
		// frame rounded down onto the boundary we are already at
		next = int(math.Ceil((cfra+2)*rate/fps)) - position
	}

	return next
}

// ReadSamples adapts Read to audio.Source. It never returns io.EOF.
func (r *Reader) ReadSamples(dst []float32) (int, error) {
	ch := r.Channels()
	n, _ := r.Read(dst, len(dst)/ch)

	return n * ch, nil
}

// Close stops every playing entry. A later Read starts over from the
// current entry list.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.handles {
		h.stop()
	}
	r.handles = nil
	r.synced = false

	return nil
}

// sync applies sequence changes to the device and the handle list and
// returns the chunk parameters. The sequence lock is released on return so
// handle updates can consult it.
func (r *Reader) sync() (fps float64, muted bool) {
	s := r.seq
	s.mu.Lock()
	defer s.mu.Unlock()

	if !r.synced || s.status != r.status {
		if err := r.dev.ChangeSpecs(s.specs); err != nil {
			r.log.Printf("sequence reader: change specs: %v", err)
		}
		r.dev.SetSpeedOfSound(s.speedOfSound)
		r.dev.SetDistanceModel(s.distanceModel)
		r.dev.SetDopplerFactor(s.dopplerFactor)
		r.status = s.status
	}

	if !r.synced || s.entryStatus != r.entryStatus {
		r.reconcile(s.entries)
		r.entryStatus = s.entryStatus
	}

	r.synced = true

	return s.fps, s.muted
}

// reconcile merges the id-ordered entry list into the id-ordered handle
// list: new entries get a handle, vanished ones are stopped.
func (r *Reader) reconcile(entries []*Entry) {
	next := make([]*handle, 0, len(entries))
	i := 0

	for _, e := range entries {
		for i < len(r.handles) && r.handles[i].entry.id < e.id {
			r.handles[i].stop()
			i++
		}

		if i < len(r.handles) && r.handles[i].entry == e {
			next = append(next, r.handles[i])
			i++
			continue
		}

		next = append(next, newHandle(e, r.dev, r.log))
	}

	for _, h := range r.handles[i:] {
		h.stop()
	}

	r.handles = next
}

func (r *Reader) pushListener(frame, fps float64, muted bool) {
	s := r.seq

	volume := s.volume.ReadSingle(frame)
	if muted {
		volume = 0
	}
	r.dev.SetVolume(volume)

	var q device.Quaternion
	s.orientation.Read(frame, q[:])
	r.dev.SetListenerOrientation(q)

	loc, vel := locationAndVelocity(s.location, frame, fps)
	r.dev.SetListenerLocation(loc)
	r.dev.SetListenerVelocity(vel)
}

var _ audio.Source = (*Reader)(nil)
