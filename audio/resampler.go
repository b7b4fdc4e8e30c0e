// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audseq/utils"
)

// Quality selects the interpolation used by the Resampler.
type Quality int

const (
	QualityLinear Quality = iota
	QualityCubic
)

func (q Quality) String() string {
	switch q {
	case QualityLinear:
		return "linear"
	case QualityCubic:
		return "cubic"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

func (q Quality) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// UnmarshalText accepts the names printed by String.
func (q *Quality) UnmarshalText(text []byte) error {
	for c := QualityLinear; c <= QualityCubic; c++ {
		if c.String() == string(text) {
			*q = c
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownQuality, text)
}

// Resampler streams from src to a target sample rate. The conversion ratio
// can change between reads (SetPitch, SetTargetRate), which is how playback
// speed is applied. Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when reading faster than the
// source rate.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	pitch    float64
	ratio    float64 // source frames consumed per output frame
	channels int
	quality  Quality

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	// output is interpolated between frames[1] and frames[2]
	frames [4][]float32
	real   [4]bool
	primed bool

	// fractional position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	eof    bool

	filterState []float32
	filterAlpha float32
	filterWarm  bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:         src,
		srcRate:     float64(src.SampleRate()),
		dstRate:     float64(dstRate),
		pitch:       1,
		channels:    channels,
		quality:     QualityCubic,
		srcBuf:      make([]float32, channels),
		filterState: make([]float32, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}
	r.updateRatio()

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// SetPitch scales the playback speed; 2 plays twice as fast.
func (r *Resampler) SetPitch(pitch float64) error {
	if pitch <= 0 {
		return ErrInvalidRatio
	}

	r.pitch = pitch
	r.updateRatio()

	return nil
}

// SetTargetRate changes the output sample rate.
func (r *Resampler) SetTargetRate(rate int) error {
	if rate <= 0 {
		return ErrInvalidRatio
	}

	r.dstRate = float64(rate)
	r.updateRatio()

	return nil
}

func (r *Resampler) SetQuality(q Quality) { r.quality = q }

// Reset drops the interpolation history. Call it after seeking the source.
func (r *Resampler) Reset() {
	r.primed = false
	r.eof = false
	r.pos = 0
	clear(r.real[:])
	r.filterWarm = false
}

func (r *Resampler) updateRatio() {
	r.ratio = r.srcRate / r.dstRate * r.pitch

	r.filterAlpha = 1
	if r.ratio > 1 {
		// one-pole low-pass, cutoff drops with the ratio
		r.filterAlpha = float32(1 / r.ratio)
	}
}

// readFrame pulls one frame from src into dst. It returns false once the
// source is exhausted.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.srcBuf)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("%w", err)
	}
	if err == io.EOF {
		r.eof = true
	}
	if n < r.channels {
		r.eof = true
		return false, nil
	}

	if !r.filterWarm {
		// start from the first sample to avoid a warm-up transient
		copy(r.filterState, r.srcBuf)
		r.filterWarm = true
	}

	if r.filterAlpha < 1 {
		// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
		for c := range r.channels {
			r.filterState[c] = r.filterAlpha*r.srcBuf[c] + (1-r.filterAlpha)*r.filterState[c]
			dst[c] = r.filterState[c]
		}
	} else {
		copy(dst, r.srcBuf)
	}

	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.readFrame(r.frames[1])
	if err != nil {
		return err
	}
	r.real[1] = ok
	if !ok {
		return io.EOF
	}

	// the first frame doubles as its own predecessor
	copy(r.frames[0], r.frames[1])
	r.real[0] = false

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}
		r.real[i] = ok
		if !ok {
			copy(r.frames[i], r.frames[i-1])
		}
	}

	r.primed = true

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.real[0] = r.real[1]
	r.real[1] = r.real[2]
	r.real[2] = r.real[3]

	ok, err := r.readFrame(r.frames[3])
	if err != nil {
		return err
	}
	r.real[3] = ok
	if !ok {
		// hold the last value past the end
		copy(r.frames[3], r.frames[2])
	}

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.real[1] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]

		if r.quality == QualityCubic {
			for c := range r.channels {
				out[c] = utils.CubicInterpolate(r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
			}
		} else {
			for c := range r.channels {
				out[c] = utils.LinearInterpolate(r.frames[1][c], r.frames[2][c], alpha)
			}
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
