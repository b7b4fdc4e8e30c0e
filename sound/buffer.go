// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audseq/audio"
)

// Buffer is decoded PCM kept in memory. It is read-only after construction
// and safe to share between goroutines; each Reader keeps its own cursor.
type Buffer struct {
	specs audio.Specs
	data  []float32
}

// NewBuffer wraps interleaved samples without copying them.
func NewBuffer(specs audio.Specs, data []float32) (*Buffer, error) {
	if !specs.Valid() {
		return nil, audio.ErrInvalidSpecs
	}

	if len(data)%specs.Channels != 0 {
		return nil, ErrSampleCount
	}

	return &Buffer{specs: specs, data: data}, nil
}

// Load drains src into a Buffer. src is not closed.
func Load(src audio.Source) (*Buffer, error) {
	specs := audio.SpecsOf(src)
	if !specs.Valid() {
		return nil, audio.ErrInvalidSpecs
	}

	var data []float32
	if l, ok := src.(audio.Lengther); ok && l.Length() > 0 {
		data = make([]float32, 0, l.Length()*specs.Channels)
	}

	chunk := src.BufSize()
	if chunk < specs.Channels {
		chunk = 4096
	}
	chunk -= chunk % specs.Channels
	buf := make([]float32, chunk)

	for {
		n, err := src.ReadSamples(buf)
		data = append(data, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load sound: %w", err)
		}
	}

	data = data[:len(data)-len(data)%specs.Channels]

	return &Buffer{specs: specs, data: data}, nil
}

// Generate renders frames frames of fn(frame, channel).
func Generate(specs audio.Specs, frames int, fn func(frame, channel int) float32) (*Buffer, error) {
	if !specs.Valid() {
		return nil, audio.ErrInvalidSpecs
	}

	frames = max(frames, 0)
	data := make([]float32, frames*specs.Channels)

	for f := range frames {
		for c := range specs.Channels {
			data[f*specs.Channels+c] = fn(f, c)
		}
	}

	return &Buffer{specs: specs, data: data}, nil
}

// Sine is a convenience tone generator: seconds of a sine at freq Hz with
// the given peak amplitude, identical on every channel.
func Sine(specs audio.Specs, seconds, freq float64, amplitude float32) (*Buffer, error) {
	frames := int(math.Round(seconds * float64(specs.Rate)))

	return Generate(specs, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(specs.Rate)
		return amplitude * float32(math.Sin(2*math.Pi*freq*t))
	})
}

func (b *Buffer) Specs() audio.Specs { return b.specs }
func (b *Buffer) Length() int        { return len(b.data) / b.specs.Channels }

// Samples exposes the interleaved data. Callers must not modify it.
func (b *Buffer) Samples() []float32 { return b.data }

func (b *Buffer) NewReader() (Reader, error) {
	return &bufferReader{buf: b}, nil
}

type bufferReader struct {
	buf *Buffer
	pos int // frames
}

func (r *bufferReader) SampleRate() int { return r.buf.specs.Rate }
func (r *bufferReader) Channels() int   { return r.buf.specs.Channels }
func (r *bufferReader) BufSize() int    { return 4096 }
func (r *bufferReader) Close() error    { return nil }
func (r *bufferReader) Position() int   { return r.pos }
func (r *bufferReader) Length() int     { return r.buf.Length() }

func (r *bufferReader) Seek(frame int) error {
	if frame < 0 || frame > r.buf.Length() {
		return fmt.Errorf("%w: frame %d of %d", ErrSeekOutOfRange, frame, r.buf.Length())
	}

	r.pos = frame
	return nil
}

func (r *bufferReader) ReadSamples(dst []float32) (int, error) {
	ch := r.buf.specs.Channels
	start := r.pos * ch
	if start >= len(r.buf.data) {
		return 0, io.EOF
	}

	want := len(dst) - len(dst)%ch
	n := copy(dst[:want], r.buf.data[start:])
	r.pos += n / ch

	return n, nil
}
