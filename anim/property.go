// SPDX-License-Identifier: EPL-2.0

package anim

import (
	"math"
	"sync"

	"github.com/ik5/audseq/utils"
)

// span is an inclusive range of frames that were never written.
type span struct {
	start, end int
}

// Property is a keyframed vector of Count() components.
type Property struct {
	mu sync.Mutex

	count    int
	animated bool

	// frame i occupies buf[i*count : (i+1)*count]
	buf []float32

	// ordered, disjoint
	unknown []span
}

// New returns a constant property of count zero components.
func New(count int) *Property {
	return NewWithValue(count, 0)
}

// NewWithValue returns a constant property with every component set to
// value. It panics with ErrInvalidCount when count < 1.
func NewWithValue(count int, value float32) *Property {
	if count < 1 {
		panic(ErrInvalidCount)
	}

	p := &Property{
		count: count,
		buf:   make([]float32, count),
	}
	for i := range p.buf {
		p.buf[i] = value
	}

	return p
}

// Count returns the number of components per frame.
func (p *Property) Count() int { return p.count }

func (p *Property) IsAnimated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.animated
}

// Frames returns how many frames are stored: 1 for a constant property.
func (p *Property) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.buf) / p.count
}

// Write replaces the property with the constant data and drops any
// animation.
func (p *Property) Write(data []float32) error {
	if len(data) < p.count {
		return ErrShortData
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf = p.buf[:p.count]
	copy(p.buf, data)
	p.animated = false
	p.unknown = nil

	return nil
}

// WriteFrames stores n consecutive frames from data starting at frame
// position. Negative positions are clamped to 0.
func (p *Property) WriteFrames(data []float32, position, n int) error {
	if n <= 0 {
		return nil
	}
	if len(data) < n*p.count {
		return ErrShortData
	}
	position = max(position, 0)

	p.mu.Lock()
	defer p.mu.Unlock()

	known := p.beginAnimation(position + n)
	copy(p.buf[position*p.count:], data[:n*p.count])
	p.reconcile(known, position, n)

	return nil
}

// WriteConstantRange fills the frames in [start, end) with data.
func (p *Property) WriteConstantRange(data []float32, start, end int) error {
	if len(data) < p.count {
		return ErrShortData
	}
	start = max(start, 0)
	if end <= start {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	known := p.beginAnimation(end)
	for i := start; i < end; i++ {
		copy(p.buf[i*p.count:(i+1)*p.count], data)
	}
	p.reconcile(known, start, end-start)

	return nil
}

// beginAnimation marks the property animated, grows the buffer to hold
// frames and returns how many frames were known before the write.
func (p *Property) beginAnimation(frames int) int {
	known := len(p.buf) / p.count
	if !p.animated {
		known = 0
	}
	p.animated = true

	if need := frames * p.count; len(p.buf) < need {
		p.buf = append(p.buf, make([]float32, need-len(p.buf))...)
	}

	return known
}

// reconcile updates the unknown ranges after frames [position, position+n)
// were written, known being the frame count before the write.
func (p *Property) reconcile(known, position, n int) {
	if known < position {
		gap := span{start: known, end: position - 1}
		if last := len(p.unknown) - 1; last >= 0 && p.unknown[last].end+1 >= gap.start {
			p.unknown[last].end = gap.end
		} else {
			p.unknown = append(p.unknown, gap)
		}
		p.hold(gap)

		return
	}

	end := position + n
	out := make([]span, 0, len(p.unknown)+1)

	for _, u := range p.unknown {
		switch {
		case u.end < position || u.start >= end:
			out = append(out, u)
		case position <= u.start && end > u.end:
			// fully overwritten
		case position <= u.start:
			u.start = end
			out = append(out, u)
			p.hold(u)
		case end > u.end:
			u.end = position - 1
			out = append(out, u)
		default:
			tail := span{start: end, end: u.end}
			out = append(out, span{start: u.start, end: position - 1}, tail)
			p.hold(tail)
		}
	}

	p.unknown = out
}

// hold fills u with the frame preceding it. Frame 0 has no predecessor and
// keeps whatever it holds.
func (p *Property) hold(u span) {
	src := max(u.start-1, 0) * p.count
	for i := max(u.start, 1); i <= u.end; i++ {
		copy(p.buf[i*p.count:(i+1)*p.count], p.buf[src:src+p.count])
	}
}

// Read samples the property at a fractional frame position into out.
func (p *Property) Read(position float64, out []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.read(position, out)
}

// ReadSingle samples the first component at position.
func (p *Property) ReadSingle(position float64) float32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	var v [1]float32
	p.read(position, v[:])

	return v[0]
}

func (p *Property) read(position float64, out []float32) {
	n := min(len(out), p.count)

	if !p.animated {
		copy(out[:n], p.buf)
		return
	}

	last := len(p.buf)/p.count - 1

	// also catches NaN
	if !(position > 0) {
		position = 0
	}
	if position >= float64(last) {
		copy(out[:n], p.buf[last*p.count:])
		return
	}

	i := int(math.Floor(position))
	t := float32(position - float64(i))
	if t == 0 {
		copy(out[:n], p.buf[i*p.count:])
		return
	}

	f0 := max(i-1, 0) * p.count
	f1 := i * p.count
	f2 := (i + 1) * p.count
	f3 := min(i+2, last) * p.count

	for c := range n {
		out[c] = utils.CubicInterpolate(p.buf[f0+c], p.buf[f1+c], p.buf[f2+c], p.buf[f3+c], t)
	}
}
