// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds deterministic PCM sources for tests. It implements
// the audio.Source contract structurally so that any package can use it
// without an import cycle.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrSeekOutOfRange is returned by Seek for negative frames.
var ErrSeekOutOfRange = errors.New("audiotest: seek out of range")

// MockSource generates totalSamples frames from a waveform function.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // frames to generate (per channel)
	generated    int // frames generated so far (per channel)
	waveform     func(sample int, channel int) float32

	Closed bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return value
	})
}

// NewRampSource produces sample index i as the value of frame i on every
// channel, which makes positions visible in the output.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return float32(sample)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Length() int     { return m.totalSamples }
func (m *MockSource) Position() int   { return m.generated }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the source to the first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

// Seek moves to frame, clamping past-the-end positions to the end.
func (m *MockSource) Seek(frame int) error {
	if frame < 0 {
		return ErrSeekOutOfRange
	}

	m.generated = min(frame, m.totalSamples)

	return nil
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}
