// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer converts the channel layout of src to a fixed output channel
// count. Multi-channel input mixed to mono is averaged, mono input is copied
// to every output channel, and stereo output honours a panning value.
type ChannelMixer struct {
	src      Source
	channels int
	panning  float32
	tmp      []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src:      src,
		channels: channels,
		tmp:      make([]float32, 4096),
	}
}

// NewMonoMixer down-mixes src to a single channel.
func NewMonoMixer(src Source) *ChannelMixer {
	return NewChannelMixer(src, 1)
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// SetPanning sets the stereo balance in [-1, 1]: -1 is left only, 1 is right
// only. It has no effect unless the output has exactly two channels.
func (m *ChannelMixer) SetPanning(p float32) {
	m.panning = max(-1, min(1, p))
}

func (m *ChannelMixer) Panning() float32 { return m.panning }

// PanGains returns the left and right gains for panning p.
func PanGains(p float32) (left, right float32) {
	p = max(-1, min(1, p))
	return min(1, 1-p), min(1, 1+p)
}

// ReadSamples fills dst with frames in the output layout and returns the
// number of values written.
func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.channels && (m.channels != 2 || m.panning == 0) {
		return m.src.ReadSamples(dst)
	}

	maxFrames := len(dst) / m.channels
	samplesNeeded := maxFrames * in

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / in

	switch {
	case m.channels == 1:
		m.downMix(dst, frames, in)
	case in == 1:
		for f := range frames {
			v := m.tmp[f]
			out := dst[f*m.channels : (f+1)*m.channels]
			for c := range out {
				out[c] = v
			}
		}
	default:
		for f := range frames {
			src := m.tmp[f*in : (f+1)*in]
			out := dst[f*m.channels : (f+1)*m.channels]
			copied := copy(out, src)
			clear(out[copied:])
		}
	}

	if m.channels == 2 && m.panning != 0 {
		left, right := PanGains(m.panning)
		for f := range frames {
			dst[f*2] *= left
			dst[f*2+1] *= right
		}
	}

	return frames * m.channels, err
}

func (m *ChannelMixer) downMix(dst []float32, frames, channels int) {
	invChannels := float32(1.0) / float32(channels)

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	case 4:
		for f := range frames {
			idx := f << 2
			sum := m.tmp[idx] + m.tmp[idx+1] + m.tmp[idx+2] + m.tmp[idx+3]
			dst[f] = sum * 0.25
		}
	default:
		for f := range frames {
			sum := float32(0)
			baseIdx := f * channels
			for c := range channels {
				sum += m.tmp[baseIdx+c]
			}
			dst[f] = sum * invChannels
		}
	}
}
