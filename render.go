// SPDX-License-Identifier: EPL-2.0

package audseq

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/formats/wav"
	"github.com/ik5/audseq/utils"
)

const renderChunk = 4096

// Convert wraps src so that it produces specs: it is resampled to
// specs.Rate with cubic interpolation and mixed to specs.Channels.
func Convert(src audio.Source, specs audio.Specs) (audio.Source, error) {
	if !specs.Valid() {
		return nil, audio.ErrInvalidSpecs
	}

	var out audio.Source = src
	if src.SampleRate() != specs.Rate {
		out = audio.NewResampler(out, specs.Rate)
	}
	if src.Channels() != specs.Channels {
		out = audio.NewChannelMixer(out, specs.Channels)
	}

	return out, nil
}

// Render reads up to frames frames from src. It stops early only when src
// ends; a negative frames reads until then.
func Render(src audio.Source, frames int) ([]float32, error) {
	var out []float32
	if frames >= 0 {
		out = make([]float32, 0, frames*src.Channels())
	}

	err := pull(src, frames, func(chunk []float32) error {
		out = append(out, chunk...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// RenderPCM16 is Render with the samples converted to 16-bit PCM.
func RenderPCM16(src audio.Source, frames int) ([]int16, error) {
	var out []int16
	if frames >= 0 {
		out = make([]int16, 0, frames*src.Channels())
	}

	err := pull(src, frames, func(chunk []float32) error {
		for _, v := range chunk {
			out = append(out, utils.Float32ToInt16(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// WriteWAV streams frames frames of src into a 16-bit WAV file.
func WriteWAV(w io.WriteSeeker, src audio.Source, frames int) error {
	ww, err := wav.NewWriter(w, audio.SpecsOf(src))
	if err != nil {
		return fmt.Errorf("write wav: %w", err)
	}

	if err := pull(src, frames, ww.Write); err != nil {
		return err
	}

	return ww.Close()
}

// pull reads src chunk by chunk and hands every chunk to sink.
func pull(src audio.Source, frames int, sink func([]float32) error) error {
	ch := src.Channels()
	if ch <= 0 {
		return audio.ErrInvalidSpecs
	}

	buf := make([]float32, renderChunk*ch)
	remaining := frames

	for frames < 0 || remaining > 0 {
		want := len(buf)
		if frames >= 0 {
			want = min(want, remaining*ch)
		}

		n, err := src.ReadSamples(buf[:want])
		n -= n % ch
		if n > 0 {
			if serr := sink(buf[:n]); serr != nil {
				return serr
			}
			remaining -= n / ch
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	return nil
}
