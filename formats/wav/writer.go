// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/utils"
)

// Writer stores interleaved float32 samples as a 16-bit PCM WAV stream.
type Writer struct {
	enc    *gowav.Encoder
	buf    *goaudio.IntBuffer
	frames int
	closed bool
}

func NewWriter(w io.WriteSeeker, specs audio.Specs) (*Writer, error) {
	if !specs.Valid() {
		return nil, ErrInvalidSpecs
	}

	return &Writer{
		enc: gowav.NewEncoder(w, specs.Rate, 16, specs.Channels, formatPCM),
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: specs.Channels,
				SampleRate:  specs.Rate,
			},
			SourceBitDepth: 16,
		},
	}, nil
}

// Write appends samples. A trailing partial frame is written as is; keep
// len(samples) a multiple of the channel count.
func (w *Writer) Write(samples []float32) error {
	if w.closed {
		return ErrWriterClosed
	}

	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]

	for i, v := range samples {
		w.buf.Data[i] = int(utils.Float32ToInt16(v))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("write wav pcm: %w", err)
	}
	w.frames += len(samples) / w.buf.Format.NumChannels

	return nil
}

// Frames reports how many frames have been written so far.
func (w *Writer) Frames() int { return w.frames }

// Close finalizes the RIFF header. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}

	return nil
}

// Encode writes a complete WAV file holding samples.
func Encode(w io.WriteSeeker, specs audio.Specs, samples []float32) error {
	wr, err := NewWriter(w, specs)
	if err != nil {
		return err
	}

	if err := wr.Write(samples); err != nil {
		return err
	}

	return wr.Close()
}
