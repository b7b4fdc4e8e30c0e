// SPDX-License-Identifier: EPL-2.0

package audseq

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/utils"
)

// PCM16Reader turns a Source into a little-endian 16-bit byte stream, the
// format most playback libraries consume.
type PCM16Reader struct {
	src       audio.Source
	remaining int
	limited   bool

	buf     []float32
	pending []byte
	err     error
}

// NewPCM16Reader streams frames frames of src; a negative frames streams
// until src ends.
func NewPCM16Reader(src audio.Source, frames int) *PCM16Reader {
	return &PCM16Reader{
		src:       src,
		remaining: frames,
		limited:   frames >= 0,
		buf:       make([]float32, renderChunk*src.Channels()),
	}
}

func (r *PCM16Reader) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.fill()
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]

	return n, nil
}

func (r *PCM16Reader) fill() {
	if r.limited && r.remaining <= 0 {
		r.err = io.EOF
		return
	}

	ch := r.src.Channels()
	want := len(r.buf)
	if r.limited {
		want = min(want, r.remaining*ch)
	}

	n, err := r.src.ReadSamples(r.buf[:want])
	n -= n % ch
	r.remaining -= n / ch
	r.pending = utils.AppendPCM16LE(r.pending[:0], r.buf[:n])

	switch {
	case errors.Is(err, io.EOF):
		r.err = io.EOF
	case err != nil:
		r.err = fmt.Errorf("pcm16 stream: %w", err)
	}
}
