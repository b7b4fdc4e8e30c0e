// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"strings"
	"sync"
)

// Specs describes the layout of an interleaved PCM stream.
type Specs struct {
	// Rate in Hz.
	Rate int `yaml:"rate" env:"RATE"`
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int `yaml:"channels" env:"CHANNELS"`
}

// Valid reports whether both rate and channel count are positive.
func (s Specs) Valid() bool { return s.Rate > 0 && s.Channels > 0 }

// Seconds converts a frame count at s.Rate into seconds.
func (s Specs) Seconds(frames int) float64 {
	if s.Rate <= 0 {
		return 0
	}

	return float64(frames) / float64(s.Rate)
}

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Lengther is implemented by sources that know their total length up front.
// Length returns the number of frames, or -1 when the decoder cannot tell.
type Lengther interface {
	Length() int
}

// SpecsOf returns the stream layout of src.
func SpecsOf(src Source) Specs {
	return Specs{Rate: src.SampleRate(), Channels: src.Channels()}
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register stores d under format. Keys are case insensitive and a leading
// dot is ignored, so file extensions can be used directly.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[formatKey(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[formatKey(format)]
	return d, ok
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func formatKey(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
