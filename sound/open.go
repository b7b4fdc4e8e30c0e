// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/formats/aiff"
	"github.com/ik5/audseq/formats/mp3"
	"github.com/ik5/audseq/formats/vorbis"
	"github.com/ik5/audseq/formats/wav"
)

// DefaultRegistry knows every decoder in the formats tree, keyed by file
// extension.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

// Open decodes the file at path into memory, picking the decoder by
// extension from DefaultRegistry.
func Open(path string) (*Buffer, error) {
	return OpenWith(DefaultRegistry(), path)
}

func OpenWith(reg *audio.Registry, path string) (*Buffer, error) {
	ext := filepath.Ext(path)
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer src.Close()

	return Load(src)
}
