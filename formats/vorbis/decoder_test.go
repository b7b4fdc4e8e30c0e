// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type fakeOgg struct {
	channels int
	data     []float32
	length   int64
	err      error
}

func (f *fakeOgg) SampleRate() int { return 48000 }
func (f *fakeOgg) Channels() int   { return f.channels }
func (f *fakeOgg) Length() int64   { return f.length }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestSourceReadSamples(t *testing.T) {
	t.Parallel()

	dec := &fakeOgg{channels: 2, data: []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}}
	s := &source{dec: dec, sampleRate: 48000, channels: 2}

	dst := make([]float32, 5)
	n, err := s.ReadSamples(dst)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples() = (%d, %v), want (4, nil)", n, err)
	}
	if dst[3] != 0.4 {
		t.Errorf("dst[3] = %v, want 0.4", dst[3])
	}

	n, err = s.ReadSamples(dst)
	if err != nil || n != 2 {
		t.Fatalf("ReadSamples() = (%d, %v), want (2, nil)", n, err)
	}

	if n, err := s.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() at end = (%d, %v), want (0, EOF)", n, err)
	}

	if n, err := s.ReadSamples(dst[:1]); n != 0 || err != nil {
		t.Errorf("ReadSamples(short dst) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSourceLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		length int64
		want   int
	}{
		{0, -1},
		{1234, 1234},
	}

	for _, tt := range tests {
		s := &source{dec: &fakeOgg{channels: 1, length: tt.length}, channels: 1}
		if got := s.Length(); got != tt.want {
			t.Errorf("Length() with %d = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestSourceReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt page")
	s := &source{dec: &fakeOgg{channels: 1, err: boom}, channels: 1}
	if _, err := s.ReadSamples(make([]float32, 2)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want wrapped %v", err, boom)
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("OggS but not really"))); err == nil {
		t.Error("Decode() succeeded on garbage input")
	}
}
