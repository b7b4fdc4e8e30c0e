// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/formats/wav"
)

// Example_decoding writes a short WAV file and decodes it back.
func Example_decoding() {
	f, err := os.CreateTemp("", "example-*.wav")
	if err != nil {
		fmt.Printf("Create error: %v\n", err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	samples := []float32{0.5, -0.5, 0.25, 0, 0, 0}
	if err := wav.Encode(f, audio.Specs{Rate: 16000, Channels: 2}, samples); err != nil {
		fmt.Printf("Encode error: %v\n", err)
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		fmt.Printf("Seek error: %v\n", err)
		return
	}

	source, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", source.SampleRate())
	fmt.Printf("Channels: %d\n", source.Channels())

	buf := make([]float32, 16)
	n, err := source.ReadSamples(buf)
	if err != nil && err != io.EOF {
		fmt.Printf("Read error: %v\n", err)
		return
	}

	fmt.Printf("Read %d samples\n", n)
	fmt.Printf("First frame: %.3f %.3f\n", buf[0], buf[1])
	// Output:
	// Sample rate: 16000 Hz
	// Channels: 2
	// Read 6 samples
	// First frame: 0.500 -0.500
}

// Example_writer streams samples in several writes.
func Example_writer() {
	f, err := os.CreateTemp("", "example-*.wav")
	if err != nil {
		fmt.Printf("Create error: %v\n", err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	w, err := wav.NewWriter(f, audio.Specs{Rate: 8000, Channels: 1})
	if err != nil {
		fmt.Printf("Writer error: %v\n", err)
		return
	}

	chunk := make([]float32, 800)
	for range 10 {
		if err := w.Write(chunk); err != nil {
			fmt.Printf("Write error: %v\n", err)
			return
		}
	}
	if err := w.Close(); err != nil {
		fmt.Printf("Close error: %v\n", err)
		return
	}

	fmt.Printf("Wrote %d frames\n", w.Frames())
	// Output: Wrote 8000 frames
}
