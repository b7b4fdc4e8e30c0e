// SPDX-License-Identifier: EPL-2.0

// Package audio provides low-level audio processing primitives.
//
// This package contains the building blocks the rest of the module streams
// through:
//   - Source interface for pull-based PCM input
//   - Specs describing an interleaved stream layout
//   - Resampler for sample rate conversion and playback speed (pitch)
//   - ChannelMixer for channel layout conversion and stereo panning
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders, processors and the sequence reader all implement it, so they can
// be chained together. Sources that know their total length also implement
// Lengther.
//
// # Resampling
//
// The Resampler changes the sample rate using cubic (or linear)
// interpolation. The ratio may change between reads, which is how a mixing
// device applies a per-voice pitch:
//
//	resampler := audio.NewResampler(source, 48000)
//	_ = resampler.SetPitch(1.5)
//	n, err := resampler.ReadSamples(buf)
//
// After seeking the underlying source call Reset so stale history is not
// blended into the new position.
//
// # Channel Mixing
//
// The ChannelMixer adapts a source to a fixed channel count. Down-mixing to
// mono averages all channels; stereo output can be panned:
//
//	stereo := audio.NewChannelMixer(source, 2)
//	stereo.SetPanning(-0.25)
//
// # Format Registry
//
// The registry maps format keys (file extensions) to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get(".WAV")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0].
//
// # Error Handling
//
// Audio processing functions return io.EOF when no more data is available.
// Other errors indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
