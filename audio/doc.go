// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding and mixing primitives of the engine.
//
// This package contains the core building blocks:
//   - Source interface implemented by every format package
//   - Codec and Registry for format detection
//   - Decoder, which turns a Source into fixed-size stereo blocks
//   - Mix, the saturating block mixer
//
// # Output Contract
//
// Everything that leaves this package is 44.1kHz, interleaved stereo,
// signed 16-bit PCM:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// A block holds BlockFrames frames (BlockSamples values, BlockBytes bytes).
//
// # Opening Decoders
//
// A Decoder is opened either from a path on an afero filesystem or from a
// complete in-memory buffer. The header is sniffed against the registry and
// the first matching codec decodes the stream:
//
//	reg := formats.NewRegistry()
//	dec, err := audio.OpenFile(reg, afero.NewOsFs(), "music.ogg")
//	if errors.Is(err, fs.ErrNotExist) {
//	    data, _ := resolver.Resolve("music.ogg")
//	    dec, err = audio.OpenMemory(reg, data)
//	}
//
// Streams that are not 44.1kHz, or have more than two channels, fail with
// ErrUnsupportedFormat wrapped in ErrDecodeOpen. Mono streams are duplicated
// into both channels.
//
// # Reading Blocks
//
//	block := make([]int16, audio.BlockSamples)
//	n, err := dec.GetSamples(block, audio.BlockFrames)
//	if n == 0 {
//	    dec.SeekStart() // end of stream
//	}
//
// GetSamples returns 0 only when the stream is exhausted. A short count means
// the stream ended inside this block; the rest of the block is silence.
//
// # Mixing
//
// Mix sums any number of blocks in an int32 accumulator and clamps the result:
//
//	audio.Mix(out, [][]int16{a, b})
//
// Two full-scale positive samples mix to 32767, never to a wrapped negative.
package audio
