// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV decoding and 16-bit WAV encoding.
//
// Decoding uses github.com/go-audio/wav and accepts integer PCM at 8, 16, 24
// and 32 bits, mono or stereo. Samples are rescaled to int16:
//
//	src, err := wav.Decoder{}.Decode(file)
//	buf := make([]int16, 2048)
//	n, err := src.ReadSamples(buf)
//
// Sources rewind through the library's Rewind, which re-parses the RIFF
// headers and positions the reader at the first PCM byte.
//
// # Writing WAV Files
//
// WriteWAV16 writes an interleaved 16-bit file with a canonical 44-byte
// header. It is used to render mixer output offline:
//
//	err := wav.WriteWAV16(out, 44100, 2, samples)
package wav
