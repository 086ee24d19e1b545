// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3. That decoder always emits
// interleaved stereo signed 16-bit little-endian PCM, so the source reports
// two channels regardless of the channel mode stored in the frames.
//
// # Detection
//
// Sniff accepts either an ID3v2 tag ("ID3") or an MPEG frame sync (eleven set
// bits) at offset zero. Files with other leading junk are not recognized.
//
// # Rewinding
//
// Rewind seeks the go-mp3 decoder back to byte 0 of the PCM stream, which
// requires the underlying reader to be seekable.
package mp3
