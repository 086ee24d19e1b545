// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. The decoder emits float32
// samples which are clamped and converted to int16 before they leave the
// package:
//
//	src, err := vorbis.Decoder{}.Decode(bytes.NewReader(data))
//	buf := make([]int16, 2048)
//	n, err := src.ReadSamples(buf)
//
// Rewind uses SetPosition(0), so the input must be seekable. Files and
// in-memory buffers both are.
package vorbis
