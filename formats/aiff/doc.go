// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
//   - AIFF and uncompressed AIFF-C
//   - Signed PCM at 8, 16, 24 and 32 bits
//   - Mono and stereo
//
// Samples wider than 16 bits are truncated to their top 16 bits, narrower
// ones are shifted up.
//
// # Rewinding
//
// go-audio/aiff only reads forward, so Rewind seeks the input back to byte 0
// and parses the header again.
package aiff
