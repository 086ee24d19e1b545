// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC decoding through github.com/gopxl/beep/v2/flac.
//
// beep streams every file as float64 stereo pairs in [-1, 1]. The source
// converts each pair back to int16 and, for mono files, keeps only the left
// slot so that the reported channel count matches the data.
//
// Rewind uses the beep seeker, so the input reader must support io.Seeker.
package flac
