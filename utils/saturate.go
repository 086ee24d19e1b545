// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Saturate16 clamps an accumulated sample into the int16 range.
// Values outside [-32768, 32767] are pinned to the nearest bound, never wrapped.
func Saturate16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// IntToInt16 rescales a signed PCM integer of the given bit depth to 16 bits.
// Depths below 16 are shifted up, depths above are truncated down.
func IntToInt16(v int, bitDepth int) int16 {
	switch {
	case bitDepth <= 0 || bitDepth == 16:
		return Saturate16(int32(v))
	case bitDepth < 16:
		return Saturate16(int32(v << (16 - bitDepth)))
	default:
		return Saturate16(int32(v >> (bitDepth - 16)))
	}
}
