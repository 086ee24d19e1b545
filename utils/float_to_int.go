// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a normalised float sample in [-1, 1] to int16.
// Out of range input is clamped first.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 for the positive bound so 1.0 does not overflow
	if x < 0 {
		return int16(x * 32768.0)
	}

	return int16(x * 32767.0)
}

// Float64ToInt16 is Float32ToInt16 for decoders that stream float64 pairs.
func Float64ToInt16(x float64) int16 {
	return Float32ToInt16(float32(x))
}
