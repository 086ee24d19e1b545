// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/voxmix/utils"

// Mix sums srcs index by index into dst. Accumulation happens in int32 so
// intermediate sums never wrap; each result is saturated to the int16 range.
// Sources shorter than dst contribute silence past their end. With no
// sources dst is cleared.
func Mix(dst []int16, srcs [][]int16) {
	if len(srcs) == 0 {
		clear(dst)
		return
	}

	for i := range dst {
		var acc int32
		for _, s := range srcs {
			if i < len(s) {
				acc += int32(s[i])
			}
		}
		dst[i] = utils.Saturate16(acc)
	}
}
