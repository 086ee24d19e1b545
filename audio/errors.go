// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrDecodeOpen        = errors.New("decoder open failed")
	ErrUnsupportedFormat = errors.New("unsupported stream format")
	ErrInvalidBlock      = errors.New("block too small for requested frames")
)
