// SPDX-License-Identifier: EPL-2.0

package voice

import "errors"

var (
	// ErrPoolExhausted indicates every slot holds an active voice
	ErrPoolExhausted = errors.New("voice pool exhausted")

	// ErrInvalidConfig indicates a non-positive voice count or block size
	ErrInvalidConfig = errors.New("invalid voice pool config")
)
