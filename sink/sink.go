// SPDX-License-Identifier: EPL-2.0

package sink

import "errors"

var (
	// ErrClosed indicates Push after Close
	ErrClosed = errors.New("sink closed")

	// ErrBlockSize indicates a block that is not a whole number of stereo frames
	ErrBlockSize = errors.New("block is not a whole number of stereo frames")
)

// Sink is the platform output queue. Pushed blocks play asynchronously;
// QueuedBytes reports what has not been consumed yet. Muting stops
// consumption without discarding anything queued.
type Sink interface {
	Push(block []int16) error
	QueuedBytes() int
	SetMuted(muted bool)
	Muted() bool
	Close() error
}
