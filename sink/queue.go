// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"slices"
	"sync"

	"github.com/ik5/voxmix/audio"
)

// Queue is an in-memory Sink with no device behind it. Drain stands in for
// the platform consuming audio, so tests and dry runs control the cadence.
type Queue struct {
	blocks [][]int16
	queued int // bytes
	pushes int
	muted  bool
	closed bool

	mtx *sync.Mutex
}

// NewQueue returns an unmuted, empty queue.
func NewQueue() *Queue {
	return &Queue{mtx: &sync.Mutex{}}
}

func (q *Queue) Push(block []int16) error {
	if len(block)%audio.Channels != 0 {
		return ErrBlockSize
	}

	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.closed {
		return ErrClosed
	}

	q.blocks = append(q.blocks, slices.Clone(block))
	q.queued += len(block) * audio.BytesPerSample
	q.pushes++

	return nil
}

func (q *Queue) QueuedBytes() int {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	return q.queued
}

// Drain consumes up to n queued bytes and returns how many it took. A muted
// queue consumes nothing.
func (q *Queue) Drain(n int) int {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.muted || n <= 0 {
		return 0
	}

	n = min(n, q.queued)
	q.queued -= n

	return n
}

// DrainAll consumes everything queued unless muted.
func (q *Queue) DrainAll() int {
	return q.Drain(q.QueuedBytes())
}

func (q *Queue) SetMuted(muted bool) {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	q.muted = muted
}

func (q *Queue) Muted() bool {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	return q.muted
}

// Pushes counts accepted blocks.
func (q *Queue) Pushes() int {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	return q.pushes
}

// Blocks returns copies of every block pushed so far, oldest first.
func (q *Queue) Blocks() [][]int16 {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	out := make([][]int16, len(q.blocks))
	for i, b := range q.blocks {
		out[i] = slices.Clone(b)
	}

	return out
}

func (q *Queue) Close() error {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	q.closed = true

	return nil
}
