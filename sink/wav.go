// SPDX-License-Identifier: EPL-2.0

package sink

import (
	"fmt"
	"io"
	"sync"

	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/formats/wav"
)

// WAV renders pushed blocks to a 16-bit stereo WAV file instead of a device.
// An unmuted WAV sink consumes each block as soon as it is pushed; a muted
// one holds it as queued until unmuted, like a paused device would.
type WAV struct {
	w       io.Writer
	samples []int16
	held    int // bytes pushed while muted
	muted   bool
	closed  bool

	mtx *sync.Mutex
}

// NewWAV writes to w when Close is called. w is not closed.
func NewWAV(w io.Writer) *WAV {
	return &WAV{
		w:   w,
		mtx: &sync.Mutex{},
	}
}

func (s *WAV) Push(block []int16) error {
	if len(block)%audio.Channels != 0 {
		return ErrBlockSize
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.samples = append(s.samples, block...)
	if s.muted {
		s.held += len(block) * audio.BytesPerSample
	}

	return nil
}

func (s *WAV) QueuedBytes() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.held
}

func (s *WAV) SetMuted(muted bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.muted = muted
	if !muted {
		s.held = 0
	}
}

func (s *WAV) Muted() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.muted
}

// Frames is the number of stereo frames rendered so far.
func (s *WAV) Frames() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return len(s.samples) / audio.Channels
}

// Close writes the WAV file. Calling it again is a no-op.
func (s *WAV) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := wav.WriteWAV16(s.w, audio.SampleRate, audio.Channels, s.samples); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}

	return nil
}
