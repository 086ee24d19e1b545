// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package otosink

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/sink"
)

// Sink plays through the system audio device. Only one oto context may
// exist per process, so create at most one Sink.
type Sink struct {
	ctx    *oto.Context
	player *oto.Player
	fifo   *fifo

	mtx    sync.Mutex
	muted  bool
	closed bool
}

// New opens the default output device at 44.1kHz stereo s16le. bufferSize
// is the device-side latency hint; zero lets oto choose.
func New(bufferSize time.Duration) (*Sink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   audio.SampleRate,
		ChannelCount: audio.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	f := &fifo{}
	player := ctx.NewPlayer(f)
	player.SetBufferSize(audio.BlockBytes)
	player.Play()

	return &Sink{
		ctx:    ctx,
		player: player,
		fifo:   f,
	}, nil
}

func (s *Sink) Push(block []int16) error {
	if len(block)%audio.Channels != 0 {
		return sink.ErrBlockSize
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return sink.ErrClosed
	}
	if err := s.player.Err(); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}

	s.fifo.push(block)

	return nil
}

// QueuedBytes counts pushed bytes the player has not pulled yet.
func (s *Sink) QueuedBytes() int {
	return s.fifo.queued()
}

func (s *Sink) SetMuted(muted bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed || s.muted == muted {
		return
	}
	s.muted = muted

	if muted {
		s.player.Pause()
	} else {
		s.player.Play()
	}
}

func (s *Sink) Muted() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.muted
}

func (s *Sink) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.player.Close(); err != nil {
		return fmt.Errorf("close player: %w", err)
	}

	return s.ctx.Suspend()
}
