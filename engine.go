// SPDX-License-Identifier: EPL-2.0

package voxmix

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/sink"
	"github.com/ik5/voxmix/voice"
)

// Engine ties a voice pool to an output sink. Each Tick mixes one block
// from every playing voice and pushes it, but only once the sink has played
// the previous block. An Engine is not safe for concurrent use; call it from
// the host's frame loop.
type Engine struct {
	id     uuid.UUID
	pool   *voice.Pool
	sink   sink.Sink
	block  []int16
	logger *slog.Logger

	mutedByHost bool // host asked for silence; opening a voice does not undo it
	pending     bool // block was mixed but the sink refused it
	shutdown    bool
}

type Option func(*Engine)

// WithLogger sets the base logger; the engine adds its instance id to it.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New takes ownership of pool and out. The sink starts muted and is
// unmuted when the first voice opens.
func New(pool *voice.Pool, out sink.Sink, opts ...Option) *Engine {
	e := &Engine{
		id:     uuid.New(),
		pool:   pool,
		sink:   out,
		block:  make([]int16, pool.BlockFrames()*audio.Channels),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "engine", "engine_id", e.id.String())

	out.SetMuted(true)

	return e
}

// ID identifies this engine in logs.
func (e *Engine) ID() uuid.UUID { return e.id }

// Open starts name on the first free voice and returns its id. When the pool
// is full the id is voice.NoVoice and the error wraps voice.ErrPoolExhausted.
// Missing or undecodable assets are reported the same way and never stop the
// engine.
func (e *Engine) Open(name string, loop bool) (int, error) {
	if e.shutdown {
		return voice.NoVoice, ErrShutdown
	}

	id, err := e.pool.Open(name, loop)
	if err != nil {
		return voice.NoVoice, err
	}

	if !e.mutedByHost && e.sink.Muted() {
		e.sink.SetMuted(false)
		e.logger.Debug("device unmuted on first voice")
	}

	return id, nil
}

// Close stops voice id. Unknown or finished ids are ignored.
func (e *Engine) Close(id int) error {
	return e.pool.Close(id)
}

// SetDeviceMuted pauses or resumes the output device. Queued audio is kept.
func (e *Engine) SetDeviceMuted(muted bool) {
	e.mutedByHost = muted
	e.sink.SetMuted(muted)
	e.logger.Info("device mute changed", "muted", muted)
}

func (e *Engine) DeviceMuted() bool { return e.sink.Muted() }

// Voices reports every slot of the pool.
func (e *Engine) Voices() []voice.Status { return e.pool.Snapshot() }

// Tick mixes and pushes one block if the sink has nothing queued. It
// reports whether a block was pushed. Voices that fail to decode are
// dropped and their errors returned, but the block built from the remaining
// voices is still pushed.
//
// Mixing advances every voice, so a block the sink rejects is kept and
// pushed again by the next Tick before anything new is mixed.
func (e *Engine) Tick() (bool, error) {
	if e.shutdown {
		return false, ErrShutdown
	}
	if e.sink.QueuedBytes() != 0 {
		return false, nil
	}

	var pullErr error
	if !e.pending {
		var srcs [][]int16
		srcs, pullErr = e.pool.Pull()
		audio.Mix(e.block, srcs)
	}

	if err := e.sink.Push(e.block); err != nil {
		e.pending = true
		return false, errors.Join(pullErr, fmt.Errorf("push block: %w", err))
	}
	e.pending = false

	return true, pullErr
}

// Shutdown mutes the device, closes every voice and then the sink.
func (e *Engine) Shutdown() error {
	if e.shutdown {
		return nil
	}
	e.shutdown = true

	e.sink.SetMuted(true)

	var errs []error
	if err := e.pool.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := e.sink.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close sink: %w", err))
	}
	e.logger.Info("engine shut down")

	return errors.Join(errs...)
}
