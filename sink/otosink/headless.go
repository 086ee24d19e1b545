// SPDX-License-Identifier: EPL-2.0

//go:build headless

package otosink

import (
	"errors"
	"time"
)

// ErrUnavailable is returned by New in builds without audio output.
var ErrUnavailable = errors.New("audio output not compiled in (headless build)")

// Sink is never constructed in headless builds.
type Sink struct{}

func New(time.Duration) (*Sink, error) { return nil, ErrUnavailable }

func (*Sink) Push([]int16) error { return ErrUnavailable }
func (*Sink) QueuedBytes() int   { return 0 }
func (*Sink) SetMuted(bool)      {}
func (*Sink) Muted() bool        { return false }
func (*Sink) Close() error       { return nil }
