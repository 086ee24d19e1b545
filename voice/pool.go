// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/ik5/voxmix/asset"
	"github.com/ik5/voxmix/audio"
	"github.com/spf13/afero"
)

// NoVoice is the id returned alongside every Open error.
const NoVoice = -1

type Config struct {
	Voices      int
	BlockFrames int
}

func DefaultConfig() Config {
	return Config{
		Voices:      5,
		BlockFrames: audio.BlockFrames,
	}
}

// Resolver supplies asset bytes when a name is not a readable file.
type Resolver interface {
	Resolve(name string) ([]byte, error)
}

// Source tells how a voice's decoder was opened.
type Source string

const (
	SourceNone   Source = ""
	SourceFile   Source = "file"
	SourceMemory Source = "memory"
)

type slot struct {
	dec     *audio.Decoder
	backing []byte // resolved bytes the decoder reads from; nil for files
	scratch []int16

	name   string
	source Source
	loop   bool
	free   bool
	loops  int
	frames int64
}

// release closes the decoder and marks the slot free. The scratch block is
// kept, and not cleared, so a block returned by Pull stays valid until the
// next Pull.
func (s *slot) release() error {
	var err error
	if s.dec != nil {
		err = s.dec.Close()
	}
	*s = slot{free: true, scratch: s.scratch}

	return err
}

// Pool is a fixed set of voice slots. Slots are allocated once and reused by
// ascending index. A Pool is not safe for concurrent use.
type Pool struct {
	cfg    Config
	reg    *audio.Registry
	fsys   afero.Fs
	res    Resolver
	slots  []slot
	out    [][]int16
	logger *slog.Logger
}

// NewPool builds a pool of cfg.Voices free slots. Open looks names up on fsys
// first (skipped when nil) and falls back to res.
func NewPool(cfg Config, reg *audio.Registry, fsys afero.Fs, res Resolver, logger *slog.Logger) (*Pool, error) {
	if cfg.Voices <= 0 || cfg.BlockFrames <= 0 {
		return nil, fmt.Errorf("%w: %d voices, %d frames per block", ErrInvalidConfig, cfg.Voices, cfg.BlockFrames)
	}
	if logger == nil {
		logger = slog.Default()
	}

	slots := make([]slot, cfg.Voices)
	for i := range slots {
		slots[i] = slot{
			free:    true,
			scratch: make([]int16, cfg.BlockFrames*audio.Channels),
		}
	}

	return &Pool{
		cfg:    cfg,
		reg:    reg,
		fsys:   fsys,
		res:    res,
		slots:  slots,
		out:    make([][]int16, 0, cfg.Voices),
		logger: logger,
	}, nil
}

func (p *Pool) Capacity() int    { return len(p.slots) }
func (p *Pool) BlockFrames() int { return p.cfg.BlockFrames }

// Active counts slots currently playing.
func (p *Pool) Active() int {
	n := 0
	for i := range p.slots {
		if !p.slots[i].free {
			n++
		}
	}

	return n
}

// Acquire returns the lowest free slot index without claiming it.
func (p *Pool) Acquire() (int, error) {
	for i := range p.slots {
		if p.slots[i].free {
			return i, nil
		}
	}

	return NoVoice, ErrPoolExhausted
}

// Open starts name in the lowest free slot and returns its id. A full pool
// yields NoVoice and ErrPoolExhausted; nothing is evicted.
func (p *Pool) Open(name string, loop bool) (int, error) {
	id, err := p.Acquire()
	if err != nil {
		return NoVoice, err
	}

	dec, backing, source, err := p.openDecoder(name)
	if err != nil {
		p.logger.Warn("voice open failed", "name", name, "error", err)
		return NoVoice, fmt.Errorf("open voice %q: %w", name, err)
	}

	s := &p.slots[id]
	s.dec = dec
	s.backing = backing
	s.name = name
	s.source = source
	s.loop = loop
	s.free = false
	s.loops = 0
	s.frames = 0

	p.logger.Debug("voice opened", "id", id, "name", name, "loop", loop,
		"format", dec.Format(), "source", string(source))

	return id, nil
}

func (p *Pool) openDecoder(name string) (*audio.Decoder, []byte, Source, error) {
	if p.fsys != nil {
		dec, err := audio.OpenFile(p.reg, p.fsys, name)
		if err == nil {
			return dec, nil, SourceFile, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, SourceNone, err
		}
	}

	if p.res == nil {
		return nil, nil, SourceNone, fmt.Errorf("%w: %s", asset.ErrNotFound, name)
	}

	data, err := p.res.Resolve(name)
	if err != nil {
		return nil, nil, SourceNone, err
	}

	dec, err := audio.OpenMemory(p.reg, data)
	if err != nil {
		return nil, nil, SourceNone, err
	}

	return dec, data, SourceMemory, nil
}

// Close stops voice id and frees its slot. Unknown or already free ids are
// ignored.
func (p *Pool) Close(id int) error {
	if id < 0 || id >= len(p.slots) || p.slots[id].free {
		return nil
	}

	name := p.slots[id].name
	if err := p.slots[id].release(); err != nil {
		return fmt.Errorf("close voice %d (%s): %w", id, name, err)
	}
	p.logger.Debug("voice closed", "id", id, "name", name)

	return nil
}

// Pull decodes one block from every playing slot, in slot order, and returns
// the blocks that contribute to this tick. The returned slices are reused on
// the next call.
//
// A slot whose decoder reports end of stream is rewound when looping and adds
// nothing this tick. A non-looping slot is freed on its last block, whether
// that block is short or empty. A slot whose decoder fails is freed and its
// error is returned after the other slots were served.
func (p *Pool) Pull() ([][]int16, error) {
	p.out = p.out[:0]
	var errs []error

	for id := range p.slots {
		s := &p.slots[id]
		if s.free {
			continue
		}

		n, err := s.dec.GetSamples(s.scratch, p.cfg.BlockFrames)
		if err != nil {
			name := s.name
			if cerr := s.release(); cerr != nil {
				err = errors.Join(err, cerr)
			}
			p.logger.Warn("voice dropped on decode error", "id", id, "name", name, "error", err)
			errs = append(errs, fmt.Errorf("voice %d (%s): %w", id, name, err))
			continue
		}

		if n == 0 {
			if s.loop {
				if err := s.dec.SeekStart(); err != nil {
					name := s.name
					if cerr := s.release(); cerr != nil {
						err = errors.Join(err, cerr)
					}
					p.logger.Warn("voice dropped on rewind error", "id", id, "name", name, "error", err)
					errs = append(errs, fmt.Errorf("voice %d (%s): %w", id, name, err))
					continue
				}
				s.loops++
				p.logger.Debug("voice looped", "id", id, "name", s.name, "loops", s.loops)
				continue
			}

			p.finish(id)
			continue
		}

		s.frames += int64(n)
		p.out = append(p.out, s.scratch)

		if n < p.cfg.BlockFrames && !s.loop {
			p.finish(id)
		}
	}

	return p.out, errors.Join(errs...)
}

func (p *Pool) finish(id int) {
	name := p.slots[id].name
	if err := p.slots[id].release(); err != nil {
		p.logger.Warn("voice close failed", "id", id, "name", name, "error", err)
	}
	p.logger.Debug("voice finished", "id", id, "name", name)
}

// Shutdown closes every playing slot.
func (p *Pool) Shutdown() error {
	var errs []error
	for id := range p.slots {
		if err := p.Close(id); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
