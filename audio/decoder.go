// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/afero"
)

// sniffLen covers the longest magic we match on (RIFF....WAVE, FORM....AIFF).
const sniffLen = 12

// Decoder wraps one Source and hands it out in stereo blocks of fixed size.
// It owns the file it was opened from, if any. Buffers given to OpenMemory
// are referenced, not copied, and must outlive the Decoder.
type Decoder struct {
	src    Source
	format string
	file   io.Closer
	tmp    []int16
	pos    int64 // frames delivered since the last SeekStart
}

// OpenFile opens path on fsys and decodes it in place. A missing path is
// reported with an error matching fs.ErrNotExist so callers can fall back to
// another asset location.
func OpenFile(reg *Registry, fsys afero.Fs, path string) (*Decoder, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("open %s: is a directory: %w", path, fs.ErrNotExist)
	}

	d, err := open(reg, f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	d.file = f

	return d, nil
}

// OpenMemory decodes a complete in-memory bitstream.
func OpenMemory(reg *Registry, data []byte) (*Decoder, error) {
	return open(reg, bytes.NewReader(data), "<memory>")
}

func open(reg *Registry, r io.ReadSeeker, name string) (*Decoder, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeOpen, name, err)
	}

	format, codec, ok := reg.Detect(header[:n])
	if !ok {
		return nil, fmt.Errorf("%w: %s: unrecognized header", ErrDecodeOpen, name)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeOpen, name, err)
	}

	src, err := codec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%s): %w", ErrDecodeOpen, name, format, err)
	}

	if src.SampleRate() != SampleRate || src.Channels() < 1 || src.Channels() > Channels {
		src.Close()
		return nil, fmt.Errorf("%w: %w: %s is %d Hz with %d channels",
			ErrDecodeOpen, ErrUnsupportedFormat, name, src.SampleRate(), src.Channels())
	}

	return &Decoder{
		src:    src,
		format: format,
	}, nil
}

// Format is the registry key of the codec that accepted the stream.
func (d *Decoder) Format() string { return d.format }

// Position returns the number of frames delivered since the last SeekStart.
func (d *Decoder) Position() int64 { return d.pos }

// GetSamples decodes up to frames stereo frames into block and zero-fills
// whatever it could not write. It returns 0 only once the stream is exhausted;
// after that every call returns 0 until SeekStart.
func (d *Decoder) GetSamples(block []int16, frames int) (int, error) {
	if frames <= 0 {
		return 0, nil
	}
	if len(block) < frames*Channels {
		return 0, ErrInvalidBlock
	}

	out := block[:frames*Channels]
	srcCh := d.src.Channels()
	written := 0

	for written < frames {
		want := (frames - written) * srcCh

		var buf []int16
		if srcCh == Channels {
			buf = out[written*Channels : frames*Channels]
		} else {
			if cap(d.tmp) < want {
				d.tmp = make([]int16, want)
			}
			buf = d.tmp[:want]
		}

		n, err := d.src.ReadSamples(buf)
		got := n / srcCh

		if srcCh == 1 {
			for i := range got {
				v := buf[i]
				out[(written+i)*Channels] = v
				out[(written+i)*Channels+1] = v
			}
		}
		written += got

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			clear(out[written*Channels:])
			d.pos += int64(written)
			return written, fmt.Errorf("decode %s: %w", d.format, err)
		}
		if got == 0 {
			// no progress without an error, treat as end of stream
			break
		}
	}

	clear(out[written*Channels:])
	d.pos += int64(written)

	return written, nil
}

// SeekStart rewinds to frame 0. It is valid after the stream is exhausted.
func (d *Decoder) SeekStart() error {
	if err := d.src.Rewind(); err != nil {
		return fmt.Errorf("rewind %s: %w", d.format, err)
	}
	d.pos = 0

	return nil
}

func (d *Decoder) Close() error {
	var errs []error
	if err := d.src.Close(); err != nil {
		errs = append(errs, err)
	}
	if d.file != nil {
		if err := d.file.Close(); err != nil {
			errs = append(errs, err)
		}
		d.file = nil
	}

	return errors.Join(errs...)
}
