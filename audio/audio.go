// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Output contract shared by every Decoder and sink: 44.1kHz interleaved
// stereo, signed 16-bit little-endian, handed over in fixed blocks.
const (
	SampleRate     = 44100
	Channels       = 2
	BytesPerSample = 2
	BlockFrames    = 1024
	BlockSamples   = BlockFrames * Channels
	BlockBytes     = BlockSamples * BytesPerSample
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved int16 samples.
	// Returns number of int16 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []int16) (n int, err error)
	// Rewind repositions the stream at its first frame.
	Rewind() error

	// Close releases any resources.
	Close() error
}

// Codec constructs a Source from a seekable input.
type Codec interface {
	Decode(r io.ReadSeeker) (Source, error)
	// Sniff reports whether header looks like the start of this codec's container.
	Sniff(header []byte) bool
}

// Registry for codecs by format key (e.g., "wav", "mp3", "vorbis").
type Registry struct {
	codecs map[string]Codec
	order  []string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Codec),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, c Codec) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.order = append(r.order, format)
	}
	r.codecs[format] = c
}

func (r *Registry) Get(format string) (Codec, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.codecs[format]
	return c, ok
}

// Formats lists registered format keys in registration order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Detect returns the first codec, in registration order, whose Sniff accepts header.
func (r *Registry) Detect(header []byte) (string, Codec, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, format := range r.order {
		c := r.codecs[format]
		if c.Sniff(header) {
			return format, c, true
		}
	}

	return "", nil, false
}
