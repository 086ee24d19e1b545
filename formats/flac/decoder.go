// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/utils"
)

// frameStreamer is the subset of beep.StreamSeekCloser the source needs,
// kept small so tests can replace it.
type frameStreamer interface {
	Stream(samples [][2]float64) (n int, ok bool)
	Err() error
	Seek(p int) error
	Close() error
}

type source struct {
	st         frameStreamer
	sampleRate int
	channels   int
	frames     [][2]float64
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return s.st.Close() }
func (s *source) Rewind() error   { return s.st.Seek(0) }

func (s *source) ReadSamples(dst []int16) (int, error) {
	want := len(dst) / s.channels
	if want == 0 {
		return 0, nil
	}

	if cap(s.frames) < want {
		s.frames = make([][2]float64, want)
	}
	s.frames = s.frames[:want]

	n, ok := s.st.Stream(s.frames)
	if !ok {
		if err := s.st.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	// beep duplicates mono into both slots of the pair
	for i := range n {
		if s.channels == 1 {
			dst[i] = utils.Float64ToInt16(s.frames[i][0])
			continue
		}
		dst[2*i] = utils.Float64ToInt16(s.frames[i][0])
		dst[2*i+1] = utils.Float64ToInt16(s.frames[i][1])
	}

	return n * s.channels, nil
}

type Decoder struct{}

// Sniff matches the "fLaC" stream marker.
func (Decoder) Sniff(header []byte) bool {
	return bytes.HasPrefix(header, []byte("fLaC"))
}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	// beep closes readers that are io.Closers; the caller owns r.
	st, format, err := beepflac.Decode(struct{ io.ReadSeeker }{r})
	if err != nil {
		return nil, fmt.Errorf("decode flac: %w", err)
	}

	return newSource(st, format), nil
}

func newSource(st frameStreamer, format beep.Format) *source {
	channels := format.NumChannels
	if channels > 2 {
		// beep folds surround layouts into a stereo pair
		channels = 2
	}

	return &source{
		st:         st,
		sampleRate: int(format.SampleRate),
		channels:   channels,
		frames:     make([][2]float64, audio.BlockFrames),
	}
}
