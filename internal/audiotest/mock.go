// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/voxmix/audio"
)

// MockSource is a test helper that generates int16 audio data.
// It implements audio.Source.
type MockSource struct {
	sampleRate   int
	channels     int
	totalFrames  int // Total frames to generate
	generated    int // Frames generated so far
	waveform     func(frame int, channel int) int16
	readErr      error
	rewindErr    error
	closeErr     error
	closed       bool
	rewindCount  int
	maxChunkSize int
}

// NewMockSource creates a new mock audio source.
// totalFrames is the number of frames to generate before reporting io.EOF.
// waveform generates the sample value for a frame index and channel.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) int16) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalFrames, 0)
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value int16) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) int16 {
		return value
	})
}

// NewRampSource creates a mock source whose left channel counts frames from 1
// and whose right channel is the negated count. Handy for checking ordering.
func NewRampSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) int16 {
		v := int16((frame + 1) % math.MaxInt16)
		if channel == 1 {
			return -v
		}
		return v
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.closed = true
	return m.closeErr
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// RewindCount reports how many times Rewind succeeded.
func (m *MockSource) RewindCount() int { return m.rewindCount }

// FailReads makes every following ReadSamples return err.
func (m *MockSource) FailReads(err error) { m.readErr = err }

// FailRewind makes every following Rewind return err.
func (m *MockSource) FailRewind(err error) { m.rewindErr = err }

// FailClose makes Close return err. The source is still marked closed.
func (m *MockSource) FailClose(err error) { m.closeErr = err }

// LimitChunk caps the number of frames a single ReadSamples returns.
func (m *MockSource) LimitChunk(frames int) { m.maxChunkSize = frames }

func (m *MockSource) Rewind() error {
	if m.rewindErr != nil {
		return m.rewindErr
	}
	m.generated = 0
	m.rewindCount++

	return nil
}

func (m *MockSource) ReadSamples(dst []int16) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalFrames-m.generated)
	if m.maxChunkSize > 0 {
		framesToWrite = min(framesToWrite, m.maxChunkSize)
	}

	for frame := range framesToWrite {
		idx := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(idx, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalFrames {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// Magic opens every stream understood by Codec.
const Magic = "MOCK"

var ErrBadMockStream = errors.New("malformed mock stream")

// Codec decodes the trivial container produced by Encode:
// "MOCK", uint32 sample rate, uint16 channels, then int16 samples, all
// little-endian. It lets tests drive audio.Decoder without a real codec.
type Codec struct{}

func (Codec) Sniff(header []byte) bool {
	return bytes.HasPrefix(header, []byte(Magic))
}

func (Codec) Decode(r io.ReadSeeker) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < 10 || string(data[:4]) != Magic {
		return nil, ErrBadMockStream
	}

	rate := int(binary.LittleEndian.Uint32(data[4:8]))
	channels := int(binary.LittleEndian.Uint16(data[8:10]))
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrBadMockStream, channels)
	}

	body := data[10:]
	samples := make([]int16, len(body)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(body[2*i:]))
	}

	return NewMockSource(rate, channels, len(samples)/channels, func(frame, ch int) int16 {
		return samples[frame*channels+ch]
	}), nil
}

// Encode builds a stream for Codec.
func Encode(sampleRate, channels int, samples []int16) []byte {
	out := make([]byte, 10+len(samples)*2)
	copy(out, Magic)
	binary.LittleEndian.PutUint32(out[4:], uint32(sampleRate))
	binary.LittleEndian.PutUint16(out[8:], uint16(channels))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[10+2*i:], uint16(s))
	}

	return out
}

// ConstantStream is Encode for frames of a single repeated stereo value.
func ConstantStream(frames int, value int16) []byte {
	samples := make([]int16, frames*audio.Channels)
	for i := range samples {
		samples[i] = value
	}

	return Encode(audio.SampleRate, audio.Channels, samples)
}

// NewRegistry returns an audio.Registry holding only Codec under "mock".
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("mock", Codec{})

	return reg
}
