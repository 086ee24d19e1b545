// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/voxmix/internal/audiotest"
)

// mockStreamer replays a fixed list of stereo frames
type mockStreamer struct {
	frames [][2]float64
	pos    int
	err    error
	closed bool
}

func (m *mockStreamer) Stream(samples [][2]float64) (int, bool) {
	if m.err != nil || m.pos >= len(m.frames) {
		return 0, false
	}
	n := copy(samples, m.frames[m.pos:])
	m.pos += n
	return n, true
}

func (m *mockStreamer) Err() error { return m.err }

func (m *mockStreamer) Seek(p int) error {
	if p < 0 || p > len(m.frames) {
		return errors.New("seek out of range")
	}
	m.pos = p
	return nil
}

func (m *mockStreamer) Close() error {
	m.closed = true
	return nil
}

func TestDecoder_Sniff(t *testing.T) {
	t.Parallel()

	if !(Decoder{}).Sniff([]byte("fLaC\x00\x00\x00\x22")) {
		t.Error("Sniff() = false for fLaC marker")
	}
	if (Decoder{}).Sniff([]byte("OggS")) {
		t.Error("Sniff() = true for Ogg header")
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not FLAC data")))
	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

// closeTracker is a ReadSeeker that records Close, like an open file.
type closeTracker struct {
	*bytes.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestDecoder_DecodesStream(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 300*2)
	for i := 0; i < len(samples); i += 2 {
		samples[i] = -16384
	}

	src, err := Decoder{}.Decode(bytes.NewReader(audiotest.EncodeFLAC16(44100, 2, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("format = %d/%d, want 44100/2", src.SampleRate(), src.Channels())
	}

	total := 0
	dst := make([]int16, 128)
	for {
		n, err := src.ReadSamples(dst)
		for i := 0; i < n; i += 2 {
			if dst[i] != -16384 || dst[i+1] != 0 {
				t.Fatalf("frame %d = [%d %d], want [-16384 0]", (total+i)/2, dst[i], dst[i+1])
			}
		}
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != len(samples) {
		t.Errorf("decoded %d samples, want %d", total, len(samples))
	}
}

func TestDecoder_LeavesReaderOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  []byte
		valid bool
	}{
		{"valid stream", audiotest.EncodeFLAC16(44100, 2, make([]int16, 64)), true},
		{"invalid stream", []byte("fLaC but not really"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &closeTracker{Reader: bytes.NewReader(tt.data)}
			src, err := Decoder{}.Decode(r)
			if tt.valid {
				if err != nil {
					t.Fatalf("Decode() error = %v", err)
				}
				if err := src.Close(); err != nil {
					t.Fatalf("Close() error = %v", err)
				}
			} else if err == nil {
				t.Fatal("Decode() error = nil, want error")
			}

			if r.closed {
				t.Error("reader was closed by the decoder, want it left to the caller")
			}
		})
	}
}

func TestSource_Stereo(t *testing.T) {
	t.Parallel()

	st := &mockStreamer{frames: [][2]float64{{0, 0}, {1, -1}, {0.5, -2}}}
	src := newSource(st, beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2})

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("format = %d/%d, want 44100/2", src.SampleRate(), src.Channels())
	}

	dst := make([]int16, 8)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 6 {
		t.Fatalf("ReadSamples() n = %d, want 6", n)
	}

	want := []int16{0, 0, 32767, -32768, 16383, -32768}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_Mono(t *testing.T) {
	t.Parallel()

	st := &mockStreamer{frames: [][2]float64{{0.5, 0.5}, {-0.5, -0.5}}}
	src := newSource(st, beep.Format{SampleRate: 44100, NumChannels: 1, Precision: 2})

	dst := make([]int16, 4)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 2 || dst[0] != 16383 || dst[1] != -16384 {
		t.Errorf("ReadSamples() = %d %v, want 2 [16383 -16384]", n, dst[:2])
	}
}

func TestSource_StreamError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt frame")
	st := &mockStreamer{frames: make([][2]float64, 4), err: boom}
	src := newSource(st, beep.Format{SampleRate: 44100, NumChannels: 2})

	_, err := src.ReadSamples(make([]int16, 4))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_RewindAndClose(t *testing.T) {
	t.Parallel()

	st := &mockStreamer{frames: [][2]float64{{0.25, 0.25}}}
	src := newSource(st, beep.Format{SampleRate: 44100, NumChannels: 2})

	dst := make([]int16, 2)
	_, _ = src.ReadSamples(dst)
	if n, _ := src.ReadSamples(dst); n != 0 {
		t.Fatalf("ReadSamples() n = %d at end, want 0", n)
	}

	if err := src.Rewind(); err != nil {
		t.Fatalf("Rewind() error = %v", err)
	}
	if n, _ := src.ReadSamples(dst); n != 2 {
		t.Errorf("ReadSamples() after Rewind n = %d, want 2", n)
	}

	if err := src.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !st.closed {
		t.Error("Close() did not close the streamer")
	}
}
