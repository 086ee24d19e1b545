// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate   int
	channels     int
	samples      []int
	offset       int
	returnErrors bool
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	samplesToRead := min(len(buf.Data), len(m.samples)-m.offset)

	copy(buf.Data, m.samples[m.offset:m.offset+samplesToRead])
	m.offset += samplesToRead

	if m.offset >= len(m.samples) {
		return samplesToRead, io.EOF
	}

	return samplesToRead, nil
}

func newMockSource(channels, bitDepth int, samples []int) *source {
	mock := &mockAiffReader{sampleRate: 44100, channels: channels, samples: samples}

	return &source{
		dec: mock,
		reopen: func() (aiffReader, error) {
			mock.offset = 0
			return mock, nil
		},
		sampleRate: 44100,
		channels:   channels,
		bitDepth:   bitDepth,
	}
}

// encodeAIFF16 builds a minimal AIFF file holding 16-bit big-endian PCM.
func encodeAIFF16(t testing.TB, sampleRate, channels int, samples []int16) []byte {
	t.Helper()

	frames := len(samples) / channels
	var body bytes.Buffer

	// COMM chunk
	body.WriteString("COMM")
	_ = binary.Write(&body, binary.BigEndian, uint32(18))
	_ = binary.Write(&body, binary.BigEndian, uint16(channels))
	_ = binary.Write(&body, binary.BigEndian, uint32(frames))
	_ = binary.Write(&body, binary.BigEndian, uint16(16))
	body.Write(extended80(float64(sampleRate)))

	// SSND chunk
	body.WriteString("SSND")
	_ = binary.Write(&body, binary.BigEndian, uint32(8+len(samples)*2))
	_ = binary.Write(&body, binary.BigEndian, uint32(0))
	_ = binary.Write(&body, binary.BigEndian, uint32(0))
	for _, s := range samples {
		_ = binary.Write(&body, binary.BigEndian, s)
	}

	var out bytes.Buffer
	out.WriteString("FORM")
	_ = binary.Write(&out, binary.BigEndian, uint32(4+body.Len()))
	out.WriteString("AIFF")
	out.Write(body.Bytes())

	return out.Bytes()
}

// extended80 encodes a positive integer rate as an IEEE 754 80-bit float.
func extended80(v float64) []byte {
	b := make([]byte, 10)
	exp := int(math.Floor(math.Log2(v)))
	mant := uint64(v * math.Pow(2, float64(63-exp)))
	binary.BigEndian.PutUint16(b[0:2], uint16(exp+16383))
	binary.BigEndian.PutUint64(b[2:10], mant)
	return b
}

func TestDecoder_Sniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFF"), true},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFC"), true},
		{"other form", []byte("FORM\x00\x00\x00\x00ILBM"), false},
		{"riff", []byte("RIFF\x00\x00\x00\x00WAVE"), false},
		{"short", []byte("FORM"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := (Decoder{}).Sniff(tt.header); got != tt.want {
				t.Errorf("Sniff(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not AIFF data")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(nil))
	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	want := []int16{100, -100, 2000, -2000, 32767, -32768}
	data := encodeAIFF16(t, 44100, 2, want)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("format = %d Hz/%d ch, want 44100/2", src.SampleRate(), src.Channels())
	}

	dst := make([]int16, 16)
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(want) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(want))
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}

	if err := src.Rewind(); err != nil {
		t.Fatalf("Rewind() error = %v", err)
	}
	clear(dst)
	if n, _ := src.ReadSamples(dst[:2]); n != 2 || dst[0] != want[0] || dst[1] != want[1] {
		t.Errorf("after Rewind got %v (n=%d), want %v", dst[:2], n, want[:2])
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	testSamples := []int{0, 16384, -16384, 32767, -32768}
	src := newMockSource(1, 16, testSamples)

	dst := make([]int16, len(testSamples))
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(testSamples) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(testSamples))
	}

	for i, v := range testSamples {
		if int(dst[i]) != v {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], v)
		}
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, 16, make([]int, 10))

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_ReadSamples_PartialRead(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, 16, []int{1, 2, 3, 4})

	n, err := src.ReadSamples(make([]int16, 10))
	if n != 4 {
		t.Errorf("ReadSamples() n = %d, want 4", n)
	}
	if err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF on short read", err)
	}

	n, err = src.ReadSamples(make([]int16, 10))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newMockSource(2, 16, []int{1, 2})
	src.dec.(*mockAiffReader).returnErrors = true

	_, err := src.ReadSamples(make([]int16, 2))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_BitDepthConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		input    int
		expected int16
	}{
		{"8-bit max", 8, 127, 127 << 8},
		{"8-bit min", 8, -128, math.MinInt16},
		{"16-bit max", 16, 32767, math.MaxInt16},
		{"16-bit min", 16, -32768, math.MinInt16},
		{"24-bit max", 24, 8388607, math.MaxInt16},
		{"32-bit min", 32, -2147483648, math.MinInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newMockSource(1, tt.bitDepth, []int{tt.input})

			dst := make([]int16, 1)
			n, _ := src.ReadSamples(dst)
			if n != 1 {
				t.Fatalf("ReadSamples() n = %d, want 1", n)
			}
			if dst[0] != tt.expected {
				t.Errorf("dst[0] = %d, want %d", dst[0], tt.expected)
			}
		})
	}
}

func TestSource_Rewind(t *testing.T) {
	t.Parallel()

	src := newMockSource(1, 16, []int{5, 6, 7})
	dst := make([]int16, 3)
	_, _ = src.ReadSamples(dst)

	if err := src.Rewind(); err != nil {
		t.Fatalf("Rewind() error = %v", err)
	}

	n, _ := src.ReadSamples(dst[:1])
	if n != 1 || dst[0] != 5 {
		t.Errorf("after Rewind got %d (n=%d), want 5", dst[0], n)
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err     error
		message string
	}{
		{ErrNotAiffFile, "not an AIFF file"},
		{ErrUnsupportedBitDepth, "unsupported AIFF bit depth"},
		{ErrUnsupportedAiffLayout, "unsupported AIFF layout"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()

			if tt.err.Error() != tt.message {
				t.Errorf("Error message = %q, want %q", tt.err.Error(), tt.message)
			}
		})
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int, 4096)
	for i := range samples {
		samples[i] = i * 8
	}
	src := newMockSource(2, 16, samples)
	dst := make([]int16, 2048)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		_ = src.Rewind()
		for {
			n, err := src.ReadSamples(dst)
			if n == 0 || err != nil {
				break
			}
		}
	}
}
