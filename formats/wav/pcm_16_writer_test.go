// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		samples    []int16
	}{
		{name: "mono 8k", sampleRate: 8000, channels: 1, samples: []int16{0, 100, -100, 200, -200}},
		{name: "stereo 44.1k", sampleRate: 44100, channels: 2, samples: []int16{1, -1, 2, -2}},
		{name: "empty stereo", sampleRate: 44100, channels: 2, samples: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := new(bytes.Buffer)
			if err := WriteWAV16(buf, tt.sampleRate, tt.channels, tt.samples); err != nil {
				t.Fatalf("WriteWAV16() error = %v", err)
			}

			data := buf.Bytes()
			if len(data) != 44+len(tt.samples)*2 {
				t.Fatalf("WAV size = %d, want %d", len(data), 44+len(tt.samples)*2)
			}

			if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
				t.Errorf("container markers = %q/%q, want RIFF/WAVE", data[0:4], data[8:12])
			}

			if got := binary.LittleEndian.Uint16(data[22:24]); int(got) != tt.channels {
				t.Errorf("channels = %d, want %d", got, tt.channels)
			}
			if got := binary.LittleEndian.Uint32(data[24:28]); int(got) != tt.sampleRate {
				t.Errorf("sample rate = %d, want %d", got, tt.sampleRate)
			}
			if got := binary.LittleEndian.Uint16(data[32:34]); int(got) != tt.channels*2 {
				t.Errorf("block align = %d, want %d", got, tt.channels*2)
			}
			if got := binary.LittleEndian.Uint32(data[28:32]); int(got) != tt.sampleRate*tt.channels*2 {
				t.Errorf("byte rate = %d, want %d", got, tt.sampleRate*tt.channels*2)
			}
			if got := binary.LittleEndian.Uint32(data[4:8]); int(got) != 36+len(tt.samples)*2 {
				t.Errorf("RIFF size = %d, want %d", got, 36+len(tt.samples)*2)
			}
		})
	}
}

func TestWriteWAV16_SampleDataLittleEndian(t *testing.T) {
	t.Parallel()

	samples := []int16{0x0102, -2}
	buf := new(bytes.Buffer)

	if err := WriteWAV16(buf, 44100, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	body := buf.Bytes()[44:]
	want := []byte{0x02, 0x01, 0xFE, 0xFF}
	if !bytes.Equal(body, want) {
		t.Errorf("sample bytes = % x, want % x", body, want)
	}
}

func TestWriteWAV16_LargeFileSpansChunks(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 8192*3+7)
	for i := range samples {
		samples[i] = int16(i)
	}

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 44100, 1, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	body := buf.Bytes()[44:]
	for _, i := range []int{0, 8191, 8192, len(samples) - 1} {
		got := int16(binary.LittleEndian.Uint16(body[i*2:]))
		if got != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got, samples[i])
		}
	}
}

func TestWriteWAV16_InvalidChannels(t *testing.T) {
	t.Parallel()

	err := WriteWAV16(new(bytes.Buffer), 44100, 0, []int16{1})
	if !errors.Is(err, ErrInvalidChannelCount) {
		t.Errorf("WriteWAV16() error = %v, want ErrInvalidChannelCount", err)
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 44100*2)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		buf := new(bytes.Buffer)
		_ = WriteWAV16(buf, 44100, 2, samples)
	}
}
