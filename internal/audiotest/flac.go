// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// flacBlockSize is the fixed frame length written by EncodeFLAC16.
const flacBlockSize = 256

// bitWriter packs big-endian bit fields.
type bitWriter struct {
	buf   bytes.Buffer
	acc   uint64
	nbits uint
}

func (w *bitWriter) write(v uint64, n uint) {
	for i := int(n) - 1; i >= 0; i-- {
		w.acc = w.acc<<1 | (v>>uint(i))&1
		w.nbits++
		if w.nbits == 8 {
			w.buf.WriteByte(byte(w.acc))
			w.acc, w.nbits = 0, 0
		}
	}
}

func crc8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for range 8 {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}

func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x8005
			} else {
				crc <<= 1
			}
		}
	}

	return crc
}

// EncodeFLAC16 writes interleaved 16-bit samples as a FLAC stream of
// verbatim frames. Only 44.1kHz is encoded in the frame headers; other
// rates are taken from STREAMINFO. Streams are limited to 127 frames.
func EncodeFLAC16(sampleRate, channels int, samples []int16) []byte {
	frames := len(samples) / channels

	var out bytes.Buffer
	out.WriteString("fLaC")

	// STREAMINFO, last metadata block
	info := &bitWriter{}
	info.write(1, 1)
	info.write(0, 7)
	info.write(34, 24)
	info.write(flacBlockSize, 16)
	info.write(flacBlockSize, 16)
	info.write(0, 24)
	info.write(0, 24)
	info.write(uint64(sampleRate), 20)
	info.write(uint64(channels-1), 3)
	info.write(15, 5)
	info.write(uint64(frames), 36)
	info.write(0, 64)
	info.write(0, 64)
	out.Write(info.buf.Bytes())

	rateCode := uint64(0x0)
	if sampleRate == 44100 {
		rateCode = 0x9
	}

	for num, start := 0, 0; start < frames; num, start = num+1, start+flacBlockSize {
		n := min(flacBlockSize, frames-start)

		fw := &bitWriter{}
		fw.write(0x3FFE, 14)
		fw.write(0, 1)
		fw.write(0, 1) // fixed block size
		fw.write(0x7, 4)
		fw.write(rateCode, 4)
		fw.write(uint64(channels-1), 4)
		fw.write(0x4, 3) // 16 bits per sample
		fw.write(0, 1)
		fw.write(uint64(num), 8)
		fw.write(uint64(n-1), 16)
		fw.buf.WriteByte(crc8(fw.buf.Bytes()))

		for ch := range channels {
			fw.write(0x02, 8) // verbatim subframe
			for i := range n {
				fw.write(uint64(uint16(samples[(start+i)*channels+ch])), 16)
			}
		}

		frame := fw.buf.Bytes()
		out.Write(frame)
		_ = binary.Write(&out, binary.BigEndian, crc16(frame))
	}

	return out.Bytes()
}
