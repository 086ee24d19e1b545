// SPDX-License-Identifier: EPL-2.0

package otosink

import (
	"encoding/binary"
	"sync"

	"github.com/ik5/voxmix/audio"
)

const frameBytes = audio.Channels * audio.BytesPerSample

// fifo is the io.Reader handed to the oto player. Pushed PCM is read back in
// order; once it runs dry the reader pads with silence, so the player never
// sees a short read.
type fifo struct {
	mtx  sync.Mutex
	data []byte
}

func (f *fifo) push(block []int16) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	for _, s := range block {
		f.data = binary.LittleEndian.AppendUint16(f.data, uint16(s))
	}
}

func (f *fifo) queued() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	return len(f.data)
}

func (f *fifo) Read(p []byte) (int, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	// keep frames whole so channels never swap
	n := min(len(f.data), len(p)) / frameBytes * frameBytes
	copy(p, f.data[:n])
	f.data = f.data[n:]
	if len(f.data) == 0 {
		f.data = f.data[:0:0]
	}

	clear(p[n:])

	return len(p), nil
}
