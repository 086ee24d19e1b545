// SPDX-License-Identifier: EPL-2.0

// Package voxmix is a small real-time mixing engine for games and other
// interactive programs.
//
// The host calls Engine.Tick once per frame. A tick pulls one block of
// 1024 stereo frames from every playing voice, sums them in 32 bits,
// saturates the result to 16 bits and hands the block to the output sink.
// Ticks are skipped while the sink still has audio queued, so at most one
// block is ever in flight.
//
// # Supported Formats
//
// Assets are recognized by their header, not their name:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - AIFF via formats/aiff
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//   - MP3 via formats/mp3
//
// Every stream must already be 44.1kHz mono or stereo; the engine does not
// resample.
//
// # Quick Start
//
//	arc, _ := asset.OpenArchive("data.zip")
//	res := asset.NewResolver(afero.NewOsFs(), arc)
//
//	pool, _ := voice.NewPool(voice.DefaultConfig(), formats.NewRegistry(),
//	    res.Filesystem(), res, nil)
//	out, _ := otosink.New(50 * time.Millisecond)
//
//	eng := voxmix.New(pool, out)
//	defer eng.Shutdown()
//
//	id, err := eng.Open("music/theme.ogg", true)
//	if errors.Is(err, voice.ErrPoolExhausted) {
//	    // all voices busy, try later
//	}
//
//	for running {
//	    if _, err := eng.Tick(); err != nil {
//	        log.Println(err)
//	    }
//	    // draw frame...
//	}
//
// # Voices
//
// The pool has a fixed number of slots (5 by default). Open takes the lowest
// free slot and fails with voice.ErrPoolExhausted when none is left; it
// never evicts. A looping voice restarts when its stream ends, leaving one
// silent block at the seam. A one-shot voice frees its slot on its last
// block.
//
// # Muting
//
// SetDeviceMuted pauses the output device as a whole and is unrelated to
// voice slots. The device starts muted and is unmuted by the first
// successful Open unless the host muted it explicitly.
package voxmix
