// SPDX-License-Identifier: EPL-2.0

// Package sink holds the audio output side of the engine.
//
// A Sink accepts fixed-size blocks of interleaved 16-bit stereo PCM and
// reports how many bytes are still waiting to be played. The engine only
// mixes a new block when that number is zero, so at most one block is in
// flight at a time.
//
// Queue is a device-less sink driven by explicit Drain calls, WAV renders
// offline to a file, and the otosink subpackage plays through the system
// audio device.
package sink
