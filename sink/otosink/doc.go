// SPDX-License-Identifier: EPL-2.0

// Package otosink is a sink.Sink backed by github.com/ebitengine/oto/v3.
//
// One oto player reads from an internal FIFO of little-endian PCM. Push
// appends to the FIFO and QueuedBytes reports what the player has not taken
// yet. When the FIFO is empty the player receives silence, so an engine that
// ticks too slowly is heard as a gap rather than a device error.
//
// Muting pauses the player; queued audio stays in the FIFO until playback
// resumes.
//
// Build with -tags headless to drop the device dependency; New then returns
// ErrUnavailable.
package otosink
