// SPDX-License-Identifier: EPL-2.0

// Package formats assembles the codec registry used by the engine.
package formats

import (
	"github.com/ik5/voxmix/audio"
	"github.com/ik5/voxmix/formats/aiff"
	"github.com/ik5/voxmix/formats/flac"
	"github.com/ik5/voxmix/formats/mp3"
	"github.com/ik5/voxmix/formats/vorbis"
	"github.com/ik5/voxmix/formats/wav"
)

// NewRegistry returns a registry with every bundled codec. Registration order
// is detection order; mp3 goes last because a bare frame sync is the weakest
// signature.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("vorbis", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})
	reg.Register("mp3", mp3.Decoder{})

	return reg
}
