// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

// Origin tells where a resolved asset came from.
type Origin int

const (
	OriginFilesystem Origin = iota
	OriginArchive
)

func (o Origin) String() string {
	switch o {
	case OriginFilesystem:
		return "filesystem"
	case OriginArchive:
		return "archive"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Handle is a resolved asset: its complete bytes plus provenance. Content is
// identical whichever path produced it.
type Handle struct {
	Name   string
	Data   []byte
	Origin Origin
}

// Resolver turns a logical asset name into bytes, trying the native
// filesystem first and the archive second.
type Resolver struct {
	native  afero.Fs
	archive *Archive
}

// NewResolver builds a resolver over native (the OS filesystem when nil) and
// archive (no bundle when nil).
func NewResolver(native afero.Fs, archive *Archive) *Resolver {
	if native == nil {
		native = afero.NewOsFs()
	}

	return &Resolver{
		native:  native,
		archive: archive,
	}
}

// Filesystem is the native filesystem the resolver reads first.
func (r *Resolver) Filesystem() afero.Fs { return r.native }

func (r *Resolver) Resolve(name string) ([]byte, error) {
	h, err := r.ResolveHandle(name)
	if err != nil {
		return nil, err
	}

	return h.Data, nil
}

func (r *Resolver) ResolveHandle(name string) (Handle, error) {
	data, err := r.FromFilesystem(name)
	if err == nil {
		return Handle{Name: name, Data: data, Origin: OriginFilesystem}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Handle{}, err
	}

	data, err = r.FromArchive(name)
	if err != nil {
		return Handle{}, err
	}

	return Handle{Name: name, Data: data, Origin: OriginArchive}, nil
}

// FromFilesystem reads name from the native filesystem only. A missing file
// or a directory is ErrNotFound; other I/O errors are returned unchanged.
func (r *Resolver) FromFilesystem(name string) ([]byte, error) {
	st, err := r.native.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, name)
	}

	data, err := afero.ReadFile(r.native, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return data, nil
}

// FromArchive extracts name from the archive only.
func (r *Resolver) FromArchive(name string) ([]byte, error) {
	if r.archive == nil {
		return nil, fmt.Errorf("%w: %s (no archive)", ErrNotFound, name)
	}

	return r.archive.Extract(name)
}
