// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"sync"

	"github.com/spf13/afero"
	"github.com/spf13/afero/zipfs"
)

// Archive is a read-only zip bundle opened once and shared by every
// resolution. Extract returns a freshly allocated copy of an entry, so no
// state is shared between callers.
type Archive struct {
	fs     afero.Fs
	names  map[string]struct{} // file entries, exactly as stored
	closer io.Closer

	mtx    *sync.RWMutex
	closed bool
}

// OpenArchive opens the zip file at name. The file stays open until Close.
func OpenArchive(name string) (*Archive, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	a, err := NewArchive(f, st.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	a.closer = f

	return a, nil
}

// NewArchive reads a zip container from r, which must stay valid for the
// lifetime of the Archive.
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	names := make(map[string]struct{}, len(zr.File))
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			names[f.Name] = struct{}{}
		}
	}

	return &Archive{
		fs:    zipfs.New(zr),
		names: names,
		mtx:   &sync.RWMutex{},
	}, nil
}

// Extract returns the full uncompressed content of the entry name, looked up
// by its exact path inside the container: no cleaning, so "./a.wav" and
// "/a.wav" do not match "a.wav". Directories are reported as missing.
func (a *Archive) Extract(name string) ([]byte, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()

	if a.closed {
		return nil, ErrArchiveClosed
	}

	if _, ok := a.names[name]; !ok {
		return nil, fmt.Errorf("%w: %s in archive", ErrNotFound, name)
	}

	st, err := a.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s in archive", ErrNotFound, name)
		}
		return nil, fmt.Errorf("archive %s: %w", name, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s in archive is a directory", ErrNotFound, name)
	}

	data, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}

	return data, nil
}

// Names lists the file entries of the archive, sorted.
func (a *Archive) Names() []string {
	a.mtx.RLock()
	defer a.mtx.RUnlock()

	out := make([]string, 0, len(a.names))
	for name := range a.names {
		out = append(out, name)
	}
	slices.Sort(out)

	return out
}

// Close releases the underlying file when the archive was opened by
// OpenArchive. Extract fails afterwards.
func (a *Archive) Close() error {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	if a.closer != nil {
		return a.closer.Close()
	}

	return nil
}
