// SPDX-License-Identifier: EPL-2.0

// Package asset resolves logical asset names to complete byte buffers.
//
// A Resolver looks on the native filesystem first and falls back to a
// read-only zip Archive bundled with the application. Either way the result
// is the whole asset or an error; there are no partial reads. When neither
// location has the name the error wraps ErrNotFound.
//
//	arc, err := asset.OpenArchive("data.zip")
//	if err != nil {
//	    // startup failure, nothing can play
//	}
//	defer arc.Close()
//
//	res := asset.NewResolver(afero.NewBasePathFs(afero.NewOsFs(), "assets"), arc)
//	data, err := res.Resolve("sfx/jump.ogg")
//
// # Archive
//
// The archive is opened once and only read afterwards. Entries are looked up
// by their exact path inside the container and every Extract returns a fresh
// buffer, so callers may keep or modify what they get.
//
// # Caching
//
// Cache wraps any resolver with an in-memory TTL store
// (github.com/patrickmn/go-cache). Watcher uses fsnotify to drop cached
// entries when the files behind them change on disk.
package asset
