// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ik5/voxmix"
	"github.com/ik5/voxmix/asset"
	"github.com/ik5/voxmix/formats"
	"github.com/ik5/voxmix/internal/config"
	"github.com/ik5/voxmix/internal/tui"
	"github.com/ik5/voxmix/sink"
	"github.com/ik5/voxmix/voice"
	"github.com/spf13/afero"
)

// player is an engine plus the asset plumbing it was built on.
type player struct {
	engine  *voxmix.Engine
	archive *asset.Archive
	watcher *asset.Watcher
	cancel  context.CancelFunc
}

// newPlayer wires assets, decoders and the voice pool to out. The player
// owns out from here on, including on error.
func newPlayer(cfg *config.Config, fsys afero.Fs, out sink.Sink, logger *slog.Logger) (*player, error) {
	p := &player{cancel: func() {}}

	if cfg.Assets.Root != "" {
		fsys = afero.NewBasePathFs(fsys, cfg.Assets.Root)
	}

	if cfg.Assets.Archive != "" {
		a, err := asset.OpenArchive(cfg.Assets.Archive)
		if err != nil {
			out.Close()
			return nil, err
		}
		p.archive = a
	}

	resolver := asset.NewResolver(fsys, p.archive)

	// With a cache every lookup goes through it, so the pool reads nothing
	// from disk directly.
	var res voice.Resolver = resolver
	poolFsys := fsys
	if cfg.Assets.CacheTTL > 0 {
		cache := asset.NewCache(resolver, cfg.Assets.CacheTTL)
		res = cache
		poolFsys = nil

		if cfg.Assets.Watch {
			root := cfg.Assets.Root
			if root == "" {
				root = "."
			}

			w, err := asset.NewWatcher(root, cache, logger.With("component", "watcher"))
			if err != nil {
				p.close(out)
				return nil, err
			}
			p.watcher = w

			ctx, cancel := context.WithCancel(context.Background())
			p.cancel = cancel
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("asset watcher stopped", "error", err)
				}
			}()
		}
	}

	pool, err := voice.NewPool(voice.Config{
		Voices:      cfg.Engine.Voices,
		BlockFrames: cfg.Engine.BlockFrames,
	}, formats.NewRegistry(), poolFsys, res, logger.With("component", "voice"))
	if err != nil {
		p.close(out)
		return nil, err
	}

	p.engine = voxmix.New(pool, out, voxmix.WithLogger(logger))

	return p, nil
}

// open starts every track; failures are logged and skipped.
func (p *player) open(tracks []tui.Track) int {
	opened := 0
	for _, tr := range tracks {
		if _, err := p.engine.Open(tr.Name, tr.Loop); err != nil {
			slog.Warn("could not open track", "name", tr.Name, "error", err)
			continue
		}
		opened++
	}

	return opened
}

// idle reports whether every voice has finished.
func (p *player) idle() bool {
	for _, v := range p.engine.Voices() {
		if !v.Free {
			return false
		}
	}

	return true
}

// close is used before an engine exists.
func (p *player) close(out sink.Sink) {
	p.stopAssets()
	out.Close()
}

func (p *player) stopAssets() error {
	p.cancel()

	var errs []error
	if p.watcher != nil {
		errs = append(errs, p.watcher.Close())
	}
	if p.archive != nil {
		errs = append(errs, p.archive.Close())
	}

	return errors.Join(errs...)
}

// Shutdown stops the engine, then the asset plumbing.
func (p *player) Shutdown() error {
	err := p.engine.Shutdown()
	if aerr := p.stopAssets(); aerr != nil {
		err = errors.Join(err, fmt.Errorf("close assets: %w", aerr))
	}

	return err
}

// playlist builds tracks from one-shot names and looping names.
func playlist(once, loops []string) []tui.Track {
	tracks := make([]tui.Track, 0, len(once)+len(loops))
	for _, name := range loops {
		tracks = append(tracks, tui.Track{Name: name, Loop: true})
	}
	for _, name := range once {
		tracks = append(tracks, tui.Track{Name: name})
	}

	return tracks
}
