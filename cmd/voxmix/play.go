// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/voxmix/internal/logger"
	"github.com/ik5/voxmix/internal/tui"
	"github.com/ik5/voxmix/sink/otosink"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	playLoops []string
	playTUI   bool
)

// playCmd plays tracks on the default output device
var playCmd = &cobra.Command{
	Use:   "play [track...]",
	Short: "Play tracks on the audio device",
	Long: `Play mixes the given tracks on the default output device until they
finish. Looping tracks (--loop) keep playing until interrupted.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringArrayVarP(&playLoops, "loop", "l", nil, "track to loop (repeatable)")
	playCmd.Flags().BoolVar(&playTUI, "tui", false, "interactive voice table")

	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if playTUI {
		// the terminal belongs to the TUI
		slog.SetDefault(logger.New(io.Discard, cfg.Logging.Level, cfg.Logging.Format))
	} else {
		logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	}
	log := logger.WithComponent("play")

	out, err := otosink.New(cfg.Device.Buffer)
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}

	p, err := newPlayer(cfg, afero.NewOsFs(), out, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	defer func() {
		if err := p.Shutdown(); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	tracks := playlist(args, playLoops)

	if playTUI {
		m := tui.New(p.engine, tracks, cfg.Engine.TickInterval).Start()
		if _, err := tea.NewProgram(m).Run(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	}

	if p.open(tracks) == 0 {
		return fmt.Errorf("none of %d tracks could be opened", len(tracks))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tickLoop(ctx, p, out.QueuedBytes, cfg.Engine.TickInterval, log)
}

// tickLoop drives the engine until every voice has finished and the device
// has played what was queued, or ctx is done.
func tickLoop(ctx context.Context, p *player, queued func() int, interval time.Duration, log *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("interrupted, shutting down")
			return nil

		case <-ticker.C:
			if _, err := p.engine.Tick(); err != nil {
				log.Warn("voice dropped", "error", err)
			}
			if p.idle() && queued() == 0 {
				log.Info("playback finished")
				return nil
			}
		}
	}
}
