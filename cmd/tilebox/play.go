package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilebox/internal/core"
	"github.com/vovakirdan/tilebox/internal/games/tilebox"
	"github.com/vovakirdan/tilebox/internal/platform/tui"
	"github.com/vovakirdan/tilebox/internal/sound"
	"github.com/vovakirdan/tilebox/internal/storage"
)

var (
	flagSound  bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of tilebox.

Controls:
  Arrows/WASD/HJKL  - Slide all tiles
  P/Esc             - Pause
  Enter/Space/R     - New game (after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Examples:
  tilebox play
  tilebox play --seed 7
  tilebox play --sound --volume 0.3
  tilebox play --config ./my-tilebox.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("tilebox", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Scores are optional; play on without them.
		logger.Warn("could not open scores database", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	var opts []tilebox.Option
	if flagSound {
		player := sound.NewPlayer(flagVolume, logger.WithPrefix("sound"))
		if err := player.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Sound disabled: %v\n", err)
		} else {
			defer player.Close()
			opts = append(opts, tilebox.WithListener(player))
		}
	}

	game := newGame(gameCfg, store, logger, opts...)

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if err := tui.Run(game, store, cfg, logger); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}
