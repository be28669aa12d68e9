// tilebox is a tile-matching puzzle for the terminal.
//
// Usage:
//
//	tilebox play             - Play a game
//	tilebox scores           - Show the score history
//	tilebox serve            - Start SSH server for remote play
//	tilebox config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tilebox/scores.db)
//	--config <path>       - Load game configuration from a YAML file
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilebox/internal/config"
	"github.com/vovakirdan/tilebox/internal/games/tilebox"
	"github.com/vovakirdan/tilebox/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilebox",
	Short: "Tilebox - slide, match and clear colored tiles in your terminal",
	Long: `Tilebox is a tile-matching puzzle. Slide every tile at once, line up
three or more of the same color to clear them, and keep the board from
filling up while new tiles keep dropping in.

Available commands:
  play     - Play a game
  scores   - View the score history
  serve    - Start SSH server for remote play
  config   - Print the default configuration

Examples:
  tilebox play
  tilebox play --seed 42 --sound
  tilebox scores --plain
  tilebox serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilebox/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger from the global flags. Without --log-file,
// logs go to fallback; the local TUI passes io.Discard so nothing draws
// over the game.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig reads the game configuration honoring --config.
func loadConfig() (config.TileboxConfig, error) {
	cfg, err := config.LoadTilebox(flagConfig)
	if err != nil {
		return config.TileboxConfig{}, err
	}
	return cfg, nil
}

// newGame builds a tilebox game wired to the best score store and logger.
// store may be nil, in which case the best score lives only in memory.
func newGame(cfg config.TileboxConfig, store *storage.Store, logger *log.Logger, opts ...tilebox.Option) *tilebox.Game {
	all := []tilebox.Option{
		tilebox.WithConfig(cfg),
		tilebox.WithLogger(logger),
	}
	if store != nil {
		all = append(all, tilebox.WithBestScoreStore(storage.BestScoreKeeper{Store: store, GameID: tilebox.GameID}))
	}
	return tilebox.New(append(all, opts...)...)
}
