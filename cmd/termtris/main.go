// termtris is a guideline Tetris for the terminal.
//
// Usage:
//
//	termtris play [mode]     - Play a round (marathon, sprint, ultra)
//	termtris menu            - Interactive mode picker
//	termtris serve           - Start SSH server for online play
//	termtris scores [mode]   - Show high scores
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for a reproducible piece sequence
//	--db <path>      - Set database path (default: ~/.termtris/scores.db)
//	--config <path>  - Path to a custom settings YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termtris/termtris/internal/config"
	"github.com/termtris/termtris/internal/platform/tui"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termtris",
	Short: "Termtris - guideline Tetris in your terminal",
	Long: `Termtris is a terminal Tetris with SRS rotation, hold, ghost piece,
T-spin scoring, and three single-player modes. Host it over SSH to
play versus matches against other connected players.

Available commands:
  play     - Play a round directly
  menu     - Interactive mode picker
  serve    - Start SSH server for online play
  scores   - View high scores

Examples:
  termtris play marathon
  termtris play sprint
  termtris menu
  termtris serve --ssh :2222
  termtris scores sprint`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.termtris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom settings YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadRuntimeConfig loads settings and builds the shared runtime config.
func loadRuntimeConfig() (tui.RuntimeConfig, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return tui.RuntimeConfig{}, err
	}

	cfg := tui.DefaultRuntimeConfig(settings)
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg, nil
}
