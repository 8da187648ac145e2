package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/termtris/termtris/internal/game"
	"github.com/termtris/termtris/internal/platform/tui"
	"github.com/termtris/termtris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a round",
	Long: `Start a round of the given mode. Defaults to marathon.

Modes:
  marathon - Endless, level up every 10 lines
  sprint   - Clear 40 lines as fast as possible
  ultra    - Score as much as possible in 3 minutes

Default controls (override via --config):
  Left/A, Right/D  - Move
  Down/S           - Soft drop
  Space            - Hard drop
  Up/X, Z          - Rotate
  C                - Hold
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Examples:
  termtris play
  termtris play sprint
  termtris play ultra --config ./my-settings.yaml
  termtris play marathon --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// parseMode resolves a mode name from the command line.
func parseMode(name string) (game.Mode, error) {
	for _, mode := range game.AllModes() {
		if mode.ID() == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (marathon, sprint, ultra)", name)
}

func runPlay(cmd *cobra.Command, args []string) {
	mode := game.ModeMarathon
	if len(args) == 1 {
		var err error
		mode, err = parseMode(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := loadRuntimeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	runErr := tui.Run(mode, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
