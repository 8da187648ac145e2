package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termtris/termtris/internal/game"
	"github.com/termtris/termtris/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 results for the given mode. Defaults to marathon.
Sprint is ranked by completion time, the other modes by points.

Examples:
  termtris scores
  termtris scores sprint`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	mode := game.ModeMarathon
	if len(args) == 1 {
		var err error
		mode, err = parseMode(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var scores []storage.ScoreEntry
	if mode == game.ModeSprint {
		scores, err = store.BestSprints(10)
	} else {
		scores, err = store.TopScores(mode.ID(), 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n\n", mode.Name())

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'termtris play %s' to set the first high score!\n", mode.ID())
		return
	}

	if mode == game.ModeSprint {
		fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "Rank", "Time", "Score", "Date")
		fmt.Printf("  %-4s  %-12s  %-10s  %s\n", "----", "----", "-----", "----")
		for i, entry := range scores {
			ms := entry.DurationMs
			timeStr := fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms%60000)/1000, ms%1000)
			fmt.Printf("  %-4d  %-12s  %-10d  %s\n",
				i+1, timeStr, entry.Points, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "Rank", "Score", "Lines", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "----", "-----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-6d  %-6d  %s\n",
			i+1, entry.Points, entry.Lines, entry.Level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(mode.ID()); err == nil && best > 0 {
		fmt.Printf("Best: %d\n", best)
	}
}
