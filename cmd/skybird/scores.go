package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybird/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresMine  bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the leaderboard (best run per player) or, with --mine, the
best runs of the --player profile.

Examples:
  skybird scores
  skybird scores --mine --player ann
  skybird scores --mine --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows")
	scoresCmd.Flags().BoolVar(&flagScoresMine, "mine", false, "Show only the --player profile's runs")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the --player profile's score history")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearScores(flagPlayer); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", flagPlayer)
		return nil
	}

	var (
		scores []storage.ScoreEntry
		title  string
	)
	if flagScoresMine {
		title = "High Scores - " + flagPlayer
		scores, err = store.TopScores(flagPlayer, flagScoresLimit)
	} else {
		title = "Leaderboard"
		scores, err = store.Leaderboard(flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'skybird play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-8s  %-5s  %s\n", "Rank", "Player", "Score", "Level", "When")
	fmt.Fprintf(out, "  %-4s  %-16s  %-8s  %-5s  %s\n", "----", "------", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-16s  %-8s  %-5d  %s\n",
			i+1, e.Player, humanize.Comma(int64(e.Score)), e.Level, humanize.Time(e.CreatedAt))
	}

	if flagScoresMine {
		stats, err := store.Stats(flagPlayer)
		if err == nil && stats != nil {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Best: %s  Flights: %s  Average: %.1f  Last played: %s\n",
				humanize.Comma(int64(stats.HighScore)), humanize.Comma(int64(stats.GamesCount)),
				stats.AvgScore, humanize.Time(stats.LastPlayed))
		}
	}
	return nil
}
