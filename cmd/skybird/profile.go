package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/storage"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show a player's progression",
	Long: `Print the saved progression of the --player profile. Players without
saved progress show the defaults a first flight would start with.

Examples:
  skybird profile
  skybird profile --player ann
  skybird profile --all`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

var flagProfileAll bool

func init() {
	profileCmd.Flags().BoolVar(&flagProfileAll, "all", false, "List every player with saved progress")
}

func runProfile(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagProfileAll {
		players, err := store.Players()
		if err != nil {
			return err
		}
		if len(players) == 0 {
			fmt.Fprintln(out, "No saved profiles.")
			return nil
		}
		for _, name := range players {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	p, found, err := loadProfile(store, flagPlayer)
	if err != nil {
		return err
	}

	printProfile(out, flagPlayer, p, found)
	return nil
}

// printProfile writes a human readable progression summary.
func printProfile(out io.Writer, player string, p progress.Profile, found bool) {
	fmt.Fprintf(out, "Profile - %s", player)
	if !found {
		fmt.Fprint(out, " (new)")
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  Level        %d (%s / %s xp)\n", p.Level,
		humanize.Comma(int64(p.Experience)), humanize.Comma(int64(p.ExperienceToNext())))
	fmt.Fprintf(out, "  High score   %s\n", humanize.Comma(int64(p.HighScore)))
	fmt.Fprintf(out, "  Coins        %s\n", humanize.Comma(int64(p.Coins)))
	fmt.Fprintf(out, "  Skin         %s (%d owned)\n", p.SelectedSkin, len(p.OwnedSkins))

	achievements := "none yet"
	if len(p.Achievements) > 0 {
		achievements = strings.Join(p.Achievements, ", ")
	}
	fmt.Fprintf(out, "  Achievements %s\n", achievements)

	if p.ConsecutiveDays > 0 {
		fmt.Fprintf(out, "  Daily streak %s (last reward %s)\n",
			english.Plural(p.ConsecutiveDays, "day", "days"), humanize.Time(p.LastDailyReward))
	}
}

// loadProfile returns the stored profile or the defaults.
func loadProfile(store *storage.Store, player string) (progress.Profile, bool, error) {
	p, found, err := store.LoadProfile(player)
	if err != nil {
		return progress.Profile{}, false, err
	}
	if !found {
		return progress.DefaultProfile(), false, nil
	}
	return p, true, nil
}
