package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skybird/internal/progress"
	"github.com/vovakirdan/skybird/internal/skins"
	"github.com/vovakirdan/skybird/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List visual themes",
	Long:  `Shows every theme and marks the one the clock selects right now.`,
	Args:  cobra.NoArgs,
	Run:   runThemes,
}

var skinsCmd = &cobra.Command{
	Use:   "skins [select <id>]",
	Short: "List skins or select an owned one",
	Long: `Without arguments, lists every skin with its price and whether the
--player profile owns it. "select <id>" switches to an owned skin.

Examples:
  skybird skins
  skybird skins select cardinal --player ann`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runSkins,
}

func runThemes(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	current := theme.ForTime(time.Now()).ID

	fmt.Fprintln(out, "Themes:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-8s  %-8s  %s\n", "ID", "Name", "Sky")
	fmt.Fprintf(out, "  %-8s  %-8s  %s\n", "--", "----", "---")
	for _, t := range theme.All() {
		marker := ""
		if t.ID == current {
			marker = "  <- now"
		}
		fmt.Fprintf(out, "  %-8s  %-8s  %s%s\n", t.ID, t.Name, t.Background, marker)
	}
}

func runSkins(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	p, _, err := loadProfile(store, flagPlayer)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		if args[0] != "select" || len(args) != 2 {
			return fmt.Errorf("usage: skybird skins select <id>")
		}
		t := progress.NewTracker(p)
		if !t.SelectSkin(args[1]) {
			return fmt.Errorf("skin %q is unknown or not owned by %s", args[1], flagPlayer)
		}
		if err := store.SaveProfile(flagPlayer, t.Profile()); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s now flies as %s.\n", flagPlayer, skins.Lookup(args[1]).Name)
		return nil
	}

	fmt.Fprintf(out, "Skins - %s (%s coins)\n", flagPlayer, humanize.Comma(int64(p.Coins)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-8s  %-8s  %6s  %-8s  %s\n", "ID", "Name", "Price", "Status", "Description")
	fmt.Fprintf(out, "  %-8s  %-8s  %6s  %-8s  %s\n", "--", "----", "-----", "------", "-----------")
	for _, s := range skins.Status(p.Coins, p.OwnedSkins) {
		status := "locked"
		switch {
		case s.ID == p.SelectedSkin:
			status = "selected"
		case s.Owned:
			status = "owned"
		case s.Unlocked:
			status = "buyable"
		}
		fmt.Fprintf(out, "  %-8s  %-8s  %6s  %-8s  %s\n", s.ID, s.Name, humanize.Comma(int64(s.Price)), status, s.Description)
	}
	return nil
}
