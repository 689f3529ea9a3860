package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/karel-quest/internal/platform/tui"
	"github.com/vovakirdan/karel-quest/internal/registry"
	"github.com/vovakirdan/karel-quest/internal/storage"
)

const stampLayout = "2006-01-02 15:04"

var (
	flagScoresLimit int
	flagClearScores bool
	flagAllScores   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores and run history",
	Long: `Display the top high scores and the most recent runs for a level
(default: karel). With --all, prints a summary for every level that has
been played.

Examples:
  karel scores
  karel scores karel_classic --limit 20
  karel scores --all
  karel scores karel --clear`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores and runs to show")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "Summarize every level")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores and runs for the level")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagAllScores {
		return printAllStats(out, store)
	}

	levelID := levelArg(args)
	if !registry.Exists(levelID) {
		return fmt.Errorf("unknown level %q (run 'karel list' to see available levels)", levelID)
	}

	if flagClearScores {
		if err := store.ClearScores(levelID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores and runs for %s.\n", levelID)
		return nil
	}
	return printLevel(out, store, levelID, flagScoresLimit, flagFPS)
}

func levelTitle(id string) string {
	if info, ok := registry.Lookup(id); ok {
		return info.Title
	}
	return id
}

// printLevel writes the high score table, recent runs and records of one level.
func printLevel(out io.Writer, store *storage.Store, levelID string, limit, tickRate int) error {
	scores, err := store.TopScores(levelID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", levelTitle(levelID))
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "\nPlay 'karel play %s' and reach the goal to set the first high score!\n", levelID)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Rank\tScore\tDate")
	for i, e := range scores {
		fmt.Fprintf(tw, "  %d\t%d\t%s\n", i+1, e.Score, e.CreatedAt.Format(stampLayout))
	}
	tw.Flush()

	runs, err := store.RecentRuns(levelID, limit)
	if err != nil {
		return err
	}
	if len(runs) > 0 {
		fmt.Fprintln(out, "\nRecent runs:")
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, r := range runs {
			result := "gave up"
			if r.Won {
				result = "won"
			}
			fmt.Fprintf(tw, "  %s\t%d pts\t%d/%d beepers\t%s\t%s\n",
				result, r.Score, r.Collected, r.Total,
				tui.FormatTicks(r.Ticks, tickRate), r.CreatedAt.Format(stampLayout))
		}
		tw.Flush()
	}

	fmt.Fprintln(out)
	fastest, err := store.FastestWin(levelID)
	if err != nil {
		return err
	}
	if fastest != nil {
		fmt.Fprintf(out, "Fastest win: %s (%d pts)\n", tui.FormatTicks(fastest.Ticks, tickRate), fastest.Score)
	}
	fmt.Fprintf(out, "Best: %d\n", scores[0].Score)
	return nil
}

// printAllStats writes one summary line per played level, in registry order.
func printAllStats(out io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No levels played yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Level\tScores\tBest\tAverage\tRuns\tWins\tLast played")
	for _, l := range registry.List() {
		s, ok := all[l.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%.1f\t%d\t%d\t%s\n",
			l.ID, s.GamesCount, s.HighScore, s.AvgScore, s.Runs, s.Wins, s.LastPlayed.Format(stampLayout))
	}
	return tw.Flush()
}
