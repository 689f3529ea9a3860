package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/karel-quest/internal/platform/tui"
	"github.com/vovakirdan/karel-quest/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
Leaving a level (B/Esc while paused or after the goal) returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Scoreboard
  Q            - Quit

Examples:
  karel menu
  karel menu --fps 30
  karel menu --db ./scores.db`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger("karel", true)
	defer closeLog()

	store := openStoreOrWarn(nil)
	defer store.Close()

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate)
			if err != nil || !goBack {
				return err
			}
			continue
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			logger.Error("cannot create level", "level", res.GameID, "error", err)
			continue
		}
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		back, err := tui.Run(game, store, cfg, logger)
		if err != nil || !back {
			return err
		}
	}
}
