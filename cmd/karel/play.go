package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/karel-quest/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level in the terminal",
	Long: `Start playing the specified level (default: karel).

Controls:
  Left/Right, A/D  - Walk
  Space/Up/W       - Jump
  P                - Pause
  R                - Play again (after reaching the goal)
  B/Esc            - Leave (while paused or after the goal)
  Ctrl+S           - Save a screenshot to ~/.karel/screenshots
  Q/Ctrl+C         - Quit

Examples:
  karel play
  karel play karel_classic
  karel play --config ./my-karel.yaml
  karel play --debug --log-file karel.log`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	game, err := createLevel(levelArg(args))
	if err != nil {
		return err
	}

	logger, closeLog := newLogger("karel", true)
	defer closeLog()

	store := openStoreOrWarn(nil)
	defer store.Close()

	_, err = tui.Run(game, store, runtimeConfig(), logger)
	return err
}
