package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/karel-quest/internal/games/karel"
	"github.com/vovakirdan/karel-quest/internal/platform/audio"
	"github.com/vovakirdan/karel-quest/internal/platform/window"
)

var (
	flagScale  float64
	flagVolume float64
	flagMute   bool
)

var windowCmd = &cobra.Command{
	Use:   "window [level]",
	Short: "Play a level in a desktop window",
	Long: `Open a desktop window and play the specified level (default: karel).

Controls:
  Left/Right, A/D  - Walk
  Space/Up/W       - Jump
  P                - Pause
  R                - Play again (after reaching the goal)
  Esc/Q            - Quit

Examples:
  karel window
  karel window karel_classic --scale 1.5
  karel window --volume 0.3
  karel window --mute`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the 640x480 viewport")
	windowCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound effect volume from 0 to 1")
	windowCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runWindow(_ *cobra.Command, args []string) error {
	levelID := levelArg(args)
	created, err := createLevel(levelID)
	if err != nil {
		return err
	}
	game, ok := created.(*karel.Game)
	if !ok {
		return fmt.Errorf("level %q cannot run in a window", levelID)
	}

	logger, closeLog := newLogger("karel-window", false)
	defer closeLog()

	store := openStoreOrWarn(logger)
	defer store.Close()

	opts := window.Options{
		TickRate: flagFPS,
		Scale:    flagScale,
		Seed:     flagSeed,
	}
	if !flagMute {
		player, err := audio.Open(flagVolume)
		if err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer player.Close()
			opts.Cues = player
		}
	}

	return window.New(game, store, logger, opts).Run()
}
