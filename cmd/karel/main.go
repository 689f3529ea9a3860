// karel runs Karel's Code Quest, a side-scrolling platformer, in the
// terminal, in a desktop window, or over SSH.
//
// Usage:
//
//	karel list              - List available levels
//	karel play [level]      - Play a level in the terminal
//	karel window [level]    - Play a level in a desktop window
//	karel menu              - Pick levels interactively
//	karel serve             - Start SSH server for remote play
//	karel scores [level]    - Show high scores and run history
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible screen shake
//	--db <path>        - Set database path (default: ~/.karel/scores.db)
//	--config <path>    - Load a custom karel.yaml
//	--debug            - Log at debug level
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/karel-quest/internal/core"
	"github.com/vovakirdan/karel-quest/internal/games/karel"
	"github.com/vovakirdan/karel-quest/internal/registry"
	"github.com/vovakirdan/karel-quest/internal/storage"
)

// defaultLevel is played when no level is named.
const defaultLevel = "karel"

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagDebug   bool
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "karel",
	Short: "Karel's Code Quest - a side-scrolling platformer",
	Long: `Karel's Code Quest is a side-scrolling platformer: walk and jump Karel
across platforms, collect beepers and reach the goal.

Available commands:
  list     - Show all available levels
  play     - Play a level in the terminal
  window   - Play a level in a desktop window
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View high scores and run history

Examples:
  karel list
  karel play
  karel play karel_classic
  karel window --fps 60
  karel serve --ssh :2222
  karel scores karel`,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		karel.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.karel/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom karel.yaml")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the command logger. Terminal shells own the screen, so
// without --log-file they pass ownsTerminal and logs are discarded.
// The returned close function must be called before exit.
func newLogger(prefix string, ownsTerminal bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
			w = io.Discard
			break
		}
		w = f
		closeFn = func() { f.Close() }
	case ownsTerminal:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// levelArg returns the level named on the command line, or the default.
func levelArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultLevel
}

// createLevel builds a registered level by ID.
func createLevel(id string) (registry.Game, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown level %q (run 'karel list' to see available levels)", id)
	}
	return registry.Create(id)
}

// openStoreOrWarn opens the scores database. Levels still play without it,
// so a failure is only reported: through logger if given, else on stderr.
// The returned store may be nil; Close on nil is a no-op.
func openStoreOrWarn(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err == nil {
		return store
	}
	if logger != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	}
	return nil
}
