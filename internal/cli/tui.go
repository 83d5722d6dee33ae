package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strumcli/strum/internal/deps"
	"github.com/strumcli/strum/internal/errors"
	"github.com/strumcli/strum/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive browser",
	Long: `Launch the interactive terminal browser. Running strum with no
arguments does the same thing.

The browser has three panels:
  • Search - type a query, Enter to search
  • Results - pick tracks to play or enqueue
  • Queue - upcoming tracks

Keyboard shortcuts:
  Tab          Switch panel
  Enter        Play selection (Results) / play next (Queue)
  a            Add selection to queue
  n/p          Next/previous results page (Results panel)
  n            Skip to next queued track (elsewhere)
  Space        Play/Pause
  </>          Seek back/forward
  +/-          Volume down/up
  m            Mute/unmute
  ?            Help
  q, Ctrl+C    Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := deps.CheckSearchTool(); err != nil {
		return err
	}
	binary, err := deps.CheckPlayer(cfg.Player.Binary)
	if err != nil {
		return err
	}
	if err := ensureBackgroundPlayer(binary); err != nil {
		return err
	}

	return tui.Run(cfg, binary)
}

// ensureBackgroundPlayer rejects players the browser cannot drive over a
// control socket. Without one, every play would hang on a connect that can
// never succeed.
func ensureBackgroundPlayer(binary string) error {
	if deps.SupportsBackground(binary) {
		return nil
	}
	return errors.WithSuggestion(
		fmt.Errorf("%w: %s", errors.ErrUnsupportedPlayer, binary),
		"Install mpv for the interactive browser, or use 'strum play' which works with any player")
}
