package cli

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/strumcli/strum/internal/core"
	"github.com/strumcli/strum/internal/deps"
	"github.com/strumcli/strum/internal/mpv"
	"github.com/strumcli/strum/internal/playback"
	"github.com/strumcli/strum/internal/search"
	"golang.org/x/term"
)

var playFirst bool

var playCmd = &cobra.Command{
	Use:   "play <query>",
	Short: "Search and play a track",
	Long: `Search YouTube and play a track in the foreground.

With a terminal attached, a picker shows the top results. Otherwise the
first result plays immediately.

Examples:
  strum play "so what miles davis"
  strum play --first "lofi hip hop radio"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playFirst, "first", false, "Play the first result without asking")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := deps.CheckSearchTool(); err != nil {
		return err
	}
	binary, err := deps.CheckPlayer(cfg.Player.Binary)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	svc := search.New(query, cfg.Search.ResultsPerPage, !cfg.Search.IncludeShorts)
	if _, err := svc.EnsurePage(0); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	tracks := svc.Page(0)
	if len(tracks) == 0 {
		return fmt.Errorf("no results found for '%s'", query)
	}

	track := tracks[0]
	if !playFirst && term.IsTerminal(int(os.Stdin.Fd())) {
		track, err = pickTrack(tracks)
		if err != nil {
			return err
		}
	}

	if !deps.SupportsBackground(binary) {
		// No control socket, hand the terminal to the player.
		return runForeignPlayer(binary, track)
	}

	return playForeground(binary, track)
}

// pickTrack shows an interactive picker over the search results.
func pickTrack(tracks []core.Track) (core.Track, error) {
	options := make([]huh.Option[int], 0, len(tracks))
	for i, tr := range tracks {
		label := fmt.Sprintf("%s  [%s]  %s, %s views",
			TruncateString(tr.Title, 56),
			tr.Duration,
			TruncateString(tr.Channel, 20),
			humanize.SIWithDigits(float64(tr.Views), 1, ""),
		)
		options = append(options, huh.NewOption(label, i))
	}

	var selected int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Play which track?").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return core.Track{}, fmt.Errorf("selection cancelled: %w", err)
	}
	return tracks[selected], nil
}

// runForeignPlayer plays through a binary without IPC support.
func runForeignPlayer(binary string, track core.Track) error {
	fmt.Printf("▶ Playing: %s\n", track.Title)
	c := exec.Command(binary, track.URL())
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// playForeground runs a playback session until the track ends or the user
// interrupts.
func playForeground(binary string, track core.Track) error {
	session := playback.NewSession(func() playback.Controller {
		return mpv.NewManager(mpv.Options{Binary: binary})
	})
	session.SetDefaultVolume(cfg.Player.Volume)
	defer session.Close()

	if err := session.PlayNow(track); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}
	fmt.Printf("▶ Playing: %s [%s]\n", track.Title, track.Duration)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	ticker := time.NewTicker(time.Duration(cfg.TUI.TickMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			return nil
		case <-ticker.C:
			if err := session.Tick(); err != nil && Verbose() {
				fmt.Fprintf(os.Stderr, "tick: %v\n", err)
			}
			if !session.Active() {
				return nil
			}
		}
	}
}
