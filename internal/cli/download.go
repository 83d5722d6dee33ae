package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/strumcli/strum/internal/deps"
	"github.com/strumcli/strum/internal/search"
	"golang.org/x/term"
)

var (
	downloadFirst bool
	downloadDir   string
)

var downloadCmd = &cobra.Command{
	Use:   "download <query>",
	Short: "Search and save a track to disk",
	Long: `Search YouTube and download a track's audio into the download
directory (download.dir, default ~/Music/strum).

With a terminal attached, a picker shows the top results. Otherwise the
first result is downloaded.

Examples:
  strum download "so what miles davis"
  strum download --first --dir /tmp "lofi hip hop"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().BoolVar(&downloadFirst, "first", false, "Download the first result without asking")
	downloadCmd.Flags().StringVar(&downloadDir, "dir", "", "Destination directory (default: download.dir)")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if err := deps.CheckSearchTool(); err != nil {
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
	if !downloadFirst && term.IsTerminal(int(os.Stdin.Fd())) {
		var err error
		track, err = pickTrack(tracks)
		if err != nil {
			return err
		}
	}

	dir := downloadDir
	if dir == "" {
		dir = cfg.Download.Dir
	}
	dl := search.NewDownloader(dir)

	if !JSONOutput() {
		fmt.Printf("⬇ Downloading: %s [%s]\n", track.Title, track.Duration)
	}
	if err := dl.Download(track); err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "downloaded",
			"id":     track.ID,
			"title":  track.Title,
			"dir":    dl.Dir(),
		})
	}
	fmt.Printf("Saved to %s\n", dl.Dir())
	return nil
}
