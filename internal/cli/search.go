package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/strumcli/strum/internal/deps"
	"github.com/strumcli/strum/internal/search"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search YouTube and list results",
	Long: `Search YouTube for audio tracks and print the results.

Examples:
  strum search "miles davis so what"
  strum search --limit 25 "lofi hip hop"
  strum search --json "bill evans" | jq '.[].id'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Number of results (default: search.results_per_page)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := deps.CheckSearchTool(); err != nil {
		return err
	}

	limit := searchLimit
	if limit <= 0 {
		limit = cfg.Search.ResultsPerPage
	}

	query := strings.Join(args, " ")
	svc := search.New(query, limit, !cfg.Search.IncludeShorts)
	if _, err := svc.EnsurePage(0); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	tracks := svc.Page(0)

	if len(tracks) == 0 {
		if !JSONOutput() {
			fmt.Println("No results found.")
		}
		return nil
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(tracks)
	}

	table := NewTable(os.Stdout, "#", "TITLE", "CHANNEL", "DURATION", "VIEWS")
	for i, tr := range tracks {
		table.Row(
			strconv.Itoa(i+1),
			TruncateString(tr.Title, 60),
			TruncateString(tr.Channel, 24),
			tr.Duration,
			humanize.SIWithDigits(float64(tr.Views), 1, ""),
		)
	}
	table.Flush()

	return nil
}
