package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/domain"
)

var (
	historyLimit int
	historyClear bool
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently asked queries",
	Long: `Lists queries asked from this machine, newest first.

History is kept locally and can be turned off with
"compass settings set history.enabled false".`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of queries (0 = configured limit)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "remove every recorded query")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output history as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if historyClear {
		if err := historyService.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		cmd.Println("History cleared.")
		return nil
	}

	records, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No queries recorded.")
		return nil
	}

	for i := range records {
		rec := &records[i]
		cmd.Printf("  %s  %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Query)
		cmd.Printf("      %s", domain.ResultCountText(rec.TotalResults, rec.ThemeCount))
		if f := rec.Filters.Summary(); f != "" {
			cmd.Printf("  (%s)", f)
		}
		cmd.Println()
	}
	return nil
}
