package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/ui"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/vault"
)

var indexCmd = &cobra.Command{
	Use:   "index <input>",
	Short: "Run the indexing pass only and print the resolved note map",
	Long: `Run the first migration pass over <input> without converting
anything: every bundle is parsed and the note-id → output-path map is
printed. Useful for checking how titles, daily notes, and name collisions
will resolve before committing to a migration.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	input := args[0]
	if err := validateInput(input); err != nil {
		return err
	}

	index, err := vault.BuildIndex(input)
	if err != nil {
		return handleError(ErrIndexIntegrity, err, "")
	}

	if isJSONOutput() {
		type entry struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			Path    string `json:"path"`
			IsDaily bool   `json:"is_daily,omitempty"`
		}
		entries := make([]entry, 0, index.Len())
		for _, e := range index.Entries() {
			entries = append(entries, entry{ID: e.ID, Title: e.Title, Path: e.RelPath, IsDaily: e.IsDaily})
		}
		skips := make([]map[string]string, 0, len(index.Skips()))
		for _, s := range index.Skips() {
			skips = append(skips, map[string]string{"bundle": s.Bundle, "reason": s.Reason})
		}
		outputSuccess(map[string]any{"notes": entries, "skipped": skips})
		return nil
	}

	for _, e := range index.Entries() {
		marker := " "
		if e.IsDaily {
			marker = "d"
		}
		fmt.Printf("%s %s  %s\n", ui.Hint(marker), ui.FilePath(e.RelPath), ui.Hint(e.ID))
	}
	for _, s := range index.Skips() {
		fmt.Println(ui.Warningf("skipped %s (%s)", s.Bundle, s.Reason))
	}
	fmt.Printf("\n%s indexed, %s skipped\n",
		ui.Count(index.Len(), "note", "notes"),
		ui.Count(len(index.Skips()), "bundle", "bundles"))
	return nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
