package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/audit"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/config"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/migrate"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/report"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/ui"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/vault"
)

var (
	migrateOverwrite     bool
	migrateProvenance    bool
	migrateCleanBroken   bool
	migrateDeleteEmpty   bool
	migrateSkipReporting bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <input> [output]",
	Short: "Convert a Craft export tree into an Obsidian vault",
	Long: `Convert every .textbundle under <input> into markdown notes under
[output] (default "obsidian-vault").

All decisions are resolved before the engine runs: flags override the
optional TOML config file, and the engine itself never prompts.

Examples:
  craft2obsidian migrate "./input/Corys Space"
  craft2obsidian migrate ./export ./vault --overwrite --provenance-tag
  craft2obsidian migrate ./export --config migration.toml --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := defaultOutput
	if len(args) == 2 {
		output = args[1]
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Fix the config file and try again")
	}

	if err := validateInput(input); err != nil {
		return err
	}

	log := audit.New(logPath, true)
	pipeline := migrate.New(input, output, *cfg, log)

	index, err := pipeline.BuildIndex()
	if err != nil {
		return handleError(ErrIndexIntegrity, err, "Two bundles share one identifier; fix the export and rerun")
	}
	if !isJSONOutput() {
		fmt.Println(ui.Infof("Indexed %s (%s)",
			ui.Count(index.Len(), "note", "notes"),
			ui.Count(len(index.Skips()), "bundle skipped", "bundles skipped")))
	}

	summary, err := pipeline.Run()
	if err != nil {
		switch {
		case errors.Is(err, migrate.ErrOutputNotEmpty):
			return handleError(ErrOutputNotEmpty, err, "Pass --overwrite to clear it, or choose another output")
		default:
			return handleError(ErrWriteFailed, err, "")
		}
	}

	if !migrateSkipReporting {
		if err := recordReport(input, output, summary, log); err != nil && !isJSONOutput() {
			fmt.Fprintln(os.Stderr, ui.Warningf("report not recorded: %v", err))
		}
	}

	return outputSummary(output, summary)
}

// resolveConfig loads the TOML config and applies flag overrides. A flag the
// user actually set beats the file; unset flags leave the file value alone.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.OverwriteOutput = migrateOverwrite
	}
	if cmd.Flags().Changed("provenance-tag") {
		cfg.AddProvenanceTag = migrateProvenance
	}
	if cmd.Flags().Changed("clean-broken-images") {
		cfg.RemoveBrokenImageLinks = migrateCleanBroken
	}
	if cmd.Flags().Changed("delete-empty") {
		cfg.DeleteEmptyNotes = migrateDeleteEmpty
	}
	return cfg, nil
}

// validateInput rejects a missing input directory or one without any
// bundles, before anything is written.
func validateInput(input string) error {
	st, err := os.Stat(input)
	if err != nil || !st.IsDir() {
		return handleError(ErrInputNotFound,
			fmt.Errorf("input directory not found: %s", input), "")
	}

	found := errors.New("found")
	err = vault.WalkBundles(input, func(vault.BundleVisit) error { return found })
	if !errors.Is(err, found) {
		return handleError(ErrNoBundlesFound,
			fmt.Errorf("no .textbundle exports found in %s", input),
			"Point the command at the root of an unzipped Craft export")
	}
	return nil
}

// recordReport persists the run into the SQLite report database.
func recordReport(input, output string, summary *migrate.Summary, log *audit.Logger) error {
	db, err := report.Open(reportPath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.RecordRun(report.RunSummary{
		StartedAt:        summary.StartedAt,
		FinishedAt:       summary.FinishedAt,
		Input:            input,
		Output:           output,
		Notes:            summary.Notes,
		Skipped:          summary.Skipped,
		LinksResolved:    summary.LinksResolved,
		LinksUnresolved:  summary.LinksUnresolved,
		AttachmentCopies: summary.AttachmentCopies,
		Ghosts:           summary.Ghosts,
		Deleted:          summary.Deleted,
		EmbedsRemoved:    summary.EmbedsRemoved,
	}, log.Entries())
	return err
}

// outputSummary prints the final run accounting.
func outputSummary(output string, s *migrate.Summary) error {
	if isJSONOutput() {
		outputSuccess(map[string]any{
			"output":             output,
			"notes":              s.Notes,
			"skipped":            s.Skipped,
			"links_resolved":     s.LinksResolved,
			"links_unresolved":   s.LinksUnresolved,
			"attachments_copied": s.AttachmentCopies,
			"ghost_attachments":  s.Ghosts,
			"notes_deleted":      s.Deleted,
			"embeds_removed":     s.EmbedsRemoved,
		})
		return nil
	}

	fmt.Println(ui.Successf("Converted %s into %s",
		ui.Count(s.Notes, "note", "notes"), ui.FilePath(output)))
	fmt.Printf("  %s resolved, %s unresolved\n",
		ui.Count(s.LinksResolved, "link", "links"),
		ui.Count(s.LinksUnresolved, "link", "links"))
	fmt.Printf("  %s copied, %s\n",
		ui.Count(s.AttachmentCopies, "attachment", "attachments"),
		ui.Count(s.Ghosts, "ghost", "ghosts"))
	if s.Deleted > 0 || s.EmbedsRemoved > 0 {
		fmt.Printf("  cleanup: %s deleted, %s removed\n",
			ui.Count(s.Deleted, "empty note", "empty notes"),
			ui.Count(s.EmbedsRemoved, "broken embed", "broken embeds"))
	}
	if s.Skipped > 0 {
		fmt.Println(ui.Warningf("%s skipped — see %s",
			ui.Count(s.Skipped, "bundle", "bundles"), logPath))
	}
	return nil
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateOverwrite, "overwrite", false, "Clear a non-empty output directory before writing")
	migrateCmd.Flags().BoolVar(&migrateProvenance, "provenance-tag", false, "Tag every note with source/craft")
	migrateCmd.Flags().BoolVar(&migrateCleanBroken, "clean-broken-images", false, "Strip embeds whose image is missing from the export")
	migrateCmd.Flags().BoolVar(&migrateDeleteEmpty, "delete-empty", false, "Delete notes that are empty after conversion")
	migrateCmd.Flags().BoolVar(&migrateSkipReporting, "no-report", false, "Skip writing the SQLite migration report")
	rootCmd.AddCommand(migrateCmd)
}
