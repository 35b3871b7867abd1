package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/report"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/ui"
)

var reportEvent string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the most recent migration run from the report database",
	Long: `Show the last recorded migration run: its counters and, with
--event, the individual log entries of one kind.

Event kinds: skip, unresolved_link, ghost_attachment, delete, warning.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	db, err := report.Open(reportPath)
	if err != nil {
		return handleError(ErrReportUnavailable, err, "")
	}
	defer db.Close()

	run, err := db.LastRun()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return handleError(ErrReportUnavailable,
				fmt.Errorf("no migration runs recorded in %s", reportPath),
				"Run 'craft2obsidian migrate' first")
		}
		return handleError(ErrReportUnavailable, err, "")
	}

	var events []map[string]string
	if reportEvent != "" {
		entries, err := db.Events(run.ID, reportEvent)
		if err != nil {
			return handleError(ErrReportUnavailable, err, "")
		}
		for _, e := range entries {
			events = append(events, map[string]string{
				"note_id": e.NoteID,
				"note":    e.Note,
				"bundle":  e.Bundle,
				"target":  e.Target,
				"reason":  e.Reason,
			})
		}
	}

	if isJSONOutput() {
		data := map[string]any{
			"run":                run.ID,
			"started_at":         run.StartedAt,
			"finished_at":        run.FinishedAt,
			"input":              run.Input,
			"output":             run.Output,
			"notes":              run.Notes,
			"skipped":            run.Skipped,
			"links_resolved":     run.LinksResolved,
			"links_unresolved":   run.LinksUnresolved,
			"attachments_copied": run.AttachmentCopies,
			"ghost_attachments":  run.Ghosts,
			"notes_deleted":      run.Deleted,
			"embeds_removed":     run.EmbedsRemoved,
		}
		if events != nil {
			data["events"] = events
		}
		outputSuccess(data)
		return nil
	}

	fmt.Println(ui.Header(fmt.Sprintf("Run %d — %s → %s", run.ID, run.Input, run.Output)))
	fmt.Printf("  finished %s\n", run.FinishedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("  %s converted, %s skipped\n",
		ui.Count(run.Notes, "note", "notes"), ui.Count(run.Skipped, "bundle", "bundles"))
	fmt.Printf("  %s resolved, %s unresolved\n",
		ui.Count(run.LinksResolved, "link", "links"),
		ui.Count(run.LinksUnresolved, "link", "links"))
	fmt.Printf("  %s copied, %s, %s deleted, %s removed\n",
		ui.Count(run.AttachmentCopies, "attachment", "attachments"),
		ui.Count(run.Ghosts, "ghost", "ghosts"),
		ui.Count(run.Deleted, "note", "notes"),
		ui.Count(run.EmbedsRemoved, "embed", "embeds"))

	for _, e := range events {
		line := e["reason"]
		if e["target"] != "" {
			line = e["target"] + ": " + line
		}
		where := e["note"]
		if where == "" {
			where = e["bundle"]
		}
		fmt.Printf("  %s %s %s\n", ui.Hint("·"), ui.FilePath(where), line)
	}
	return nil
}

func init() {
	reportCmd.Flags().StringVar(&reportEvent, "event", "", "Show log entries of one event kind")
	rootCmd.AddCommand(reportCmd)
}
