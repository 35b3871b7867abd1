package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	logPath    string
	reportPath string
)

// Defaults matching the classic script's working-directory artifacts.
const (
	defaultOutput     = "obsidian-vault"
	defaultLogPath    = "craft-migration.log"
	defaultReportPath = "craft-migration.db"
)

var rootCmd = &cobra.Command{
	Use:   "craft2obsidian",
	Short: "Migrate a Craft.do export into an Obsidian vault",
	Long: `craft2obsidian converts a tree of Craft .textbundle exports into an
Obsidian vault: wikilinks for internal references, per-note attachment
folders, YAML front-blocks for titles, dates, and tags.

The conversion runs in two passes. The first indexes every note's identity
so that links may point forward in the tree; the second rewrites content
against the completed index.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errHandled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", defaultLogPath, "Path of the JSONL migration log")
	rootCmd.PersistentFlags().StringVar(&reportPath, "report", defaultReportPath, "Path of the SQLite migration report")
}
