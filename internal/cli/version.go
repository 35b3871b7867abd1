package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version := buildinfo.Version
		if version == "" {
			version = "dev"
		}
		if isJSONOutput() {
			outputSuccess(map[string]any{
				"version": version,
				"commit":  buildinfo.Commit,
				"date":    buildinfo.Date,
			})
			return nil
		}
		fmt.Printf("craft2obsidian %s", version)
		if buildinfo.Commit != "" {
			fmt.Printf(" (%s)", buildinfo.Commit)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
