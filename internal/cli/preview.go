package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/bundle"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/migrate"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/ui"
	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/vault"
)

var previewRaw bool

var previewCmd = &cobra.Command{
	Use:   "preview <input> <bundle>",
	Short: "Convert one bundle and render the result without writing",
	Long: `Convert a single .textbundle against the full index of <input> and
render the resulting note to the terminal. No files are written and no
attachments are copied; embed references show their would-be destinations.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	input, bundlePath := args[0], args[1]
	if err := validateInput(input); err != nil {
		return err
	}

	index, err := vault.BuildIndex(input)
	if err != nil {
		return handleError(ErrIndexIntegrity, err, "")
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	content, err := migrate.Preview(index, bundlePath, *cfg)
	if err != nil {
		switch {
		case errors.Is(err, bundle.ErrMalformed), errors.Is(err, bundle.ErrEncrypted):
			return handleError(ErrBundleUnreadable, err, "")
		default:
			return handleError(ErrInvalidInput, err, "The bundle must live under the input tree")
		}
	}

	if isJSONOutput() {
		outputSuccess(map[string]any{"content": content})
		return nil
	}
	if previewRaw {
		fmt.Print(content)
		return nil
	}

	rendered, err := ui.RenderMarkdown(content)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}
	fmt.Print(rendered)
	return nil
}

func init() {
	previewCmd.Flags().BoolVar(&previewRaw, "raw", false, "Print the raw markdown instead of rendering it")
	previewCmd.Flags().BoolVar(&migrateProvenance, "provenance-tag", false, "Tag the note with source/craft")
	rootCmd.AddCommand(previewCmd)
}
