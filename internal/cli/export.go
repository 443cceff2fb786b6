package cli

import (
	"fmt"

	"scribe-cli/internal/export"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var includeInvalid bool
	cmd := &cobra.Command{
		Use:   "export <doc-id>",
		Short: "Render a document as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			md, err := export.RenderDocumentMarkdown(db, args[0], export.RenderOptions{
				IncludeInvalid: includeInvalid,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			// Markdown goes out raw; JSON would wreck piping to files/pagers.
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	cmd.Flags().BoolVar(&includeInvalid, "include-invalid", false, "Include blocks whose validity flag is off")
	return cmd
}
