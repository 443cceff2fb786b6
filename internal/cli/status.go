package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show workspace status",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			events, err := s.ReadEvents(0)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":             s.Dir,
					"currentDocument": db.CurrentDocumentID,
					"documents":       len(db.Documents),
					"blocks":          len(db.Blocks),
					"events":          len(events),
				},
			})
		},
	}
}
