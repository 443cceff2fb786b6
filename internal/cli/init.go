package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a .scribe workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":         app.Dir,
					"dbPath":      filepath.Join(app.Dir, "db.json"),
					"eventsPath":  filepath.Join(app.Dir, "events.jsonl"),
					"sessionPath": filepath.Join(app.Dir, "session.sqlite"),
				},
			})
		},
	}
}
