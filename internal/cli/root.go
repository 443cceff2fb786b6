// Package cli wires the cobra command tree: scriptable JSON-out commands
// plus the interactive TUI when no subcommand is given.
package cli

import (
	"fmt"
	"os"
	"strings"

	"scribe-cli/internal/format"
	"scribe-cli/internal/store"
	"scribe-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "scribe",
		Short:        "Scribe (local-first) block-document editor, CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  scribe

  # Scriptable commands
  scribe docs list
  scribe blocks add doc-xxxxxxxx --type paragraph --content "hello"

  # Direct document lookup (shortcut for: scribe docs show <doc-id>)
  scribe doc-xxxxxxxx
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SCRIBE_DIR", ""), "Path to the workspace dir (default: nearest .scribe/, else ./.scribe)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newBlocksCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newGuideCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	docID := db.CurrentDocumentID
	if docID == "" && len(db.Documents) > 0 {
		docID = db.Documents[0].ID
	}
	if docID == "" {
		return fmt.Errorf("no documents yet; run `scribe docs create --title ...` first")
	}
	return tui.Run(s.Dir, db, docID)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
	}
	app.Dir = dir
	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
