package cli

import (
	"strings"
	"time"

	"scribe-cli/internal/model"
	"scribe-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage documents",
	}
	cmd.AddCommand(newDocsListCmd(app))
	cmd.AddCommand(newDocsCreateCmd(app))
	cmd.AddCommand(newDocsShowCmd(app))
	cmd.AddCommand(newDocsOpenCmd(app))
	cmd.AddCommand(newDocsRenameCmd(app))
	cmd.AddCommand(newDocsDeleteCmd(app))
	return cmd
}

func docSummary(db *store.DB, d model.Document) map[string]any {
	return map[string]any{
		"id":        d.ID,
		"title":     d.Title,
		"locked":    d.Locked,
		"blocks":    len(db.DocumentBlocks(d.ID)),
		"current":   db.CurrentDocumentID == d.ID,
		"updatedAt": d.UpdatedAt,
	}
}

func newDocsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]map[string]any, 0, len(db.Documents))
			for _, d := range db.Documents {
				out = append(out, docSummary(db, d))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"documents": out}})
		},
	}
}

func newDocsCreateCmd(app *App) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := store.NewDocumentID(db)
			if err != nil {
				return writeErr(cmd, err)
			}
			now := time.Now().UTC()
			doc := model.Document{
				ID:        id,
				Title:     strings.TrimSpace(title),
				CreatedAt: now,
				UpdatedAt: now,
			}
			db.Documents = append(db.Documents, doc)
			if db.CurrentDocumentID == "" {
				db.CurrentDocumentID = id
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("document.create", id, map[string]any{"title": doc.Title})
			return writeOut(cmd, app, map[string]any{"data": docSummary(db, doc)})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Document title")
	return cmd
}

func newDocsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <doc-id>",
		Short: "Show a document and its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, ok := db.FindDocument(args[0])
			if !ok {
				return writeErr(cmd, store.NotFoundError{Kind: "document", ID: args[0]})
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"document": docSummary(db, *doc),
					"blocks":   db.DocumentBlocks(doc.ID),
				},
			})
		},
	}
}

func newDocsOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <doc-id>",
		Short: "Make a document the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, ok := db.FindDocument(args[0])
			if !ok {
				return writeErr(cmd, store.NotFoundError{Kind: "document", ID: args[0]})
			}
			db.CurrentDocumentID = doc.ID
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": docSummary(db, *doc)})
		},
	}
}

func newDocsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <doc-id> <title>",
		Short: "Rename a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, ok := db.FindDocument(args[0])
			if !ok {
				return writeErr(cmd, store.NotFoundError{Kind: "document", ID: args[0]})
			}
			doc.Title = strings.TrimSpace(args[1])
			doc.UpdatedAt = time.Now().UTC()
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("document.rename", doc.ID, map[string]any{"title": doc.Title})
			return writeOut(cmd, app, map[string]any{"data": docSummary(db, *doc)})
		},
	}
}

func newDocsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <doc-id>",
		Short: "Delete a document and its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc, ok := db.FindDocument(args[0])
			if !ok {
				return writeErr(cmd, store.NotFoundError{Kind: "document", ID: args[0]})
			}
			id := doc.ID

			docs := db.Documents[:0]
			for _, d := range db.Documents {
				if d.ID != id {
					docs = append(docs, d)
				}
			}
			db.Documents = docs

			blocks := db.Blocks[:0]
			removed := 0
			for _, b := range db.Blocks {
				if b.DocumentID == id {
					removed++
					continue
				}
				blocks = append(blocks, b)
			}
			db.Blocks = blocks

			if db.CurrentDocumentID == id {
				db.CurrentDocumentID = ""
				if len(db.Documents) > 0 {
					db.CurrentDocumentID = db.Documents[0].ID
				}
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("document.delete", id, map[string]any{"blocksRemoved": removed})
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": id, "blocksRemoved": removed},
			})
		},
	}
}
