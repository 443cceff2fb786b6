package cli

import (
	"fmt"
	"strings"

	"scribe-cli/internal/editor"
	"scribe-cli/internal/model"
	"scribe-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBlocksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Manage blocks inside a document",
	}
	cmd.AddCommand(newBlocksListCmd(app))
	cmd.AddCommand(newBlocksAddCmd(app))
	cmd.AddCommand(newBlocksRemoveCmd(app))
	cmd.AddCommand(newBlocksMoveCmd(app))
	return cmd
}

// editorFor builds an editor.State wired to the event log, so scripted block
// edits emit exactly the events the TUI intents emit.
func editorFor(db *store.DB, s store.Store, docID string) (*editor.State, error) {
	if _, ok := db.FindDocument(docID); !ok {
		return nil, store.NotFoundError{Kind: "document", ID: docID}
	}
	st := editor.New(db, docID)
	st.Events = s
	return st, nil
}

// blockDocument resolves which document a block belongs to.
func blockDocument(db *store.DB, blockID string) (string, error) {
	b, ok := db.FindBlock(strings.TrimSpace(blockID))
	if !ok {
		return "", store.NotFoundError{Kind: "block", ID: blockID}
	}
	return b.DocumentID, nil
}

func newBlocksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <doc-id>",
		Short: "List a document's blocks in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := db.FindDocument(args[0]); !ok {
				return writeErr(cmd, store.NotFoundError{Kind: "document", ID: args[0]})
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"blocks": db.DocumentBlocks(args[0])},
			})
		},
	}
}

func newBlocksAddCmd(app *App) *cobra.Command {
	var typ, content string
	var index int
	cmd := &cobra.Command{
		Use:   "add <doc-id>",
		Short: "Append a block (or insert at --index)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := editorFor(db, s, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if st.IsLocked() {
				return writeErr(cmd, fmt.Errorf("document is locked: %s", args[0]))
			}
			if index < 0 {
				index = len(st.Blocks())
			}
			blk, err := st.InsertBlockAt(index, model.BlockType(typ))
			if err != nil {
				return writeErr(cmd, err)
			}
			if content != "" {
				st.UpdateBlockAttributes(blk.ID, blk.WithContent(content).Attributes)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			out, _ := db.FindBlock(blk.ID)
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&typ, "type", string(model.DefaultBlockType), "Block type")
	cmd.Flags().StringVar(&content, "content", "", "Block content")
	cmd.Flags().IntVar(&index, "index", -1, "Insert position (default: append)")
	return cmd
}

func newBlocksRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <block-id>",
		Short: "Remove a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			docID, err := blockDocument(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := editorFor(db, s, docID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if st.IsLocked() {
				return writeErr(cmd, fmt.Errorf("document is locked: %s", docID))
			}
			if !st.RemoveBlock(args[0]) {
				return writeErr(cmd, store.NotFoundError{Kind: "block", ID: args[0]})
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0]}})
		},
	}
}

func newBlocksMoveCmd(app *App) *cobra.Command {
	var delta int
	cmd := &cobra.Command{
		Use:   "move <block-id>",
		Short: "Move a block by --delta positions (negative = up)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			docID, err := blockDocument(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := editorFor(db, s, docID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if st.IsLocked() {
				return writeErr(cmd, fmt.Errorf("document is locked: %s", docID))
			}
			if !st.MoveBlock(args[0], delta) {
				return writeErr(cmd, fmt.Errorf("cannot move %s by %d", args[0], delta))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": args[0], "index": st.BlockIndex(args[0])},
			})
		},
	}
	cmd.Flags().IntVar(&delta, "delta", 1, "Positions to move (negative = up)")
	return cmd
}
