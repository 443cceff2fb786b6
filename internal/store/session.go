package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// Session state (last open document, last selected block) lives in a small
// SQLite db inside the workspace dir so relaunching the TUI restores where
// the user left off. It is best-effort: callers tolerate missing data.

const sessionFileName = "session.sqlite"

type Session struct {
	OpenDocumentID  string
	SelectedBlockID string
	ScrollOffset    int
}

func (s Store) sessionPath() string {
	return filepath.Join(s.Dir, sessionFileName)
}

func (s Store) openSession(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sessionPath())
	if err != nil {
		return nil, err
	}
	// busy_timeout avoids "database is locked" flakiness when a CLI command
	// runs while the TUI is open.
	pragmas := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS session(k TEXT PRIMARY KEY, v TEXT NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s Store) LoadSession(ctx context.Context) (*Session, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &Session{}, nil
	}
	db, err := s.openSession(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	get := func(k string) string {
		var v string
		err := db.QueryRowContext(ctx, `SELECT v FROM session WHERE k = ?`, k).Scan(&v)
		if err != nil {
			return ""
		}
		return v
	}

	st := &Session{
		OpenDocumentID:  get("open_document_id"),
		SelectedBlockID: get("selected_block_id"),
	}
	if off := get("scroll_offset"); off != "" {
		// Ignore garbage; a bad offset just means "start at the top".
		if n, err := strconv.Atoi(off); err == nil && n >= 0 {
			st.ScrollOffset = n
		}
	}
	return st, nil
}

func (s Store) SaveSession(ctx context.Context, st *Session) error {
	if st == nil {
		return nil
	}
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	db, err := s.openSession(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	set := func(k, v string) error {
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO session(k, v) VALUES(?, ?)`, k, v)
		return err
	}
	if err := set("open_document_id", strings.TrimSpace(st.OpenDocumentID)); err != nil {
		return err
	}
	if err := set("selected_block_id", strings.TrimSpace(st.SelectedBlockID)); err != nil {
		return err
	}
	if err := set("scroll_offset", strconv.Itoa(st.ScrollOffset)); err != nil {
		return err
	}
	return tx.Commit()
}
