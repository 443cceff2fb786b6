package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"scribe-cli/internal/model"
)

const dbFileName = "db.json"

// DB is the whole-workspace state: documents plus their blocks.
type DB struct {
	Version           int              `json:"version"`
	CurrentDocumentID string           `json:"currentDocumentId,omitempty"`
	Documents         []model.Document `json:"documents"`
	Blocks            []model.Block    `json:"blocks"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .scribe workspace dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".scribe")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".scribe"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.dbPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &DB{Version: 1}, nil
		}
		return nil, err
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, err
	}
	if db.Version == 0 {
		db.Version = 1
	}
	migrateRanks(&db)
	return &db, nil
}

func (s Store) Save(db *DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if db.Version == 0 {
		db.Version = 1
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	path := s.dbPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (db *DB) FindDocument(id string) (*model.Document, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Documents {
		if db.Documents[i].ID == id {
			return &db.Documents[i], true
		}
	}
	return nil, false
}

func (db *DB) FindBlock(id string) (*model.Block, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Blocks {
		if db.Blocks[i].ID == id {
			return &db.Blocks[i], true
		}
	}
	return nil, false
}

// DocumentBlocks returns the document's blocks in rank order.
func (db *DB) DocumentBlocks(docID string) []model.Block {
	docID = strings.TrimSpace(docID)
	var out []model.Block
	for _, b := range db.Blocks {
		if b.DocumentID == docID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (db *DB) RemoveBlock(id string) bool {
	id = strings.TrimSpace(id)
	for i := range db.Blocks {
		if db.Blocks[i].ID == id {
			db.Blocks = append(db.Blocks[:i], db.Blocks[i+1:]...)
			return true
		}
	}
	return false
}

// migrateRanks assigns ranks to blocks created before rank ordering existed.
// Unranked blocks sort by CreatedAt and are appended after ranked siblings.
func migrateRanks(db *DB) {
	byDoc := map[string][]int{}
	for i := range db.Blocks {
		if strings.TrimSpace(db.Blocks[i].Rank) == "" {
			byDoc[db.Blocks[i].DocumentID] = append(byDoc[db.Blocks[i].DocumentID], i)
		}
	}
	for docID, idxs := range byDoc {
		sort.Slice(idxs, func(i, j int) bool {
			return db.Blocks[idxs[i]].CreatedAt.Before(db.Blocks[idxs[j]].CreatedAt)
		})
		prev := ""
		for _, b := range db.DocumentBlocks(docID) {
			if strings.TrimSpace(b.Rank) != "" && b.Rank > prev {
				prev = b.Rank
			}
		}
		for _, idx := range idxs {
			r, err := RankAfter(prev)
			if err != nil {
				continue
			}
			db.Blocks[idx].Rank = r
			prev = r
		}
	}
}
