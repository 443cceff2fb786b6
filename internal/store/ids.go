package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
// 8 chars base32 ~= 40 bits of space, plenty for a local workspace.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

func NewDocumentID(db *DB) (string, error) {
	for i := 0; i < 16; i++ {
		id, err := newRandomID("doc")
		if err != nil {
			return "", err
		}
		if !idExists(db, id) {
			return id, nil
		}
	}
	// 16 straight collisions in a 40-bit space means rand is broken.
	return "", errRandExhausted
}

func NewBlockID(db *DB) (string, error) {
	for i := 0; i < 16; i++ {
		id, err := newRandomID("blk")
		if err != nil {
			return "", err
		}
		if !idExists(db, id) {
			return id, nil
		}
	}
	return "", errRandExhausted
}

func idExists(db *DB, id string) bool {
	if db == nil {
		return false
	}
	for _, d := range db.Documents {
		if d.ID == id {
			return true
		}
	}
	for _, b := range db.Blocks {
		if b.ID == id {
			return true
		}
	}
	return false
}
