package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scribe-cli/internal/model"

	"github.com/google/uuid"
)

const eventsFileName = "events.jsonl"

// Edit intents append here (block.insert, block.remove, block.merge, ...).
// The log is append-only JSONL: one event per line, never rewritten.

func (s Store) eventsPath() string {
	return filepath.Join(s.Dir, eventsFileName)
}

func (s Store) AppendEvent(typ, entityID string, payload any) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return errors.New("missing event type")
	}
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return errors.New("missing entity id")
	}
	if err := s.Ensure(); err != nil {
		return err
	}

	ev := model.Event{
		ID:       uuid.NewString(),
		TS:       time.Now().UTC(),
		Type:     typ,
		EntityID: entityID,
		Payload:  payload,
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.eventsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(b, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

// ReadEvents returns the most recent events, oldest first. limit == 0 means all.
func (s Store) ReadEvents(limit int) ([]model.Event, error) {
	f, err := os.Open(s.eventsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []model.Event
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ev model.Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			// Tolerate torn/corrupt lines; the log is best-effort history.
			continue
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
