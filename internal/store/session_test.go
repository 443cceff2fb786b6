package store

import (
	"context"
	"testing"
)

func TestSessionRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	if err := s.SaveSession(ctx, &Session{
		OpenDocumentID:  "doc-aaaa",
		SelectedBlockID: "blk-2",
		ScrollOffset:    7,
	}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	st, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if st.OpenDocumentID != "doc-aaaa" || st.SelectedBlockID != "blk-2" || st.ScrollOffset != 7 {
		t.Fatalf("unexpected session after roundtrip: %+v", st)
	}
}

func TestLoadSessionFreshWorkspace(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	st, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if st.OpenDocumentID != "" || st.SelectedBlockID != "" || st.ScrollOffset != 0 {
		t.Fatalf("expected empty session, got %+v", st)
	}
}

func TestSaveSessionOverwrites(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	if err := s.SaveSession(ctx, &Session{OpenDocumentID: "doc-aaaa"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := s.SaveSession(ctx, &Session{OpenDocumentID: "doc-bbbb"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	st, err := s.LoadSession(ctx)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if st.OpenDocumentID != "doc-bbbb" {
		t.Fatalf("expected latest save to win, got %q", st.OpenDocumentID)
	}
}
