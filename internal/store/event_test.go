package store

import "testing"

func createSession(t *testing.T, s *Store) string {
	t.Helper()

	sess := &Session{InitialMode: "both"}
	if err := s.Sessions().Create(sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return sess.ID
}

func TestEventRepository_RecordAndList(t *testing.T) {
	s := newTestStore(t)
	sessionID := createSession(t, s)
	repo := s.Events()

	recorded := []*Event{
		{SessionID: sessionID, Kind: "click", Source: "hand", X: 120, Y: 340},
		{SessionID: sessionID, Kind: "scroll_up", Source: "eye"},
		{SessionID: sessionID, Kind: "right_click", Source: "hand", X: 10, Y: 10},
	}
	for _, e := range recorded {
		if err := repo.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if e.ID == 0 {
			t.Error("Record() should assign an ID")
		}
	}

	events, err := repo.ListBySession(sessionID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(events) != len(recorded) {
		t.Fatalf("ListBySession() returned %d events, want %d", len(events), len(recorded))
	}

	for i, e := range events {
		want := recorded[i]
		if e.Kind != want.Kind || e.Source != want.Source || e.X != want.X || e.Y != want.Y {
			t.Errorf("event %d = %+v, want %+v", i, e, want)
		}
	}
}

func TestEventRepository_RejectsUnknownSession(t *testing.T) {
	s := newTestStore(t)

	err := s.Events().Record(&Event{SessionID: "missing", Kind: "click", Source: "hand"})
	if err == nil {
		t.Error("Record() should fail for an unknown session")
	}
}

func TestEventRepository_RejectsUnknownSource(t *testing.T) {
	s := newTestStore(t)
	sessionID := createSession(t, s)

	err := s.Events().Record(&Event{SessionID: sessionID, Kind: "click", Source: "foot"})
	if err == nil {
		t.Error("Record() should reject an unknown source")
	}
}

func TestEventRepository_CountByKind(t *testing.T) {
	s := newTestStore(t)
	sessionID := createSession(t, s)
	other := createSession(t, s)
	repo := s.Events()

	kinds := []string{"click", "click", "scroll_down", "click"}
	for _, k := range kinds {
		if err := repo.Record(&Event{SessionID: sessionID, Kind: k, Source: "eye"}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err := repo.Record(&Event{SessionID: other, Kind: "click", Source: "hand"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	counts, err := repo.CountByKind(sessionID)
	if err != nil {
		t.Fatalf("CountByKind() error = %v", err)
	}
	if counts["click"] != 3 {
		t.Errorf("click count = %d, want 3", counts["click"])
	}
	if counts["scroll_down"] != 1 {
		t.Errorf("scroll_down count = %d, want 1", counts["scroll_down"])
	}
	if len(counts) != 2 {
		t.Errorf("got %d kinds, want 2", len(counts))
	}
}

func TestModeChangeRepository_RecordAndList(t *testing.T) {
	s := newTestStore(t)
	sessionID := createSession(t, s)
	repo := s.ModeChanges()

	modes := []string{"hand", "eye", "both"}
	for _, m := range modes {
		if err := repo.Record(&ModeChange{SessionID: sessionID, Mode: m}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	changes, err := repo.ListBySession(sessionID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(changes) != len(modes) {
		t.Fatalf("ListBySession() returned %d changes, want %d", len(changes), len(modes))
	}
	for i, c := range changes {
		if c.Mode != modes[i] {
			t.Errorf("change %d mode = %q, want %q", i, c.Mode, modes[i])
		}
	}
}
