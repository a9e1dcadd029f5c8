package hub

import "testing"

func TestPresenceSetAndRemove(t *testing.T) {
	p := NewPresence()

	p.Set("u1", "conn-a")
	if !p.Has("u1") {
		t.Fatalf("expected u1 to be present")
	}

	if !p.Remove("u1", "conn-a") {
		t.Fatalf("expected remove to report ownership")
	}
	if p.Has("u1") {
		t.Fatalf("expected u1 to be gone")
	}
}

// A new connection for the same user supersedes the old entry. The old
// connection's disconnect must not evict the successor.
func TestPresenceSupersededConnection(t *testing.T) {
	p := NewPresence()

	p.Set("u1", "conn-a")
	p.Set("u1", "conn-b")

	if p.Remove("u1", "conn-a") {
		t.Fatalf("superseded connection no longer owns the entry")
	}
	if !p.Has("u1") {
		t.Fatalf("u1 must stay online through the successor connection")
	}

	if !p.Remove("u1", "conn-b") {
		t.Fatalf("current connection owns the entry")
	}
	if p.Has("u1") {
		t.Fatalf("expected u1 offline after the live connection left")
	}
}

func TestPresenceSnapshot(t *testing.T) {
	p := NewPresence()
	p.Set("u1", "a")
	p.Set("u2", "b")

	snap := p.Snapshot()
	if len(snap) != 2 || p.Len() != 2 {
		t.Fatalf("expected two entries, got %v", snap)
	}
}
