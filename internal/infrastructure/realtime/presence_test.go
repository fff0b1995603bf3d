package realtime

import "testing"

func TestPresenceFirstSessionBecomesOnline(t *testing.T) {
	p := NewPresenceTable()

	if !p.Add(1, "s1") {
		t.Fatal("first session should report becameOnline")
	}
	if p.Add(1, "s2") {
		t.Fatal("second session of same user must not report becameOnline")
	}
	if !p.IsOnline(1) {
		t.Fatal("user with live sessions should be online")
	}
}

func TestPresenceLastSessionBecomesOffline(t *testing.T) {
	p := NewPresenceTable()
	p.Add(7, "a")
	p.Add(7, "b")

	userID, becameOffline, ok := p.Remove("a")
	if !ok || userID != 7 {
		t.Fatalf("expected ok remove for user 7, got ok=%v user=%d", ok, userID)
	}
	if becameOffline {
		t.Fatal("user still has a session, must not report becameOffline")
	}

	userID, becameOffline, ok = p.Remove("b")
	if !ok || userID != 7 || !becameOffline {
		t.Fatalf("expected last-session offline for user 7, got ok=%v user=%d offline=%v", ok, userID, becameOffline)
	}
	if p.IsOnline(7) {
		t.Fatal("user with no sessions should be offline")
	}
}

func TestPresenceUnknownSession(t *testing.T) {
	p := NewPresenceTable()
	if _, _, ok := p.Remove("ghost"); ok {
		t.Fatal("removing an unknown session should report ok=false")
	}
}

func TestPresenceStartsEmpty(t *testing.T) {
	p := NewPresenceTable()
	if ids := p.OnlineUserIDs(); len(ids) != 0 {
		t.Fatalf("fresh table should have no online users, got %v", ids)
	}
}
