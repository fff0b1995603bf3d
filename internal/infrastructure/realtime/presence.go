package realtime

import "sync"

// PresenceTable tracks which users currently have live sessions. It is the
// sole runtime source of truth for "online": any durable online flag elsewhere
// is advisory. The table starts empty on process start, so every user is
// implicitly offline until they reconnect.
type PresenceTable struct {
	mu        sync.Mutex
	byUser    map[int64]map[string]struct{}
	bySession map[string]int64
}

func NewPresenceTable() *PresenceTable {
	return &PresenceTable{
		byUser:    make(map[int64]map[string]struct{}),
		bySession: make(map[string]int64),
	}
}

// Add registers a session for the user and reports whether this was the
// user's first live session.
func (p *PresenceTable) Add(userID int64, sessionID string) (becameOnline bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	set := p.byUser[userID]
	if set == nil {
		set = make(map[string]struct{})
		p.byUser[userID] = set
	}
	becameOnline = len(set) == 0
	set[sessionID] = struct{}{}
	p.bySession[sessionID] = userID
	return becameOnline
}

// Remove drops a session, resolving the owning user through the reverse
// index. becameOffline is true when the user's last session went away; ok is
// false for unknown sessions.
func (p *PresenceTable) Remove(sessionID string) (userID int64, becameOffline bool, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	userID, ok = p.bySession[sessionID]
	if !ok {
		return 0, false, false
	}
	delete(p.bySession, sessionID)

	set := p.byUser[userID]
	delete(set, sessionID)
	if len(set) == 0 {
		delete(p.byUser, userID)
		becameOffline = true
	}
	return userID, becameOffline, true
}

// IsOnline reports whether the user has at least one live session.
func (p *PresenceTable) IsOnline(userID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byUser[userID]) > 0
}

// OnlineUserIDs returns a snapshot of all users with live sessions.
func (p *PresenceTable) OnlineUserIDs() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]int64, 0, len(p.byUser))
	for id := range p.byUser {
		ids = append(ids, id)
	}
	return ids
}
