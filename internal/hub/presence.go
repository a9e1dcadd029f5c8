package hub

import "sync"

// Presence tracks which users currently have a live connection. It is
// process-local and advisory: rebuilt empty on restart, last-write-wins on
// concurrent connect/disconnect, at most one connection tracked per user. A
// second connection from the same user supersedes the first for
// notification-routing purposes; both stay joined to their rooms.
type Presence struct {
	mu      sync.RWMutex
	entries map[string]string // userID -> connection (client) id
}

func NewPresence() *Presence {
	return &Presence{
		entries: make(map[string]string),
	}
}

// Set records connID as the live connection for userID, overwriting any
// prior entry.
func (p *Presence) Set(userID, connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[userID] = connID
}

// Remove deletes the entry only if it still belongs to connID, so a
// superseded connection's disconnect does not knock out its successor.
// Reports whether the entry was removed.
func (p *Presence) Remove(userID, connID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.entries[userID] != connID {
		return false
	}
	delete(p.entries, userID)
	return true
}

// Has is a point-in-time liveness check with no ordering guarantee relative
// to concurrent connects and disconnects.
func (p *Presence) Has(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.entries[userID]
	return ok
}

// Snapshot returns the currently tracked user ids.
func (p *Presence) Snapshot() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	users := make([]string, 0, len(p.entries))
	for userID := range p.entries {
		users = append(users, userID)
	}
	return users
}

// Len returns the number of tracked users.
func (p *Presence) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}
