package relay

import (
	"sort"
	"time"

	"codeberg.org/colegiospro/server/internal/logger"
)

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
	}
}

// sets the callback invoked after register and unregister
func (r *Registry) OnChange(listener RegistryListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = listener
}

// adds a live visitor session; the session ID must not be in use
func (r *Registry) Register(sessionID, ref, displayName, roleLabel string, conn Conn) (VisitorSession, error) {
	if ref == "" {
		ref = DefaultRef
	}

	r.mu.Lock()

	if _, exists := r.entries[sessionID]; exists {
		r.mu.Unlock()
		return VisitorSession{}, ErrSessionExists
	}

	session := VisitorSession{
		SessionID:   sessionID,
		Ref:         ref,
		DisplayName: displayName,
		RoleLabel:   roleLabel,
		ConnectedAt: time.Now().UTC(),
	}

	r.entries[sessionID] = &registryEntry{session: session, conn: conn}
	total := len(r.entries)
	listener := r.listener

	r.mu.Unlock()

	logger.Info("visitor registered",
		"session_id", sessionID,
		"ref", ref,
		"total_visitors", total,
	)

	if listener != nil {
		listener(TypeVisitorConnected, session, total)
	}

	return session, nil
}

// removes a visitor session and closes its socket; absent IDs are ignored
func (r *Registry) Unregister(sessionID string) {
	r.mu.Lock()

	entry, exists := r.entries[sessionID]
	if !exists {
		r.mu.Unlock()
		return
	}

	delete(r.entries, sessionID)
	total := len(r.entries)
	listener := r.listener

	r.mu.Unlock()

	if entry.conn != nil {
		entry.conn.Close()
	}

	logger.Info("visitor unregistered",
		"session_id", sessionID,
		"total_visitors", total,
	)

	if listener != nil {
		listener(TypeVisitorDisconnected, entry.session, total)
	}
}

// records an inbound visitor message at the given instant
func (r *Registry) Touch(sessionID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[sessionID]
	if !exists {
		return
	}

	at = at.UTC()
	entry.session.LastMessageAt = &at
	entry.session.MessageCount++
}

// returns a copy of the session if it is live
func (r *Registry) Get(sessionID string) (VisitorSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[sessionID]
	if !exists {
		return VisitorSession{}, false
	}

	return copySession(entry.session), true
}

// reports whether the session is currently live
func (r *Registry) Has(sessionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.entries[sessionID]
	return exists
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// returns all live sessions ordered by connect time, then session ID
func (r *Registry) Snapshot() []VisitorSession {
	r.mu.RLock()

	sessions := make([]VisitorSession, 0, len(r.entries))
	for _, entry := range r.entries {
		sessions = append(sessions, copySession(entry.session))
	}

	r.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].ConnectedAt.Equal(sessions[j].ConnectedAt) {
			return sessions[i].SessionID < sessions[j].SessionID
		}
		return sessions[i].ConnectedAt.Before(sessions[j].ConnectedAt)
	})

	return sessions
}

// returns the socket registered for a session
func (r *Registry) conn(sessionID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[sessionID]
	if !exists {
		return nil, false
	}

	return entry.conn, true
}

// closes every visitor socket and empties the registry without notifications
func (r *Registry) closeAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*registryEntry)
	r.mu.Unlock()

	for _, entry := range entries {
		if entry.conn != nil {
			entry.conn.Close()
		}
	}
}

func copySession(s VisitorSession) VisitorSession {
	if s.LastMessageAt != nil {
		at := *s.LastMessageAt
		s.LastMessageAt = &at
	}
	return s
}
