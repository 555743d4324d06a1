package relay

import "slices"

func NewAdminSet() *AdminSet {
	return &AdminSet{}
}

// adds an admin socket; adding the same socket twice is a no-op
func (a *AdminSet) Add(conn Conn) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if slices.Contains(a.conns, conn) {
		return
	}

	a.conns = append(a.conns, conn)
}

// removes an admin socket; removing an absent socket is a no-op
func (a *AdminSet) Remove(conn Conn) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.conns = slices.DeleteFunc(a.conns, func(c Conn) bool {
		return c == conn
	})
}

func (a *AdminSet) IsEmpty() bool {
	return a.Count() == 0
}

func (a *AdminSet) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.conns)
}

// returns a copy of the current members in join order
func (a *AdminSet) Members() []Conn {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.conns)
}

// closes every admin socket and empties the set
func (a *AdminSet) closeAll() {
	a.mu.Lock()
	conns := a.conns
	a.conns = nil
	a.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}
