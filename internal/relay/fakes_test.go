package relay

import (
	"context"
	"errors"
	"sync"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/visits"
)

type fakeConn struct {
	mu     sync.Mutex
	events []any
	fail   bool
	closed bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{}
}

func newFailingConn() *fakeConn {
	return &fakeConn{fail: true}
}

func (c *fakeConn) Send(event any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fail || c.closed {
		return ErrConnectionClosed
	}

	c.events = append(c.events, event)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) received() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.events...)
}

// returns the recorded events of one concrete type, in delivery order
func eventsOf[T any](c *fakeConn) []T {
	var out []T
	for _, event := range c.received() {
		if typed, ok := event.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

type fakeStore struct {
	mu       sync.Mutex
	messages []*chats.Message
	visits   []*visits.Visit
	err      error
}

func (s *fakeStore) SaveMessage(ctx context.Context, msg *chats.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	s.messages = append(s.messages, msg)
	return nil
}

func (s *fakeStore) SaveVisit(ctx context.Context, visit *visits.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	s.visits = append(s.visits, visit)
	return nil
}

func (s *fakeStore) savedMessages() []*chats.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*chats.Message(nil), s.messages...)
}

func (s *fakeStore) savedVisits() []*visits.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*visits.Visit(nil), s.visits...)
}

var errStoreDown = errors.New("store unavailable")
