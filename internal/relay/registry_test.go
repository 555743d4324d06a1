package relay

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	conn := newFakeConn()

	session, err := registry.Register("CIP-LORETO-1a2b3c4d", "CIP-LORETO", "Ana", "Decana", conn)
	require.NoError(t, err)

	assert.Equal(t, "CIP-LORETO", session.Ref)
	assert.Equal(t, "Ana", session.DisplayName)
	assert.Equal(t, "Decana", session.RoleLabel)
	assert.False(t, session.ConnectedAt.IsZero())
	assert.Nil(t, session.LastMessageAt)
	assert.Equal(t, 1, registry.Count())
	assert.True(t, registry.Has("CIP-LORETO-1a2b3c4d"))
}

func TestRegistry_RegisterDefaultsRef(t *testing.T) {
	registry := NewRegistry()

	session, err := registry.Register("direct-00000001", "", "", "", newFakeConn())
	require.NoError(t, err)

	assert.Equal(t, DefaultRef, session.Ref)
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	registry := NewRegistry()
	first := newFakeConn()

	_, err := registry.Register("direct-00000001", "", "", "", first)
	require.NoError(t, err)

	_, err = registry.Register("direct-00000001", "", "", "", newFakeConn())
	assert.ErrorIs(t, err, ErrSessionExists)
	assert.Equal(t, 1, registry.Count())
	assert.False(t, first.isClosed())
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	conn := newFakeConn()

	var mu sync.Mutex
	var events []string
	registry.OnChange(func(eventType string, _ VisitorSession, _ int) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, eventType)
	})

	_, err := registry.Register("direct-00000001", "", "", "", conn)
	require.NoError(t, err)

	registry.Unregister("direct-00000001")
	registry.Unregister("direct-00000001")
	registry.Unregister("never-registered")

	assert.True(t, conn.isClosed())
	assert.Equal(t, 0, registry.Count())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{TypeVisitorConnected, TypeVisitorDisconnected}, events)
}

func TestRegistry_ListenerReceivesTotals(t *testing.T) {
	registry := NewRegistry()

	var totals []int
	registry.OnChange(func(_ string, _ VisitorSession, total int) {
		totals = append(totals, total)
	})

	_, err := registry.Register("a-00000001", "a", "", "", newFakeConn())
	require.NoError(t, err)
	_, err = registry.Register("b-00000002", "b", "", "", newFakeConn())
	require.NoError(t, err)
	registry.Unregister("a-00000001")

	assert.Equal(t, []int{1, 2, 1}, totals)
}

func TestRegistry_Touch(t *testing.T) {
	registry := NewRegistry()

	session, err := registry.Register("direct-00000001", "", "", "", newFakeConn())
	require.NoError(t, err)

	at := time.Now()
	registry.Touch("direct-00000001", at)
	registry.Touch("direct-00000001", at.Add(time.Second))

	got, ok := registry.Get("direct-00000001")
	require.True(t, ok)
	require.NotNil(t, got.LastMessageAt)

	assert.Equal(t, 2, got.MessageCount)
	assert.False(t, got.LastMessageAt.Before(session.ConnectedAt))
	assert.Equal(t, time.UTC, got.LastMessageAt.Location())

	// touching an absent session is a no-op
	registry.Touch("missing", at)
	assert.Equal(t, 1, registry.Count())
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Register("direct-00000001", "", "", "", newFakeConn())
	require.NoError(t, err)
	registry.Touch("direct-00000001", time.Now())

	got, ok := registry.Get("direct-00000001")
	require.True(t, ok)

	stored := *got.LastMessageAt
	*got.LastMessageAt = stored.Add(time.Hour)
	got.DisplayName = "changed"

	again, _ := registry.Get("direct-00000001")
	assert.Equal(t, stored, *again.LastMessageAt)
	assert.Empty(t, again.DisplayName)

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_SnapshotOrder(t *testing.T) {
	registry := NewRegistry()

	for _, id := range []string{"a-00000001", "b-00000002", "c-00000003"} {
		_, err := registry.Register(id, "", "", "", newFakeConn())
		require.NoError(t, err)
	}

	snapshot := registry.Snapshot()
	require.Len(t, snapshot, 3)

	ids := make([]string, 0, len(snapshot))
	for _, s := range snapshot {
		ids = append(ids, s.SessionID)
	}

	assert.Equal(t, []string{"a-00000001", "b-00000002", "c-00000003"}, ids)
}

func TestRegistry_CloseAll(t *testing.T) {
	registry := NewRegistry()
	first, second := newFakeConn(), newFakeConn()

	notified := false
	_, _ = registry.Register("a-00000001", "", "", "", first)
	_, _ = registry.Register("b-00000002", "", "", "", second)

	registry.OnChange(func(string, VisitorSession, int) { notified = true })
	registry.closeAll()

	assert.True(t, first.isClosed())
	assert.True(t, second.isClosed())
	assert.Equal(t, 0, registry.Count())
	assert.False(t, notified)
}
