package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/relay"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChats struct {
	history  map[string][]*chats.Message
	sessions []*chats.SessionSummary
}

func (f *fakeChats) SaveMessage(context.Context, *chats.Message) error { return nil }

func (f *fakeChats) GetHistory(_ context.Context, sessionID string) ([]*chats.Message, error) {
	return f.history[sessionID], nil
}

func (f *fakeChats) ListSessions(context.Context) ([]*chats.SessionSummary, error) {
	return f.sessions, nil
}

type fakeVisits struct {
	lastLimit int
}

func (f *fakeVisits) SaveVisit(context.Context, *visits.Visit) error { return nil }

func (f *fakeVisits) ListRecent(_ context.Context, limit int) ([]*visits.Visit, error) {
	f.lastLimit = limit
	return []*visits.Visit{{ID: 1, Ref: "CIP-LORETO", Action: "page_view"}}, nil
}

type nopConn struct{}

func (nopConn) Send(any) error { return nil }
func (nopConn) Close()         {}

func setup(t *testing.T, chatRepo chats.Repository, visitRepo visits.Repository) (*gin.Engine, *relay.Router) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ADMIN_CHAT_KEY", "test-admin-key")

	router := relay.NewRouter(relay.NewRegistry(), relay.NewAdminSet(), nil, nil, 0)
	t.Cleanup(router.Shutdown)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), router, chatRepo, visitRepo)

	return engine, router
}

func get(engine *gin.Engine, path string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if admin {
		req.Header.Set("X-Admin-Key", "test-admin-key")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestEndpointsRequireAdmin(t *testing.T) {
	engine, _ := setup(t, &fakeChats{}, &fakeVisits{})

	for _, path := range []string{"/api/chat/stats", "/api/chat/sessions", "/api/chat/history/direct-1a2b3c4d", "/api/visits"} {
		assert.Equal(t, http.StatusUnauthorized, get(engine, path, false).Code, path)
	}
}

func TestStats(t *testing.T) {
	engine, router := setup(t, &fakeChats{}, &fakeVisits{})

	_, err := router.Registry().Register("CIP-LORETO-1a2b3c4d", "CIP-LORETO", "Ana", "Decana", nopConn{})
	require.NoError(t, err)
	router.Admins().Add(nopConn{})

	w := get(engine, "/api/chat/stats", true)
	require.Equal(t, http.StatusOK, w.Code)

	var stats relay.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.VisitorsOnline)
	assert.Equal(t, 1, stats.AdminsOnline)
	require.Len(t, stats.Visitors, 1)
	assert.Equal(t, "Ana", stats.Visitors[0].DisplayName)
}

func TestHistory(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeChats{history: map[string][]*chats.Message{
		"direct-1a2b3c4d": {
			{ID: 1, SessionID: "direct-1a2b3c4d", Sender: chats.SenderVisitor, Content: "hola", CreatedAt: at},
			{ID: 2, SessionID: "direct-1a2b3c4d", Sender: chats.SenderAdmin, Content: "buenas", CreatedAt: at.Add(time.Second)},
		},
	}}
	engine, _ := setup(t, repo, &fakeVisits{})

	w := get(engine, "/api/chat/history/direct-1a2b3c4d", true)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []HistoryEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "visitor", entries[0].Sender)
	assert.Equal(t, "buenas", entries[1].Content)
}

func TestHistoryUnknownSessionIsEmpty(t *testing.T) {
	engine, _ := setup(t, &fakeChats{}, &fakeVisits{})

	w := get(engine, "/api/chat/history/direct-00000000", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHistoryRejectsMalformedSessionID(t *testing.T) {
	engine, _ := setup(t, &fakeChats{}, &fakeVisits{})

	assert.Equal(t, http.StatusBadRequest, get(engine, "/api/chat/history/not-a-session", true).Code)
}

func TestSessionsMarkOnline(t *testing.T) {
	repo := &fakeChats{sessions: []*chats.SessionSummary{
		{SessionID: "direct-aaaaaaaa", Ref: "direct", MessageCount: 3},
		{SessionID: "direct-bbbbbbbb", Ref: "direct", MessageCount: 1},
	}}
	engine, router := setup(t, repo, &fakeVisits{})

	_, err := router.Registry().Register("direct-bbbbbbbb", "direct", "", "", nopConn{})
	require.NoError(t, err)

	w := get(engine, "/api/chat/sessions", true)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []SessionEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.False(t, entries[0].IsOnline)
	assert.True(t, entries[1].IsOnline)
	assert.Equal(t, 3, entries[0].MessageCount)
}

func TestVisitsLimit(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"default", "", visits.DefaultListLimit},
		{"explicit", "?limit=10", 10},
		{"capped", "?limit=10000", visits.MaxListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeVisits{}
			engine, _ := setup(t, &fakeChats{}, repo)

			w := get(engine, "/api/visits"+tt.query, true)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expected, repo.lastLimit)
		})
	}
}
