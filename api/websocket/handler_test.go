package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/colegiospro/server/api/rest/chat"
	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/relay"
)

type recordingStore struct {
	mu       sync.Mutex
	messages []chats.Message
	visits   []visits.Visit
}

func (s *recordingStore) SaveMessage(_ context.Context, msg *chats.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *recordingStore) SaveVisit(_ context.Context, visit *visits.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = append(s.visits, *visit)
	return nil
}

func (s *recordingStore) GetHistory(_ context.Context, sessionID string) ([]*chats.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []*chats.Message
	for i := range s.messages {
		if s.messages[i].SessionID == sessionID {
			msg := s.messages[i]
			history = append(history, &msg)
		}
	}
	return history, nil
}

func (s *recordingStore) ListSessions(context.Context) ([]*chats.SessionSummary, error) {
	return nil, nil
}

func (s *recordingStore) ListRecent(context.Context, int) ([]*visits.Visit, error) {
	return nil, nil
}

func (s *recordingStore) snapshot() ([]chats.Message, []visits.Visit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chats.Message(nil), s.messages...), append([]visits.Visit(nil), s.visits...)
}

func newTestServer(t *testing.T, store relay.Store) (*httptest.Server, *relay.Router) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ADMIN_CHAT_KEY", "test-admin-key")
	t.Setenv("JWT_SECRET", "test-secret")

	router := relay.NewRouter(relay.NewRegistry(), relay.NewAdminSet(), store, nil, 0)

	engine := gin.New()
	RegisterRoutes(engine, router, func(*http.Request) bool { return true })

	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		router.Shutdown()
		srv.Close()
	})

	return srv, router
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var event map[string]any
	require.NoError(t, conn.ReadJSON(&event))

	return event
}

func TestAdminRejectedWithUnauthorizedCloseCode(t *testing.T) {
	srv, router := newTestServer(t, nil)

	conn := dial(t, srv, "/ws/admin?key=wrong")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	_, _, err := conn.ReadMessage()

	var closeErr *websocket.CloseError
	require.True(t, errors.As(err, &closeErr), "expected a close frame, got %v", err)
	assert.Equal(t, 4001, closeErr.Code)
	assert.Equal(t, 0, router.Admins().Count())
}

func TestAdminAndVisitorExchange(t *testing.T) {
	store := &recordingStore{}
	srv, _ := newTestServer(t, store)

	admin := dial(t, srv, "/ws/admin?key=test-admin-key")

	list := readEvent(t, admin)
	assert.Equal(t, relay.TypeVisitorList, list["type"])
	assert.Equal(t, float64(0), list["total"])

	visitor := dial(t, srv, "/ws/chat?ref=CIP-LORETO&display_name=Ana&role_label=Decana")

	connected := readEvent(t, admin)
	assert.Equal(t, relay.TypeVisitorConnected, connected["type"])
	assert.Equal(t, "CIP-LORETO", connected["ref"])
	assert.Equal(t, "Ana", connected["display_name"])
	assert.Equal(t, float64(1), connected["total_visitors"])

	sessionID, _ := connected["session_id"].(string)
	assert.True(t, strings.HasPrefix(sessionID, "CIP-LORETO-"))

	require.NoError(t, visitor.WriteJSON(map[string]string{"text": "hola"}))

	forwarded := readEvent(t, admin)
	assert.Equal(t, relay.TypeVisitorMessage, forwarded["type"])
	assert.Equal(t, sessionID, forwarded["session_id"])
	assert.Equal(t, "hola", forwarded["text"])

	require.NoError(t, admin.WriteJSON(map[string]string{
		"type":       "typing",
		"session_id": sessionID,
	}))
	assert.Equal(t, relay.TypeTyping, readEvent(t, visitor)["type"])

	require.NoError(t, admin.WriteJSON(map[string]string{
		"type":       "message",
		"session_id": sessionID,
		"text":       "Buenas tardes, ¿en qué le ayudo?",
	}))

	reply := readEvent(t, visitor)
	assert.Equal(t, relay.TypeMessage, reply["type"])
	assert.Equal(t, "Buenas tardes, ¿en qué le ayudo?", reply["text"])

	messages, trackedVisits := store.snapshot()
	require.Len(t, messages, 2)
	assert.Equal(t, chats.SenderVisitor, messages[0].Sender)
	assert.Equal(t, chats.SenderAdmin, messages[1].Sender)
	assert.Equal(t, "CIP-LORETO", messages[1].Ref)

	require.Len(t, trackedVisits, 1)
	assert.Equal(t, relay.ActionWSConnected, trackedVisits[0].Action)

	require.NoError(t, visitor.Close())

	disconnected := readEvent(t, admin)
	assert.Equal(t, relay.TypeVisitorDisconnected, disconnected["type"])
	assert.Equal(t, float64(0), disconnected["total_visitors"])
}

func TestVisitorGetsAutoReplyWithoutAdmins(t *testing.T) {
	store := &recordingStore{}
	srv, _ := newTestServer(t, store)

	visitor := dial(t, srv, "/ws/chat?ref=CIP-LORETO")

	require.NoError(t, visitor.WriteMessage(websocket.TextMessage, []byte("cuanto cuesta el servicio")))

	assert.Equal(t, relay.TypeTyping, readEvent(t, visitor)["type"])

	reply := readEvent(t, visitor)
	assert.Equal(t, relay.TypeMessage, reply["type"])
	assert.Equal(t, relay.DefaultReplyRules()[0].Reply, reply["text"])

	messages, _ := store.snapshot()
	require.Len(t, messages, 2)
	assert.Equal(t, "cuanto cuesta el servicio", messages[0].Content)
	assert.Equal(t, relay.DefaultReplyRules()[0].Reply, messages[1].Content)
}

func TestVisitorDefaultsToDirectRef(t *testing.T) {
	srv, router := newTestServer(t, nil)

	dial(t, srv, "/ws/chat?nombre=Luis&cargo=Tesorero")

	require.Eventually(t, func() bool { return router.Registry().Count() == 1 }, 5*time.Second, 10*time.Millisecond)

	session := router.Registry().Snapshot()[0]
	assert.Equal(t, relay.DefaultRef, session.Ref)
	assert.Equal(t, "Luis", session.DisplayName)
	assert.Equal(t, "Tesorero", session.RoleLabel)
}

func TestVisitorRefWithSpacesHasReadableHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("ADMIN_CHAT_KEY", "test-admin-key")

	store := &recordingStore{}
	router := relay.NewRouter(relay.NewRegistry(), relay.NewAdminSet(), store, nil, 0)

	engine := gin.New()
	RegisterRoutes(engine, router, func(*http.Request) bool { return true })
	chat.RegisterRoutes(engine.Group("/api"), router, store, store)

	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		router.Shutdown()
		srv.Close()
	})

	visitor := dial(t, srv, "/ws/chat?ref=CIP%20LORETO")
	require.NoError(t, visitor.WriteMessage(websocket.TextMessage, []byte("hola")))

	assert.Equal(t, relay.TypeTyping, readEvent(t, visitor)["type"])
	assert.Equal(t, relay.TypeMessage, readEvent(t, visitor)["type"])

	session := router.Registry().Snapshot()[0]
	assert.Equal(t, "CIP-LORETO", session.Ref)
	assert.True(t, strings.HasPrefix(session.SessionID, "CIP-LORETO-"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/chat/history/"+session.SessionID, nil)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Key", "test-admin-key")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var history []chat.HistoryEntry
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history, 2)
	assert.Equal(t, "hola", history[0].Content)
	assert.Equal(t, chats.SenderAdmin, history[1].Sender)
}

func TestVisitorText(t *testing.T) {
	assert.Equal(t, "hola", visitorText([]byte(`{"text":"hola"}`)))
	assert.Equal(t, "plain text", visitorText([]byte("plain text")))
	assert.Equal(t, "", visitorText([]byte(`{"other":"x"}`)))
}
