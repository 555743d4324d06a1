package track

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/relay"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visitStore struct {
	mu     sync.Mutex
	visits []visits.Visit
	err    error
}

func (s *visitStore) SaveMessage(context.Context, *chats.Message) error { return nil }

func (s *visitStore) SaveVisit(_ context.Context, v *visits.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.visits = append(s.visits, *v)
	return nil
}

type captureConn struct {
	mu     sync.Mutex
	events []any
}

func (c *captureConn) Send(event any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *captureConn) Close() {}

func setup(t *testing.T, store relay.Store) (*gin.Engine, *captureConn) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := relay.NewRouter(relay.NewRegistry(), relay.NewAdminSet(), store, nil, 0)
	t.Cleanup(router.Shutdown)

	admin := &captureConn{}
	router.Admins().Add(admin)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), router, func(c *gin.Context) { c.Next() })

	return engine, admin
}

func post(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTrackPageView(t *testing.T) {
	store := &visitStore{}
	engine, admin := setup(t, store)

	w := post(engine, `{"action":"page_view","ref":"CIP-LORETO","referrer":"https://google.com"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	require.Len(t, store.visits, 1)
	assert.Equal(t, "CIP-LORETO", store.visits[0].Ref)
	assert.Equal(t, "test-agent", store.visits[0].UserAgent)
	assert.Empty(t, admin.events, "page views are not pushed to admins")
}

func TestTrackNotableEventReachesAdmins(t *testing.T) {
	store := &visitStore{}
	engine, admin := setup(t, store)

	w := post(engine, `{"action":"chat_opened"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.visits, 1)
	assert.Equal(t, relay.DefaultRef, store.visits[0].Ref)

	require.Len(t, admin.events, 1)
	notice, ok := admin.events[0].(relay.TrackEventNotice)
	require.True(t, ok)
	assert.Equal(t, relay.ActionChatOpened, notice.Action)
}

func TestTrackPersistenceFailureStillBroadcasts(t *testing.T) {
	store := &visitStore{err: errors.New("db down")}
	engine, admin := setup(t, store)

	w := post(engine, `{"action":"pwa_installed"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error"}`, w.Body.String())
	assert.Len(t, admin.events, 1)
}

func TestTrackRequiresAction(t *testing.T) {
	engine, _ := setup(t, &visitStore{})

	assert.Equal(t, http.StatusBadRequest, post(engine, `{"ref":"x"}`).Code)
}
