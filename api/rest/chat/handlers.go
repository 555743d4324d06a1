package chat

import (
	"net/http"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/visits"
	"codeberg.org/colegiospro/server/internal/errors"
	"codeberg.org/colegiospro/server/internal/relay"
	"github.com/gin-gonic/gin"
)

// Stats godoc
// @Summary Live relay counts
// @Tags chat
// @Produce json
// @Success 200 {object} relay.Stats
// @Router /api/chat/stats [get]
func Stats(router *relay.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, router.Stats())
	}
}

// History godoc
// @Summary Full transcript of one session
// @Tags chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {array} HistoryEntry
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/chat/history/{session_id} [get]
func History(chatRepo chats.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := errors.ValidatePathSessionID(c, "session_id")
		if !ok {
			return
		}

		messages, err := chatRepo.GetHistory(c.Request.Context(), sessionID)
		if err != nil {
			errors.InternalError(c, "failed to load chat history", err)
			return
		}

		entries := make([]HistoryEntry, 0, len(messages))
		for _, m := range messages {
			entries = append(entries, HistoryEntry{
				ID:        m.ID,
				Sender:    m.Sender,
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, entries)
	}
}

// Sessions godoc
// @Summary Every chat session with activity, newest first
// @Tags chat
// @Produce json
// @Success 200 {array} SessionEntry
// @Router /api/chat/sessions [get]
func Sessions(chatRepo chats.Repository, router *relay.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := chatRepo.ListSessions(c.Request.Context())
		if err != nil {
			errors.InternalError(c, "failed to list chat sessions", err)
			return
		}

		registry := router.Registry()
		entries := make([]SessionEntry, 0, len(summaries))

		for _, s := range summaries {
			entries = append(entries, SessionEntry{
				SessionID:    s.SessionID,
				Ref:          s.Ref,
				DisplayName:  s.DisplayName,
				RoleLabel:    s.RoleLabel,
				LastAt:       s.LastAt,
				MessageCount: s.MessageCount,
				IsOnline:     registry.Has(s.SessionID),
			})
		}

		c.JSON(http.StatusOK, entries)
	}
}

// Visits godoc
// @Summary Most recent tracking events
// @Tags chat
// @Produce json
// @Param limit query int false "Max rows (default 50, max 500)"
// @Success 200 {array} visits.Visit
// @Router /api/visits [get]
func Visits(visitRepo visits.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query VisitsQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			errors.ValidationError(c, err)
			return
		}

		list, err := visitRepo.ListRecent(c.Request.Context(), visits.ClampLimit(query.Limit))
		if err != nil {
			errors.InternalError(c, "failed to list visits", err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}
